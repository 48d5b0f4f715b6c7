package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "19,25", FormatPrice(dec("19.25")))
	assert.Equal(t, "20,00", FormatPrice(dec("20")))
	assert.Equal(t, "16,50", FormatPrice(dec("16.5")))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "50", FormatQuantity(dec("50")))
	assert.Equal(t, "12,5", FormatQuantity(dec("12.5")))
}

func TestRender(t *testing.T) {
	rc := RenderContext{ProgramName: "AZUL", Quantity: dec("30"), CPFCount: 3, Price: dec("17.75")}
	got := Render("{PROGRAMA}: {QUANTIDADE}k / {CPF_COUNT} CPFs a R$ {PRECO}", rc)
	assert.Equal(t, "AZUL: 30k / 3 CPFs a R$ 17,75", got)
}
