package quotelog

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendWritesJSONLine(t *testing.T) {
	t.Setenv("QUOTE_LOG_DIR", t.TempDir())

	err := Append(Entry{
		Program:   "SMILES",
		Action:    "PUBLISH_QUOTE",
		Quantity:  "50",
		CPFCount:  2,
		Price:     "17.25",
		MessageID: "msg-1",
	})
	require.NoError(t, err)

	f, err := os.Open(dailyFilepath(brtNow()))
	require.NoError(t, err)
	defer f.Close()

	sc := bufio.NewScanner(f)
	require.True(t, sc.Scan())

	var got Entry
	require.NoError(t, json.Unmarshal(sc.Bytes(), &got))
	assert.Equal(t, "SMILES", got.Program)
	assert.Equal(t, "17.25", got.Price)
	assert.NotEmpty(t, got.Time)
}

func TestAppendDecisionWritesToDecisionsDir(t *testing.T) {
	t.Setenv("QUOTE_LOG_DIR", t.TempDir())

	err := AppendDecision(DecisionEntry{
		MessageID: "msg-2",
		Action:    "SILENT",
		Reason:    "no_program_match",
	})
	require.NoError(t, err)

	_, statErr := os.Stat(decisionsFilepath(brtNow()))
	assert.NoError(t, statErr)
}
