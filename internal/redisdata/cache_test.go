package redisdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacbatst/felip-ai-sub001/internal/types"
)

func TestRefCacheLazyExpiry(t *testing.T) {
	now := time.Now()
	c := newRefCache(5 * time.Minute)
	c.now = func() time.Time { return now }

	c.putPrograms("owner", []types.Program{{ID: 1, Name: "SMILES"}})

	got, ok := c.getPrograms("owner")
	require.True(t, ok)
	assert.Len(t, got, 1)

	// advancing past the TTL invalidates on the next access
	now = now.Add(6 * time.Minute)
	_, ok = c.getPrograms("owner")
	assert.False(t, ok)
}

func TestRefCacheZeroTTLDisablesCaching(t *testing.T) {
	c := newRefCache(0)
	c.putPrograms("owner", []types.Program{{ID: 1, Name: "SMILES"}})

	_, ok := c.getPrograms("owner")
	assert.False(t, ok)
}

func TestRefCacheCachesNilSettings(t *testing.T) {
	c := newRefCache(time.Minute)
	c.putSettings("owner", nil)

	got, ok := c.getSettings("owner")
	assert.True(t, ok, "absence of settings is a cacheable answer")
	assert.Nil(t, got)
}
