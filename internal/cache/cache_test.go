package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/issue-assistant/internal/models"
)

func testAnalysis(summary string) models.Analysis {
	return models.Analysis{
		Summary:         summary,
		Type:            models.TypeBug,
		PriorityScore:   "4 - High: blocks the happy path",
		SuggestedLabels: []string{"bug"},
		PotentialImpact: "Users hit an error on every request.",
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "https://github.com/octocat/Hello-World::42", Key("https://github.com/octocat/Hello-World", 42))

	// Pure: same inputs, same key.
	assert.Equal(t, Key("https://github.com/a/b", 1), Key("https://github.com/a/b", 1))

	// The raw URL is the fingerprint: spellings of the same repository
	// are distinct keys on purpose.
	assert.NotEqual(t,
		Key("https://github.com/octocat/Hello-World", 1),
		Key("https://github.com/octocat/Hello-World.git", 1))
	assert.NotEqual(t, Key("https://github.com/a/b", 1), Key("https://github.com/a/b", 2))
}

func TestGetReturnsFreshEntry(t *testing.T) {
	c := New(true, time.Hour)

	c.Set("k", testAnalysis("first"))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "first", got.Summary)
}

func TestGetMissesUnknownKey(t *testing.T) {
	c := New(true, time.Hour)

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestExpiredEntryIsEvictedOnLookup(t *testing.T) {
	now := time.Now()
	c := New(true, time.Hour)
	c.now = func() time.Time { return now }

	c.Set("k", testAnalysis("stale"))

	// Exactly at the TTL boundary the entry counts as expired.
	now = now.Add(time.Hour)
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be deleted, not just skipped")
}

func TestSetOverwritesWithFreshTimestamp(t *testing.T) {
	now := time.Now()
	c := New(true, time.Hour)
	c.now = func() time.Time { return now }

	c.Set("k", testAnalysis("first"))

	now = now.Add(59 * time.Minute)
	c.Set("k", testAnalysis("second"))

	// 59 minutes after the rewrite the original insertion is long past
	// the TTL but the entry must still be live.
	now = now.Add(59 * time.Minute)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", got.Summary)
}

func TestDisabledCacheIsInert(t *testing.T) {
	c := New(false, time.Hour)

	c.Set("k", testAnalysis("ignored"))

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestClearDropsEverything(t *testing.T) {
	c := New(true, time.Hour)
	c.Set("a", testAnalysis("a"))
	c.Set("b", testAnalysis("b"))
	require.Equal(t, 2, c.Len())

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}
