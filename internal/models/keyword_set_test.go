package models_test

import (
	"encoding/json"
	"testing"

	"adventure-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeywordSet_DeduplicatesAndKeepsOrder(t *testing.T) {
	s := models.NewKeywordSet("map", " torch ", "map", "", "key", "   ")

	assert.Equal(t, []string{"map", "torch", "key"}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("torch"))
	assert.False(t, s.Contains("sword"))
}

func TestKeywordSet_ZeroValue(t *testing.T) {
	var s models.KeywordSet

	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains("map"))
	assert.NotNil(t, s.Values())
	assert.Empty(t, s.Values())

	assert.Equal(t, 1, s.Add("map"))
	assert.Equal(t, []string{"map"}, s.Values())
}

func TestKeywordSet_AddRemove(t *testing.T) {
	s := models.NewKeywordSet("a", "b", "c")

	assert.Equal(t, 1, s.Add("b", "d"))
	assert.True(t, s.Remove("b"))
	assert.False(t, s.Remove("b"))
	assert.Equal(t, []string{"a", "c", "d"}, s.Values())
}

func TestKeywordSet_RemoveDoesNotAffectClone(t *testing.T) {
	s := models.NewKeywordSet("a", "b", "c")
	c := s.Clone()

	c.Remove("a")

	assert.Equal(t, []string{"a", "b", "c"}, s.Values())
	assert.Equal(t, []string{"b", "c"}, c.Values())
}

func TestKeywordSet_Union(t *testing.T) {
	journal := models.NewKeywordSet("map", "lantern")
	granted := models.NewKeywordSet("key", "map")

	merged := journal.Union(granted)

	assert.Equal(t, []string{"map", "lantern", "key"}, merged.Values())
	// operands untouched
	assert.Equal(t, []string{"map", "lantern"}, journal.Values())
	assert.Equal(t, []string{"key", "map"}, granted.Values())
}

func TestKeywordSet_UnionIsIdempotentAndCommutative(t *testing.T) {
	a := models.NewKeywordSet("x", "y")
	b := models.NewKeywordSet("y", "z")

	once := a.Union(b)
	twice := once.Union(b)
	assert.True(t, once.Equal(twice))
	assert.Equal(t, once.Values(), twice.Values())

	assert.True(t, a.Union(b).Equal(b.Union(a)))
}

func TestKeywordSet_Difference(t *testing.T) {
	required := models.NewKeywordSet("key", "map", "amulet")
	journal := models.NewKeywordSet("map")

	assert.Equal(t, []string{"key", "amulet"}, required.Difference(journal).Values())
	assert.True(t, models.NewKeywordSet().Difference(journal).IsEmpty())
	assert.True(t, required.Difference(required).IsEmpty())
}

func TestKeywordSet_Equal(t *testing.T) {
	assert.True(t, models.NewKeywordSet("a", "b").Equal(models.NewKeywordSet("b", "a")))
	assert.False(t, models.NewKeywordSet("a", "b").Equal(models.NewKeywordSet("a")))
	assert.False(t, models.NewKeywordSet("a", "b").Equal(models.NewKeywordSet("a", "c")))
}

func TestKeywordSet_JSON(t *testing.T) {
	s := models.NewKeywordSet("map", "key")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["map","key"]`, string(data))

	empty, err := json.Marshal(models.KeywordSet{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(empty))

	var decoded models.KeywordSet
	require.NoError(t, json.Unmarshal([]byte(`["a","b","a"]`), &decoded))
	assert.Equal(t, []string{"a", "b"}, decoded.Values())
}
