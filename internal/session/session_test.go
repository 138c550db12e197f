package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_New(t *testing.T) {
	s := New(nil)

	assert.True(t, s.IsNew())
	assert.False(t, s.IsModified())
	assert.True(t, IsValidID(s.ID()))
	assert.Equal(t, 0, s.Size())
}

func TestSession_SetGet(t *testing.T) {
	s := New(nil)

	s.Set("user", "alice")
	v, ok := s.Get("user")
	require.True(t, ok)
	assert.Equal(t, "alice", v)
	assert.True(t, s.IsModified())

	s.Set("user", "bob")
	v, _ = s.Get("user")
	assert.Equal(t, "bob", v)
	assert.Equal(t, 1, s.Size())
}

func TestSession_GetMissing(t *testing.T) {
	s := New(nil)

	_, ok := s.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "fallback", s.GetOr("nope", "fallback"))

	s.Set("k", "v")
	assert.Equal(t, "v", s.GetOr("k", "fallback"))
}

func TestSession_Remove(t *testing.T) {
	s := New(nil)
	s.Set("a", "1")

	assert.False(t, s.Remove("missing"))
	assert.Equal(t, 1, s.Size())

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Contains("a"))
	assert.Equal(t, 0, s.Size())
}

func TestSession_OverwriteKeepsOrder(t *testing.T) {
	s := New(nil)
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("c", "3")

	s.Set("b", "20")
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())

	s.Remove("a")
	s.Set("a", "10")
	assert.Equal(t, []string{"b", "c", "a"}, s.Keys())
}

func TestSession_Clear(t *testing.T) {
	s := New(nil)
	s.Set("a", "1")
	s.Set("b", "2")

	s.Clear()
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains("a"))
	assert.True(t, s.IsModified())

	s.Set("c", "3")
	assert.Equal(t, []string{"c"}, s.Keys())
}

func TestSession_RegenerateID(t *testing.T) {
	s := New(nil)
	s.Set("user", "alice")
	old := s.ID()

	s.RegenerateID()
	assert.NotEqual(t, old, s.ID())
	assert.True(t, IsValidID(s.ID()))
	assert.True(t, s.IsModified())
	assert.Equal(t, "alice", s.GetOr("user", ""))
}

func TestSession_DataIsCopy(t *testing.T) {
	s := New(nil)
	s.Set("a", "1")

	data := s.Data()
	data["a"] = "changed"
	data["b"] = "new"

	assert.Equal(t, "1", s.GetOr("a", ""))
	assert.False(t, s.Contains("b"))
}

func TestSession_Restore(t *testing.T) {
	s := Restore("0123456789abcdef0123456789abcdef")

	assert.Equal(t, "0123456789abcdef0123456789abcdef", s.ID())
	assert.False(t, s.IsNew())
	assert.Equal(t, 0, s.Size())

	s.Set("k", "v")
	assert.Equal(t, "v", s.GetOr("k", ""))
}
