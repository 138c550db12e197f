package session

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := GenerateID()
		require.Len(t, id, 32)
		for _, c := range id {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'), "unexpected char %q in %s", c, id)
		}
		assert.True(t, IsValidID(id))
	}
}

func TestGenerateID_NoDuplicates(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := GenerateID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s after %d draws", id, i)
		seen[id] = struct{}{}
	}
}

func TestGenerator_DeterministicSource(t *testing.T) {
	src := bytes.NewReader([]byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0xff,
	})
	gen := NewGenerator(src)

	assert.Equal(t, "000102030405060708090a0b0c0d0eff", gen.Generate())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerator_BrokenSource(t *testing.T) {
	gen := NewGenerator(failingReader{})

	_, err := gen.TryGenerate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRandomSource)

	assert.Panics(t, func() { gen.Generate() })
}

func TestGenerator_ShortSourceFails(t *testing.T) {
	gen := NewGenerator(bytes.NewReader([]byte{1, 2, 3}))

	_, err := gen.TryGenerate()
	assert.ErrorIs(t, err, ErrRandomSource)
}

func TestGenerator_Concurrent(t *testing.T) {
	gen := NewGenerator(nil)

	const workers, perWorker = 8, 500
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, gen.Generate())
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestIsValidID(t *testing.T) {
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("abc123"))
	assert.False(t, IsValidID("000102030405060708090A0B0C0D0EFF"))
	assert.False(t, IsValidID("000102030405060708090a0b0c0d0eZZ"))
	assert.True(t, IsValidID("000102030405060708090a0b0c0d0eff"))
}
