package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"
)

const (
	// idBytes is the entropy per identifier: 128 bits.
	idBytes = 16
	// IDLength is the length of an encoded identifier.
	IDLength = idBytes * 2
)

var ErrRandomSource = errors.New("session: random source failed")

// Generator produces session identifiers from a cryptographic byte source.
type Generator struct {
	mu  sync.Mutex
	src io.Reader
}

// NewGenerator returns a Generator reading from src. A nil src selects
// crypto/rand.
func NewGenerator(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{src: src}
}

var defaultGenerator = NewGenerator(nil)

// TryGenerate returns a fresh identifier or the error from the random source.
func (g *Generator) TryGenerate() (string, error) {
	var b [idBytes]byte

	g.mu.Lock()
	_, err := io.ReadFull(g.src, b[:])
	g.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return hex.EncodeToString(b[:]), nil
}

// Generate returns a fresh identifier. A broken random source leaves no safe
// way to continue, so it panics.
func (g *Generator) Generate() string {
	id, err := g.TryGenerate()
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateID draws an identifier from the process-wide crypto/rand generator.
func GenerateID() string {
	return defaultGenerator.Generate()
}

// IsValidID reports whether s looks like an identifier produced by Generate.
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
