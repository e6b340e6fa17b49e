package id

import (
	"crypto/rand"
	"encoding/hex"

	crerr "github.com/cockroachdb/errors"
)

// Generator creates opaque IDs used to correlate log lines of one batch session.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: 8}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = 8
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", crerr.Wrap(err, "read random bytes")
	}

	return hex.EncodeToString(buf), nil
}
