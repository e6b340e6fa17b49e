package id

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomGenerator_NewID(t *testing.T) {
	g := NewRandomGenerator()

	first, err := g.NewID()
	require.NoError(t, err)
	second, err := g.NewID()
	require.NoError(t, err)

	require.Len(t, first, 16)
	require.NotEqual(t, first, second)
}
