package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "!!!", "bm90LWpzb24", Encode(Token{Mode: "recent"})} {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", s)
	}
}

func TestTokenIsBoundToFilter(t *testing.T) {
	tok, err := Decode(Encode(Token{Mode: "search", Term: "Software", ID: "c9"}))
	require.NoError(t, err)

	assert.Equal(t, "c9", tok.ID)
	assert.True(t, tok.Matches("search", "Software"))
	assert.False(t, tok.Matches("search", "Soft"))
	assert.False(t, tok.Matches("recent", ""))
}
