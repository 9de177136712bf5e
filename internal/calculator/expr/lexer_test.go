package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize("sqrt(2.5e-3) ** -x1")
	require.NoError(t, err)

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{
		TokenIdent, TokenLParen, TokenNumber, TokenRParen,
		TokenPower, TokenMinus, TokenIdent, TokenEOF,
	}, types)
	assert.Equal(t, 2.5e-3, tokens[2].Number)
	assert.Equal(t, "x1", tokens[6].Text)
	assert.Equal(t, 13, tokens[4].Pos)
}

func TestTokenizeExponentNeedsDigits(t *testing.T) {
	tokens, err := Tokenize("2e")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, 2.0, tokens[0].Number)
	assert.Equal(t, TokenIdent, tokens[1].Type)
}

func TestTokenizeRejectsUnknownCharacters(t *testing.T) {
	_, err := Tokenize("1 % 2")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Tokenize("3×2")
	assert.ErrorIs(t, err, ErrSyntax)
}
