package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperatorToken(t *testing.T) {
	tok, err := NewOperatorToken("s3cret", "ops@example.com", "OPERATOR", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	sub, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", sub)
	assert.Equal(t, "OPERATOR", claims["role"])
}

func TestNewOperatorTokenRejectsBadInput(t *testing.T) {
	_, err := NewOperatorToken("", "ops", "OPERATOR", time.Hour)
	assert.Error(t, err)
	_, err = NewOperatorToken("s3cret", "ops", "OPERATOR", 0)
	assert.Error(t, err)
}
