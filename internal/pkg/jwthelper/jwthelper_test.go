package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndParseToken(t *testing.T) {
	token, expiresAt, err := GenerateToken(key, "event-1", "admin", "admin", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseToken(key, "event-1", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseToken_Rejects(t *testing.T) {
	valid, _, err := GenerateToken(key, "event-1", "admin", "admin", time.Hour)
	require.NoError(t, err)

	expired, _, err := GenerateToken(key, "event-1", "admin", "admin", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		key    []byte
		issuer string
		token  string
	}{
		{name: "wrong key", key: []byte("another-key-another-key-another!!"), issuer: "event-1", token: valid},
		{name: "wrong issuer", key: key, issuer: "event-2", token: valid},
		{name: "expired", key: key, issuer: "event-1", token: expired},
		{name: "garbage", key: key, issuer: "event-1", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.key, tt.issuer, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
