package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"nama_sesuai_ktp": "Asep Sunandar",
		"exp":             exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test_secret"))
	require.NoError(t, err)
	return s
}

func TestIsAuthenticated(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rd := &Reader{Now: func() time.Time { return now }}

	tests := []struct {
		name        string
		token       string
		want        bool
		wantCleared bool
	}{
		{
			name:  "no token",
			token: "",
			want:  false,
		},
		{
			name:  "opaque token without jwt structure is accepted",
			token: "abc",
			want:  true,
		},
		{
			name:  "valid unexpired jwt",
			token: signedToken(t, now.Add(time.Hour)),
			want:  true,
		},
		{
			name:        "expired jwt is rejected and cleared",
			token:       signedToken(t, now.Add(-time.Hour)),
			want:        false,
			wantCleared: true,
		},
		{
			name:        "three segments but garbage payload",
			token:       "aaa.%%%.ccc",
			want:        false,
			wantCleared: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.token != "" {
				store.Set(TokenKey, tt.token)
				store.Set(UserKey, `{"nama":"x"}`)
			}

			assert.Equal(t, tt.want, rd.IsAuthenticated(store))

			_, stillThere := store.Get(TokenKey)
			if tt.wantCleared {
				assert.False(t, stillThere, "invalid token should be cleared")
				_, userThere := store.Get(UserKey)
				assert.False(t, userThere, "cached user blob should be cleared too")
			} else if tt.token != "" {
				assert.True(t, stillThere)
			}
		})
	}
}

func TestIsAuthenticatedIdempotent(t *testing.T) {
	rd := NewReader()
	store := NewMemoryStore()
	store.Set(TokenKey, "abc")

	first := rd.IsAuthenticated(store)
	second := rd.IsAuthenticated(store)
	assert.Equal(t, first, second)
	assert.True(t, first)

	empty := NewMemoryStore()
	assert.Equal(t, rd.IsAuthenticated(empty), rd.IsAuthenticated(empty))
}

func TestClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rd := &Reader{Now: func() time.Time { return now }}

	store := NewMemoryStore()
	store.Set(TokenKey, signedToken(t, now.Add(time.Hour)))

	claims := rd.Claims(store)
	require.NotNil(t, claims)
	assert.Equal(t, "Asep Sunandar", claims["nama_sesuai_ktp"])

	opaque := NewMemoryStore()
	opaque.Set(TokenKey, "abc")
	assert.Nil(t, rd.Claims(opaque))
}
