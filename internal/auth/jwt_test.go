package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secKey = "zoku4eitieC6meingu4xoh3tiePh4sei"
	login  = "dock1"
)

func signed(t *testing.T, claims Claims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func TestParseJWT(t *testing.T) {
	okToken, err := GenerateJWT(login, secKey)
	require.NoError(t, err)

	expired := signed(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
		Login:            login,
	}, secKey)
	noLogin := signed(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}, secKey)
	otherKey := signed(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Login:            login,
	}, "another-key")

	testCases := []struct {
		name     string
		token    string
		expLogin string
		expErr   bool
	}{
		{name: "tokenOK", token: okToken, expLogin: login},
		{name: "tokenExp", token: expired, expErr: true},
		{name: "noLogin", token: noLogin, expErr: true},
		{name: "wrongKey", token: otherKey, expErr: true},
		{name: "wrongToken", token: "fakejwt", expErr: true},
	}

	for _, v := range testCases {
		t.Run(v.name, func(t *testing.T) {
			res, err := ParseJWT(v.token, secKey)
			if v.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, v.expLogin, res)
		})
	}
}
