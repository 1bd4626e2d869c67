package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	password = "myMegaPass"
	hashPass = "af89968d2591ce2f7f38d934c9abcc982461e0158be34a360b02f2e328d7a4b3"
)

func TestGetPassHash(t *testing.T) {
	res := GeneratePasswordHash(password)
	assert.Equal(t, hashPass, res)
}

func TestGenerateRandomKey(t *testing.T) {
	k1, err := GenerateRandomKey()
	require.NoError(t, err)
	k2, err := GenerateRandomKey()
	require.NoError(t, err)

	assert.Len(t, k1, 64)
	assert.NotEqual(t, k1, k2)
}
