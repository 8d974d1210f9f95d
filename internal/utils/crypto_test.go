package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey, _ = hex.DecodeString("a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6")

func TestEncryptField_RoundTrip(t *testing.T) {
	account := "0170099220000067797370"

	enc, err := EncryptField(account, testKey)
	require.NoError(t, err)
	assert.NotContains(t, enc, account)

	again, err := EncryptField(account, testKey)
	require.NoError(t, err)
	assert.NotEqual(t, enc, again, "random IV")

	dec, err := DecryptField(enc, testKey)
	require.NoError(t, err)
	assert.Equal(t, account, dec)
}

func TestEncryptField_Errors(t *testing.T) {
	_, err := EncryptField("", testKey)
	assert.Error(t, err)

	_, err = EncryptField("123", []byte("short"))
	assert.Error(t, err)

	_, err = DecryptField("zz", testKey)
	assert.Error(t, err)

	_, err = DecryptField(hex.EncodeToString(make([]byte, 8)), testKey)
	assert.Error(t, err)
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "******7370", MaskAccountNumber("0797797370"))
	assert.Equal(t, "123", MaskAccountNumber("123"))
}
