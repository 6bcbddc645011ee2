package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "correct horse battery staple", digest)

	assert.True(t, Verify("correct horse battery staple", digest))
	assert.False(t, Verify("wrong password", digest))
	assert.False(t, Verify("", digest))
}

func TestHash_EmptyPassword(t *testing.T) {
	_, err := Hash("")
	require.Error(t, err)
}
