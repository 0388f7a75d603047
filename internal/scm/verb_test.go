package scm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerb(t *testing.T) {
	for _, v := range Verbs() {
		got, err := ParseVerb(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := ParseVerb("foo")
	var cmdErr *UnsupportedCommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "'foo' is an unsupported command", err.Error())
}

func TestVerbSyncs(t *testing.T) {
	assert.True(t, VerbUpdate.Syncs())
	assert.True(t, VerbRevert.Syncs())
	assert.False(t, VerbStatus.Syncs())
	assert.False(t, VerbCleanup.Syncs())
	assert.False(t, VerbRunHooks.Syncs())
	assert.False(t, VerbRevInfo.Syncs())
}
