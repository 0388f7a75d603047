package host

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEchoesAndCaptures(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	r := NewExecRunner(out)

	res, err := r.Stream(context.Background(), Command{
		Args:    []string{"sh", "-c", `printf 'accb\naddb\nxyz'`},
		Dir:     dir,
		Pattern: regexp.MustCompile(`a(.*)b`),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cc", "dd"}, res.Captured)
	assert.Equal(t, 0, res.Status)
	assert.Equal(t,
		"\n________ running 'sh -c printf 'accb\\naddb\\nxyz'' in '"+dir+"'\naccb\naddb\nxyz\n",
		out.String())
}

func TestStreamMergesStderr(t *testing.T) {
	out := &bytes.Buffer{}
	_, err := NewExecRunner(out).Stream(context.Background(), Command{
		Args: []string{"sh", "-c", "echo oops 1>&2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "oops\n")
}

func TestStreamFailStatus(t *testing.T) {
	status := 2
	var out bytes.Buffer
	res, err := NewExecRunner(&out).Stream(context.Background(), Command{
		Args:       []string{"sh", "-c", "echo partial; exit 3"},
		Dir:        t.TempDir(),
		FailStatus: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Status)
	assert.Contains(t, out.String(), "partial\n")
}

func TestStreamNonZeroExit(t *testing.T) {
	_, err := NewExecRunner(nil).Stream(context.Background(), Command{
		Args: []string{"sh", "-c", "exit 3"},
		Dir:  t.TempDir(),
	})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Status)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestCapture(t *testing.T) {
	r := NewExecRunner(nil)
	out, err := r.Capture(context.Background(), []string{"sh", "-c", "echo hi; echo ignored 1>&2"}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(out))

	_, err = r.Capture(context.Background(), []string{"sh", "-c", "echo bad 1>&2; exit 1"}, t.TempDir())
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "bad", exitErr.Stderr)
}

func TestEmptyCommand(t *testing.T) {
	r := NewExecRunner(nil)
	_, err := r.Capture(context.Background(), nil, "")
	require.Error(t, err)
	_, err = r.Stream(context.Background(), Command{})
	require.Error(t, err)
}
