package scm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedVCSMemoizesRemoteInfo(t *testing.T) {
	vcs := newFakeVCS()
	vcs.infos["svn://h/trunk"] = &Info{URL: "svn://h/trunk", Revision: 9}
	vcs.infos[checkout] = &Info{URL: "svn://h/trunk", Revision: 1}
	cached, err := NewCachedVCS(vcs)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		info, err := cached.Info(ctx, "svn://h/trunk", root)
		require.NoError(t, err)
		assert.Equal(t, 9, info.Revision)
		_, err = cached.Info(ctx, checkout, root)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{
		"info svn://h/trunk",
		"info /r/dir",
		"info /r/dir",
		"info /r/dir",
	}, vcs.ops())
}

func TestCachedVCSReset(t *testing.T) {
	vcs := newFakeVCS()
	vcs.infos["svn://h/trunk"] = &Info{URL: "svn://h/trunk", Revision: 9}
	cached, err := NewCachedVCS(vcs)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cached.Info(ctx, "svn://h/trunk", root)
	require.NoError(t, err)

	vcs.infos["svn://h/trunk"] = &Info{URL: "svn://h/trunk", Revision: 10}
	cached.Reset()
	info, err := cached.Info(ctx, "svn://h/trunk", root)
	require.NoError(t, err)
	assert.Equal(t, 10, info.Revision)
	assert.Len(t, vcs.calls, 2)
}

func TestCachedVCSDoesNotCacheErrors(t *testing.T) {
	vcs := newFakeVCS()
	cached, err := NewCachedVCS(vcs)
	require.NoError(t, err)

	_, err = cached.Info(context.Background(), "svn://gone", root)
	require.Error(t, err)
	_, err = cached.Info(context.Background(), "svn://gone", root)
	require.Error(t, err)
	assert.Len(t, vcs.calls, 2)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("svn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(none registered)")

	vcs := newFakeVCS()
	r.Register("svn", vcs)
	got, err := r.Get("svn")
	require.NoError(t, err)
	assert.Same(t, vcs, got)
}
