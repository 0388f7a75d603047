package scm

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gclient-go/gclient/internal/logging"
)

const infoCacheSize = 256

// CachedVCS memoizes Info lookups of remote URLs. Working-copy queries
// always reach the wrapped adapter. Reset drops every remembered lookup and
// is called at the start of each run, so live head revisions are never
// carried from one run to the next.
type CachedVCS struct {
	VCS
	remote *lru.Cache[string, Info]
}

// NewCachedVCS wraps vcs with a remote Info cache.
func NewCachedVCS(vcs VCS) (*CachedVCS, error) {
	cache, err := lru.New[string, Info](infoCacheSize)
	if err != nil {
		return nil, err
	}
	return &CachedVCS{VCS: vcs, remote: cache}, nil
}

func (c *CachedVCS) Info(ctx context.Context, target, dir string) (*Info, error) {
	if !strings.Contains(target, "://") {
		return c.VCS.Info(ctx, target, dir)
	}
	if info, ok := c.remote.Get(target); ok {
		logger := logging.GetLogger("scm")
		logger.Trace().Str("target", target).Msg("info cache hit")
		return &info, nil
	}
	info, err := c.VCS.Info(ctx, target, dir)
	if err != nil {
		return nil, err
	}
	c.remote.Add(target, *info)
	return info, nil
}

// Reset forgets every cached lookup.
func (c *CachedVCS) Reset() {
	c.remote.Purge()
}
