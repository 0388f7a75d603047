package engine

import (
	"context"
	"fmt"
	"regexp"

	"github.com/gclient-go/gclient/internal/host"
	"github.com/gclient-go/gclient/internal/logging"
	"github.com/gclient-go/gclient/internal/manifest"
	"github.com/gclient-go/gclient/internal/scm"
)

// runHooks runs the collected hooks after update, revert and runhooks. Every
// hook runs on runhooks, with Force, or on the first sync of a root;
// otherwise a hook runs only when its pattern matches a touched file.
func (c *Client) runHooks(ctx context.Context, r *resolution, firstRun bool) error {
	switch r.verb {
	case scm.VerbUpdate, scm.VerbRevert, scm.VerbRunHooks:
	default:
		return nil
	}
	if c.Options.NoHooks || len(r.hooks) == 0 {
		return nil
	}

	all := r.verb == scm.VerbRunHooks || c.Options.Force || firstRun
	logger := logging.GetLogger("engine")
	for _, h := range r.hooks {
		if !all {
			matched, err := hookMatches(h, r.files)
			if err != nil {
				return err
			}
			if !matched {
				logger.Debug().Str("pattern", h.Pattern).Msg("hook skipped, no matching files")
				continue
			}
		}
		if err := c.runHook(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

func hookMatches(h manifest.Hook, files []string) (bool, error) {
	re, err := regexp.Compile(h.Pattern)
	if err != nil {
		return false, fmt.Errorf("hook pattern %q: %w", h.Pattern, err)
	}
	for _, f := range files {
		if re.MatchString(f) {
			return true, nil
		}
	}
	return false, nil
}

// hookFailStatus replaces the exit status of a failed hook action.
const hookFailStatus = 2

func (c *Client) runHook(ctx context.Context, h manifest.Hook) error {
	if c.env.Runner == nil {
		return &HookError{Action: h.Action, Status: hookFailStatus, Err: fmt.Errorf("no runner configured")}
	}
	status := hookFailStatus
	res, err := c.env.Runner.Stream(ctx, host.Command{Args: h.Action, Dir: c.RootDir, FailStatus: &status})
	if err != nil {
		return &HookError{Action: h.Action, Status: hookFailStatus, Err: err}
	}
	if res != nil && res.Status != 0 {
		return &HookError{Action: h.Action, Status: res.Status}
	}
	return nil
}
