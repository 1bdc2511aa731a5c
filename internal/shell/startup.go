package shell

import (
	"context"
	"fmt"

	"kma/internal/logging"

	"golang.org/x/sync/errgroup"
)

// ProbeResult is the cached outcome of the startup probes.
type ProbeResult struct {
	Environment EnvironmentInfo
	IsAdmin     bool

	// Probe errors, kept for display. A failed probe already has its fallback applied.
	EnvironmentErr error
	PermissionErr  error
}

// RunProbes runs both probes concurrently. A probe that errors or panics is
// replaced with its fallback (unknown environment, non-admin); RunProbes itself
// never fails.
func RunProbes(ctx context.Context, env EnvironmentProbe, perms PermissionProbe) ProbeResult {
	res := ProbeResult{Environment: UnknownEnvironment}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		info, err := safeEnvironment(gctx, env)
		if err != nil {
			logging.Get(logging.CategoryShell).Warn("environment probe failed, using %s: %v", UnknownEnvironment, err)
			res.EnvironmentErr = err
			return nil
		}
		res.Environment = info
		logging.Shell("environment: %s", info)
		return nil
	})

	g.Go(func() error {
		admin, err := safeIsAdmin(gctx, perms)
		if err != nil {
			logging.Get(logging.CategoryShell).Warn("could not determine user permissions, defaulting to non-admin: %v", err)
			res.PermissionErr = err
			return nil
		}
		res.IsAdmin = admin
		logging.Shell("user admin status: %t", admin)
		return nil
	})

	_ = g.Wait()
	return res
}

func safeEnvironment(ctx context.Context, p EnvironmentProbe) (info EnvironmentInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info, err = UnknownEnvironment, fmt.Errorf("environment probe panicked: %v", r)
		}
	}()
	if p == nil {
		return UnknownEnvironment, fmt.Errorf("no environment probe")
	}
	return p.Environment(ctx)
}

func safeIsAdmin(ctx context.Context, p PermissionProbe) (admin bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			admin, err = false, fmt.Errorf("permission probe panicked: %v", r)
		}
	}()
	if p == nil {
		return false, fmt.Errorf("no permission probe")
	}
	return p.IsAdmin(ctx)
}
