package engine

import (
	"log/slog"

	"github.com/bitpy2023/netfix/internal/resolver"
)

// ResolverGuard scopes a fix run's hold on the resolver file. Acquisition
// clears a stale immutable attribute left by an earlier run so the file
// can be rewritten. Release re-applies the attribute only when the DNS
// step completed; an interrupted run leaves the file unlocked.
type ResolverGuard struct {
	path   string
	logger *slog.Logger
	lock   bool
}

// AcquireResolver clears any immutable attribute on path and returns a
// guard whose Release must run on every exit path.
func AcquireResolver(path string, logger *slog.Logger) *ResolverGuard {
	if logger == nil {
		logger = slog.Default()
	}
	if err := resolver.ClearImmutable(path); err != nil {
		// Missing file or unsupported filesystem; the write step decides
		// whether that matters.
		logger.Debug("could not clear immutable attribute", "path", path, "error", err)
	}
	return &ResolverGuard{path: path, logger: logger}
}

// KeepLocked marks the resolver file to be re-locked on release.
func (g *ResolverGuard) KeepLocked() {
	g.lock = true
}

// Release re-applies the immutable attribute when KeepLocked was called.
// Failures are advisory; some filesystems lack attribute support.
func (g *ResolverGuard) Release() {
	if !g.lock {
		return
	}
	if err := resolver.SetImmutable(g.path); err != nil {
		g.logger.Warn("could not set immutable attribute", "path", g.path, "error", err)
	}
}
