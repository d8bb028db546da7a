package engine

import (
	"context"
	"fmt"

	"github.com/bitpy2023/netfix/internal/apt"
	"github.com/bitpy2023/netfix/internal/backup"
	"github.com/bitpy2023/netfix/internal/config"
	"github.com/bitpy2023/netfix/internal/resolver"
	"github.com/bitpy2023/netfix/internal/sysctl"
)

// FixSteps builds the ordered repair steps for the given mode:
// backup, dns, sources, proxy (only when an HTTP proxy is configured),
// bootstrap, sysctl.
func FixSteps(cfg *config.Config, mode Mode, run CmdRunner, guard *ResolverGuard) []Step {
	servers := cfg.DNS.Normal
	mirrors := cfg.Mirrors.Normal
	if mode == ModeAggressive {
		servers = cfg.DNS.Aggressive
		mirrors = cfg.Mirrors.Aggressive
	}

	steps := []Step{
		{Name: "backup", Run: func(ctx context.Context) StepResult {
			written, err := backup.Run(cfg.Files.SourcesList, cfg.Files.ResolvConf)
			if err != nil {
				return fatalResult(err)
			}
			return okResult(fmt.Sprintf("%d files backed up", len(written)))
		}},
		{Name: "dns", Run: func(ctx context.Context) StepResult {
			if err := resolver.Write(cfg.Files.ResolvConf, servers); err != nil {
				return fatalResult(err)
			}
			if guard != nil {
				guard.KeepLocked()
			}
			return okResult(fmt.Sprintf("%d nameservers written", len(servers)))
		}},
		{Name: "sources", Run: func(ctx context.Context) StepResult {
			if err := apt.WriteSources(cfg.Files.SourcesList, mirrors); err != nil {
				return fatalResult(err)
			}
			return okResult(fmt.Sprintf("%d mirror lines written (%s set)", len(mirrors), mode))
		}},
	}

	if proxyURL := apt.ProxyFromEnv(); proxyURL != "" {
		steps = append(steps, Step{Name: "proxy", Run: func(ctx context.Context) StepResult {
			if err := apt.WriteProxyConf(cfg.Packages.ProxyConf, proxyURL); err != nil {
				return advisoryResult(err)
			}
			return okResult("apt proxy configured from environment")
		}})
	}

	steps = append(steps,
		Step{Name: "bootstrap", Run: func(ctx context.Context) StepResult {
			if err := apt.Bootstrap(ctx, apt.CommandRunner(run), cfg.Packages.Keyrings); err != nil {
				return fatalResult(err)
			}
			return okResult(fmt.Sprintf("%d keyring packages installed", len(cfg.Packages.Keyrings)))
		}},
		Step{Name: "sysctl", Run: func(ctx context.Context) StepResult {
			added, err := sysctl.EnsureParams(cfg.Files.SysctlConf, cfg.Sysctl.Params)
			if err != nil {
				return advisoryResult(err)
			}
			if err := sysctl.Reload(ctx, sysctl.Runner(run), cfg.Files.SysctlConf); err != nil {
				return advisoryResult(err)
			}
			return okResult(fmt.Sprintf("%d tuning lines added", len(added)))
		}},
	)

	return steps
}
