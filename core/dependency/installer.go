package dependency

import (
	"context"
	"fmt"

	"github.com/tristendillon/gsqa/core/logger"
)

// Installer checks for and installs a single development dependency. The
// scaffold only ever talks to a package manager through this interface.
type Installer interface {
	Installed(ctx context.Context, name string) (bool, error)
	Install(ctx context.Context, name string) error
}

// Ensure installs name unless the installer reports it present. A failed
// check is treated as absent; a failed install is returned.
func Ensure(ctx context.Context, inst Installer, name string) error {
	installed, err := inst.Installed(ctx, name)
	switch {
	case err != nil:
		logger.Debug("Dependency check for %s failed: %v", name, err)
		logger.Info("Installing %s (fallback)...", name)
	case !installed:
		logger.Info("Installing %s...", name)
	default:
		logger.Info("%s already installed", name)
		return nil
	}

	if err := inst.Install(ctx, name); err != nil {
		return fmt.Errorf("failed to install %s: %w", name, err)
	}
	return nil
}
