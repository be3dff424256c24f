package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/infra/workspacefinder"
	"github.com/aalvaropc/usbsim/internal/ports"
)

// settings is the effective configuration of one run:
// defaults, then usbsim.yaml, then flags.
type settings struct {
	root    string
	cfg     domain.Config
	logPath string
}

func resolveSettings(cmd *cobra.Command, f rootFlags, args []string) (settings, error) {
	root, err := resolveWorkspaceRoot(workspacefinder.NewFinder(), f.workspace)
	if err != nil {
		return settings{}, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return settings{}, err
	}

	if len(args) > 0 {
		cfg.Content = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Paths.Source = f.source
	}
	if flags.Changed("dest") {
		cfg.Paths.Destination = f.dest
	}
	if flags.Changed("format") {
		cfg.Presentation.Format = strings.TrimSpace(f.format)
	}
	if flags.Changed("delay") {
		cfg.Presentation.Delay = f.delay
	}
	if flags.Changed("fault-at") {
		cfg.Channel.FaultAt = f.faultAt
	}

	if err := validateConfig(cfg); err != nil {
		return settings{}, err
	}

	cfg.Paths.Source = resolvePath(root, cfg.Paths.Source)
	cfg.Paths.Destination = resolvePath(root, cfg.Paths.Destination)

	return settings{root: root, cfg: cfg}, nil
}

func validateConfig(cfg domain.Config) error {
	var problem string
	switch {
	case !domain.ValidFormat(cfg.Presentation.Format):
		problem = fmt.Sprintf("unsupported format %q (expected pretty|plain|json)", cfg.Presentation.Format)
	case cfg.Presentation.Delay < 0:
		problem = fmt.Sprintf("delay must not be negative, got %s", cfg.Presentation.Delay)
	case cfg.Channel.FaultAt < domain.NoFault:
		problem = fmt.Sprintf("fault-at must be >= -1, got %d", cfg.Channel.FaultAt)
	case strings.TrimSpace(cfg.Paths.Source) == "" || strings.TrimSpace(cfg.Paths.Destination) == "":
		problem = "source and destination paths are required"
	default:
		return nil
	}
	return &domain.OpError{
		Op:   "cli.settings",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%s: %w", problem, domain.ErrInvalidConfig),
	}
}

// resolveWorkspaceRoot returns the explicit workspace, the nearest directory
// holding usbsim.yaml, or the working directory.
func resolveWorkspaceRoot(locator ports.WorkspaceLocator, workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if root, err := locator.FindRoot(wd); err == nil && root != "" {
		return root, nil
	}
	return wd, nil
}

func resolvePath(root, p string) string {
	p = strings.TrimSpace(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
