package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/usbsim/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads usbsim.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.USBSim.Content != nil {
		cfg.Content = *y.USBSim.Content
	}
	if y.USBSim.Paths.Source != "" {
		cfg.Paths.Source = y.USBSim.Paths.Source
	}
	if y.USBSim.Paths.Destination != "" {
		cfg.Paths.Destination = y.USBSim.Paths.Destination
	}
	if f := strings.TrimSpace(y.USBSim.Presentation.Format); f != "" {
		if !domain.ValidFormat(f) {
			return cfg, invalidField(path, "presentation.format", fmt.Sprintf("unsupported format %q", f))
		}
		cfg.Presentation.Format = f
	}
	if d := strings.TrimSpace(y.USBSim.Presentation.Delay); d != "" {
		delay, err := time.ParseDuration(d)
		if err != nil || delay < 0 {
			return cfg, invalidField(path, "presentation.delay", fmt.Sprintf("invalid duration %q", d))
		}
		cfg.Presentation.Delay = delay
	}
	if y.USBSim.Channel.FaultAt != nil {
		if *y.USBSim.Channel.FaultAt < domain.NoFault {
			return cfg, invalidField(path, "channel.fault_at", "must be -1 or a record index")
		}
		cfg.Channel.FaultAt = *y.USBSim.Channel.FaultAt
	}

	return cfg, nil
}

type yamlConfig struct {
	USBSim struct {
		Content *string `yaml:"content"`

		Paths struct {
			Source      string `yaml:"source"`
			Destination string `yaml:"destination"`
		} `yaml:"paths"`

		Presentation struct {
			Format string `yaml:"format"`
			Delay  string `yaml:"delay"`
		} `yaml:"presentation"`

		Channel struct {
			FaultAt *int `yaml:"fault_at"`
		} `yaml:"channel"`
	} `yaml:"usbsim"`
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
