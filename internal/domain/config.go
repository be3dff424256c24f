package domain

import "time"

// Output formats for the presentation layer.
const (
	FormatPretty = "pretty"
	FormatPlain  = "plain"
	FormatJSON   = "json"
)

// NoFault disables channel fault injection.
const NoFault = -1

// Config represents the usbsim configuration loaded from usbsim.yaml.
type Config struct {
	Content      string
	Paths        PathsConfig
	Presentation PresentationConfig
	Channel      ChannelConfig
}

type PathsConfig struct {
	Source      string
	Destination string
}

type PresentationConfig struct {
	Format string
	Delay  time.Duration
}

type ChannelConfig struct {
	// FaultAt is the index of the record on which the channel fails.
	FaultAt int
}

// DefaultConfig reproduces the reference run: one "a" between two fixed files.
func DefaultConfig() Config {
	return Config{
		Content: "a",
		Paths: PathsConfig{
			Source:      "archivo_a.txt",
			Destination: "archivo_recibido.txt",
		},
		Presentation: PresentationConfig{
			Format: FormatPretty,
			Delay:  250 * time.Millisecond,
		},
		Channel: ChannelConfig{FaultAt: NoFault},
	}
}

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool {
	switch f {
	case FormatPretty, FormatPlain, FormatJSON:
		return true
	}
	return false
}
