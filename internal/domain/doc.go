// Package domain contains the core model of the usbsim transfer pipeline.
//
// The domain is presentation- and persistence-agnostic: it does not depend on
// lipgloss, YAML parsing, or the filesystem. Infra and UI adapters map into and
// from these types.
package domain
