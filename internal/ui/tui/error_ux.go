package tui

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/usbsim/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "Transfer cancelled"
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindIO:
			if strings.TrimSpace(oe.Path) != "" {
				return "Cannot access " + filepath.Base(oe.Path)
			}
			return "File I/O failed"

		case domain.KindEncoding:
			return "Content cannot be encoded as 8-bit bytes"

		case domain.KindChannel:
			return "USB channel fault"

		case domain.KindIntegrity:
			return "Files do not match"

		case domain.KindInvalidState:
			return "Stage out of order (see logs)"

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "workspacefinder.findroot") {
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			return "Invalid config"

		default:
			return "Unexpected error (see logs)"
		}
	}

	return "Unexpected error (see logs)"
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
