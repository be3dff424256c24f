package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/usbsim/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func progressLine(last domain.EventKind, events int) string {
	if last == "" {
		return "waiting for the sender…"
	}
	return fmt.Sprintf("%s (%d events)", clampString(string(last), 32), events)
}
