package ports

import "github.com/aalvaropc/usbsim/internal/domain"

// Reporter receives pipeline progress events. Implementations own all
// presentation concerns (colour, pacing, listings).
type Reporter interface {
	Report(ev domain.Event)
}
