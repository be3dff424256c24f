package ports

import "github.com/aalvaropc/usbsim/internal/domain"

// FaultInjector decides whether the channel fails while relaying a record.
type FaultInjector interface {
	Inject(index int, rec domain.ByteRecord) error
}
