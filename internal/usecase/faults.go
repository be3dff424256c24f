package usecase

import (
	"fmt"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

// FaultFunc adapts a function to ports.FaultInjector.
type FaultFunc func(index int, rec domain.ByteRecord) error

func (f FaultFunc) Inject(index int, rec domain.ByteRecord) error {
	return f(index, rec)
}

// FailAt returns an injector that fails on the record at index.
// A negative index disables injection and returns nil.
func FailAt(index int) ports.FaultInjector {
	if index < 0 {
		return nil
	}
	return FaultFunc(func(i int, _ domain.ByteRecord) error {
		if i == index {
			return fmt.Errorf("injected at record %d: %w", i, domain.ErrChannelFault)
		}
		return nil
	})
}
