package usecase

import (
	"fmt"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

// Channel relays records from sender to receiver. It computes a checksum per
// record for observation only; records are never dropped, reordered or
// modified.
type Channel struct {
	stageDeps
	fault ports.FaultInjector
}

// NewChannel returns a channel. A nil fault injector never fails.
func NewChannel(fault ports.FaultInjector, opts ...StageOption) *Channel {
	return &Channel{
		stageDeps: newStageDeps(opts),
		fault:     fault,
	}
}

func (c *Channel) Relay(payload domain.Payload) (domain.Payload, error) {
	out := make(domain.Payload, 0, len(payload))

	for i, rec := range payload {
		if c.fault != nil {
			if err := c.fault.Inject(i, rec); err != nil {
				c.log.Error("channel.fault", "index", i, "err", err)
				return nil, &domain.OpError{
					Op:   "channel.relay",
					Kind: domain.KindChannel,
					Err:  fmt.Errorf("record %d: %w", i, err),
				}
			}
		}

		sum := rec.Checksum()
		c.log.Debug("channel.relay",
			"index", i,
			"hex", rec.Hex,
			"binary", rec.Binary,
			"checksum", sum,
		)

		ev := recordEvent(domain.EventRecordRelayed, domain.PhaseChannel, i, len(payload), rec)
		ev.Checksum = sum
		c.emit(ev)

		out = append(out, rec)
	}
	return out, nil
}
