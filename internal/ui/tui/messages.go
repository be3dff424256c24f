package tui

import "github.com/aalvaropc/usbsim/internal/domain"

type eventMsg struct {
	ev domain.Event
}

type transferDoneMsg struct {
	result domain.TransferResult
	err    error
}
