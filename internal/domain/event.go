package domain

import "time"

// Phase groups events by the component that produced them.
type Phase string

const (
	PhaseSender   Phase = "sender"
	PhaseChannel  Phase = "channel"
	PhaseReceiver Phase = "receiver"
)

// EventKind names a progress event. Values are stable (used in JSON output).
type EventKind string

const (
	EventTransferStarted    EventKind = "transfer.started"
	EventPhaseStarted       EventKind = "phase.started"
	EventSourceWritten      EventKind = "source.written"
	EventSourceRead         EventKind = "source.read"
	EventRecordLoaded       EventKind = "record.loaded"
	EventChannelReady       EventKind = "channel.ready"
	EventRecordSent         EventKind = "record.sent"
	EventRecordRelayed      EventKind = "record.relayed"
	EventRecordReceived     EventKind = "record.received"
	EventRecordStored       EventKind = "record.stored"
	EventDestinationWritten EventKind = "destination.written"
	EventVerified           EventKind = "destination.verified"
	EventTransferFinished   EventKind = "transfer.finished"
)

// Event is a progress notification emitted by the pipeline. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind       EventKind   `json:"kind"`
	Phase      Phase       `json:"phase,omitempty"`
	TransferID string      `json:"transfer_id,omitempty"`
	Index      int         `json:"index"`
	Total      int         `json:"total"`
	Record     *ByteRecord `json:"record,omitempty"`
	Checksum   int         `json:"checksum"`
	Path       string      `json:"path,omitempty"`
	Dest       string      `json:"dest,omitempty"`
	Content    string      `json:"content,omitempty"`
	Expected   string      `json:"expected,omitempty"`
	Outcome    bool        `json:"outcome"`
	At         time.Time   `json:"at"`
}
