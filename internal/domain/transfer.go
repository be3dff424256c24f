package domain

import "time"

// TransferRequest is the input of one pipeline run.
type TransferRequest struct {
	Content         string
	SourcePath      string
	DestinationPath string
}

// TransferResult summarizes a run. Outcome is the TransferOutcome: true iff
// the destination file content equals the source content.
type TransferResult struct {
	ID              string
	SourcePath      string
	DestinationPath string

	Content  string
	Received string
	Payload  Payload
	Outcome  bool

	StartedAt time.Time
	EndedAt   time.Time
}
