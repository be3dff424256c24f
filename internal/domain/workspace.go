package domain

// WorkspaceSpec describes where `usbsim init` should write its files.
type WorkspaceSpec struct {
	Root string
}
