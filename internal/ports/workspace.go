package ports

import "github.com/aalvaropc/usbsim/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
