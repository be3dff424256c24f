package usecase

import (
	"path/filepath"
	"strings"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute initializes a workspace at root and returns its absolute path.
func (uc *InitWorkspace) Execute(root string, force bool) (string, error) {
	r := strings.TrimSpace(root)
	if r == "" {
		r = "."
	}
	abs, err := filepath.Abs(r)
	if err != nil {
		return "", &domain.OpError{
			Op:   "usecase.init_workspace",
			Kind: domain.KindInvalidConfig,
			Path: r,
			Err:  err,
		}
	}

	if err := uc.initializer.Init(domain.WorkspaceSpec{Root: abs}, force); err != nil {
		return "", err
	}
	return abs, nil
}
