package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/infra/workspacefinder"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "usbsim.yaml"))
	assertFileExists(t, filepath.Join(tmp, ".gitignore"))
	assertFileExists(t, filepath.Join(tmp, ".usbsim", "logs"))
}

func TestInitializer_Init_TemplateLoadsAsDefaults(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected template to match defaults, got %+v", cfg)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "usbsim.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing usbsim.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read usbsim.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected usbsim.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read usbsim.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "usbsim:") {
		t.Fatalf("expected usbsim.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
