package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureGitignore_CreatesFile(t *testing.T) {
	tmp := t.TempDir()

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}

	s := string(b)
	for _, w := range []string{"# usbsim", ".usbsim/", "archivo_a.txt", "archivo_recibido.txt"} {
		if !strings.Contains(s, w) {
			t.Fatalf("expected .gitignore to contain %q, got:\n%s", w, s)
		}
	}
}

func TestEnsureGitignore_AppendsMissingEntries(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".gitignore")

	existing := "node_modules/\n# usbsim\narchivo_a.txt"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	s := string(b)

	if !strings.Contains(s, "node_modules/") {
		t.Fatalf("expected existing content preserved, got:\n%s", s)
	}
	if strings.Count(s, "# usbsim") != 1 {
		t.Fatalf("expected 1 header, got:\n%s", s)
	}
	if strings.Count(s, "archivo_a.txt") != 1 {
		t.Fatalf("expected archivo_a.txt not duplicated, got:\n%s", s)
	}
	for _, w := range []string{".usbsim/", "archivo_recibido.txt"} {
		if !strings.Contains(s, w) {
			t.Fatalf("expected .gitignore to contain %q, got:\n%s", w, s)
		}
	}
}

func TestEnsureGitignore_NoopWhenComplete(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".gitignore")
	full := "# usbsim\n.usbsim/\narchivo_a.txt\narchivo_recibido.txt\n"
	if err := os.WriteFile(path, []byte(full), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}
	b, _ := os.ReadFile(path)
	if string(b) != full {
		t.Fatalf("expected unchanged file, got:\n%s", b)
	}
}
