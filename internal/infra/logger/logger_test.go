package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSONLogFile(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	if err := IsReady(); err != nil {
		t.Fatalf("expected ready logger: %v", err)
	}
	want := filepath.Join(root, ".usbsim", "logs", "usbsim.log")
	if Path() != want {
		t.Fatalf("expected path %s, got %s", want, Path())
	}

	L().Info("transfer.start", "id", "t-1")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}
	if IsReady() == nil {
		t.Fatal("expected logger reset after cleanup")
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"msg":"logger.initialized"`) || !strings.Contains(s, `"msg":"transfer.start"`) {
		t.Fatalf("unexpected log content:\n%s", s)
	}
}

func TestSetup_DebugFansOutToStderr(t *testing.T) {
	root := t.TempDir()
	var stderr bytes.Buffer

	cleanup, err := Setup(Config{Root: root, Debug: true, Stderr: &stderr})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	defer func() { _ = cleanup() }()

	L().Debug("channel.relay", "index", 0, "checksum", 3)

	out := stderr.String()
	if !strings.Contains(out, "channel.relay") || !strings.Contains(out, "checksum=3") {
		t.Fatalf("expected debug record on stderr, got:\n%s", out)
	}
}

func TestSetup_UnwritableRootFallsBackToDiscard(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, ".usbsim")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}

	cleanup, err := Setup(Config{Root: root})
	if err == nil {
		t.Fatal("expected error")
	}
	if cleanup != nil {
		t.Fatal("expected nil cleanup on error")
	}
	if IsReady() == nil {
		t.Fatal("expected discard logger")
	}
	L().Info("still.safe")
}
