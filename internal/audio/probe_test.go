package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProbeBytes_RejectsGarbage(t *testing.T) {
	if _, err := ProbeBytes([]byte("not an mp3 at all")); err == nil {
		t.Error("expected error for non-MP3 payload")
	}
}

func TestProbeBytes_RejectsEmpty(t *testing.T) {
	if _, err := ProbeBytes(nil); err == nil {
		t.Error("expected error for empty payload")
	}
}

func TestProbeFile_MissingFile(t *testing.T) {
	_, err := ProbeFile(filepath.Join(t.TempDir(), "nope.mp3"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProbeFile_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mp3")
	if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ProbeFile(path); err == nil {
		t.Error("expected error for junk file")
	}
}
