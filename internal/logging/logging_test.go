package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupFileSink(t *testing.T) {
	dir := t.TempDir()
	logger, closeFile := Setup(Options{Dir: dir})

	logger.Info("hello", "answer", 42)
	if err := closeFile(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "blink.log"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "answer=42") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestSetupNoSinks(t *testing.T) {
	logger, closeFile := Setup(Options{})
	defer closeFile()

	// Must not panic with every sink disabled.
	logger.Warn("dropped")
}

func TestSetupDebugLevel(t *testing.T) {
	dir := t.TempDir()
	logger, closeFile := Setup(Options{Dir: dir, Debug: true})

	logger.Debug("verbose detail")
	closeFile()

	data, err := os.ReadFile(filepath.Join(dir, "blink.log"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "verbose detail") {
		t.Errorf("debug record not written: %q", data)
	}
}
