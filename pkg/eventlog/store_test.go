package eventlog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreContentWritesAndReturnsPath(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	dir := filepath.Join(t.TempDir(), "run", "samples")

	path, err := d.StoreContent(dir, "abc.bin", []byte{0xde, 0xad})
	if err != nil {
		t.Fatalf("StoreContent failed: %v", err)
	}
	if path != filepath.Join(dir, "abc.bin") {
		t.Errorf("Unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(data) != 2 || data[0] != 0xde {
		t.Errorf("Unexpected content %v", data)
	}
}

func TestStoreContentExistingDirIsNotAnError(t *testing.T) {
	d, _ := newTestDispatcher(t, nil)
	dir := t.TempDir()

	if _, err := d.StoreContent(dir, "one.bin", []byte("1")); err != nil {
		t.Fatalf("first store failed: %v", err)
	}
	if _, err := d.StoreContent(dir, "two.bin", []byte("2")); err != nil {
		t.Fatalf("second store into existing dir failed: %v", err)
	}
}

func TestStoreContentDisabledFileLogging(t *testing.T) {
	reg := NewRegistry("test")
	d := NewDispatcher(reg, Config{FileLogging: false, OutputDir: t.TempDir()}, Collaborators{}, nil)

	dir := filepath.Join(t.TempDir(), "never")
	path, err := d.StoreContent(dir, "x.bin", []byte("x"))
	if err != nil {
		t.Fatalf("StoreContent failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected empty path, got %q", path)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected directory not to be created")
	}
}
