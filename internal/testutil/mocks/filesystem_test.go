package mocks

import (
	"sync"
	"testing"
)

func TestFileSystem_ReadFile(t *testing.T) {
	fs := NewFileSystem()
	fs.AddFile("/home/user/.airstrip.yaml", "model: llama3.2")

	content, err := fs.ReadFile("/home/user/.airstrip.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "model: llama3.2" {
		t.Errorf("ReadFile() = %q, want %q", string(content), "model: llama3.2")
	}
}

func TestFileSystem_ReadFile_NotFound(t *testing.T) {
	fs := NewFileSystem()

	_, err := fs.ReadFile("/nonexistent")
	if err == nil {
		t.Error("ReadFile() should return error for non-existent file")
	}
}

func TestFileSystem_WriteFile(t *testing.T) {
	fs := NewFileSystem()

	err := fs.WriteFile("/home/user/.config/test", []byte("content"), 0o644)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	content, _ := fs.ReadFile("/home/user/.config/test")
	if string(content) != "content" {
		t.Errorf("WriteFile() content = %q, want %q", string(content), "content")
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := NewFileSystem()
	fs.AddFile("/home/user/.docker/config.json", "{}")

	if !fs.Exists("/home/user/.docker/config.json") {
		t.Error("Exists() should return true for existing file")
	}
	if fs.Exists("/nonexistent") {
		t.Error("Exists() should return false for non-existent file")
	}
}

func TestFileSystem_Remove(t *testing.T) {
	fs := NewFileSystem()
	fs.AddFile("/state/run.json", "{}")

	err := fs.Remove("/state/run.json")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if fs.Exists("/state/run.json") {
		t.Error("Remove() should delete the file")
	}
}

func TestFileSystem_Remove_Missing(t *testing.T) {
	fs := NewFileSystem()

	if err := fs.Remove("/nope"); err == nil {
		t.Error("Remove() should fail for a missing path")
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fs := NewFileSystem()

	err := fs.MkdirAll("/home/user/.local/state/airstrip", 0o755)
	if err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if !fs.IsDir("/home/user/.local/state/airstrip") {
		t.Error("MkdirAll() should create directory")
	}
	if !fs.IsDir("/home/user/.local/state") {
		t.Error("MkdirAll() should create parent directories")
	}
}

func TestFileSystem_ReadDir(t *testing.T) {
	fs := NewFileSystem()
	fs.AddDir("/state")
	fs.AddFile("/state/a.json", "{}")
	fs.AddFile("/state/b.json", "{}")
	fs.AddFile("/state/nested/c.json", "{}")

	entries, err := fs.ReadDir("/state")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ReadDir() len = %d, want 3 (a.json, b.json, nested)", len(entries))
	}
	if entries[0].Name != "a.json" || entries[0].IsDir {
		t.Errorf("entries[0] = %+v, want file a.json", entries[0])
	}
	if entries[2].Name != "nested" || !entries[2].IsDir {
		t.Errorf("entries[2] = %+v, want dir nested", entries[2])
	}
}

func TestFileSystem_ReadDir_Missing(t *testing.T) {
	fs := NewFileSystem()

	if _, err := fs.ReadDir("/missing"); err == nil {
		t.Error("ReadDir() should fail for a missing directory")
	}
}

func TestFileSystem_ReadDir_Empty(t *testing.T) {
	fs := NewFileSystem()
	fs.AddDir("/empty")

	entries, err := fs.ReadDir("/empty")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ReadDir() len = %d, want 0", len(entries))
	}
}

func TestFileSystem_Reset(t *testing.T) {
	fs := NewFileSystem()
	fs.AddFile("/test.txt", "content")
	fs.AddDir("/dir")

	fs.Reset()

	if fs.Exists("/test.txt") || fs.Exists("/dir") {
		t.Error("Reset() should clear all entries")
	}
}

func TestFileSystem_ThreadSafety(_ *testing.T) {
	fs := NewFileSystem()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			path := "/file" + string(rune('a'+idx%26))
			_ = fs.WriteFile(path, []byte("content"), 0o644)
			_, _ = fs.ReadFile(path)
			_ = fs.Exists(path)
		}(i)
	}

	wg.Wait()
	// Should not panic or have data races
}
