package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/decker502/texui/pkg/embedded"
	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建用于测试的 gdata Manager，失败时跳过测试
func createTestGdataManager(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))

	manager, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("texui_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

func TestGetFileAsBytes(t *testing.T) {
	files := stubFiles{"a": []byte("abc")}

	if got := GetFileAsBytes(files, "a"); string(got) != "abc" {
		t.Errorf("GetFileAsBytes(a) = %q, want %q", got, "abc")
	}
	if got := GetFileAsBytes(files, "missing"); got != nil {
		t.Errorf("GetFileAsBytes(missing) = %v, want nil", got)
	}
}

func TestFiles_LocalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.txt")
	if err := os.WriteFile(path, []byte("local"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := NewFiles(nil).ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "local" {
		t.Errorf("ReadFile = %q, want %q", data, "local")
	}
}

func TestFiles_ResPath(t *testing.T) {
	embedded.Init(fstest.MapFS{"data/a.txt": {Data: []byte("embedded")}})
	t.Cleanup(func() { embedded.Init(nil) })

	data, err := NewFiles(nil).ReadFile("res://data/a.txt")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "embedded" {
		t.Errorf("ReadFile = %q, want %q", data, "embedded")
	}
}

func TestFiles_UserPathWithoutStorage(t *testing.T) {
	files := NewFiles(nil)

	if _, err := files.ReadFile("user://notes/welcome"); !errors.Is(err, ErrUserDataUnavailable) {
		t.Errorf("ReadFile error = %v, want ErrUserDataUnavailable", err)
	}
	if err := files.WriteUserFile("user://notes/welcome", []byte("x")); !errors.Is(err, ErrUserDataUnavailable) {
		t.Errorf("WriteUserFile error = %v, want ErrUserDataUnavailable", err)
	}
}

func TestFiles_InvalidUserPath(t *testing.T) {
	files := NewFiles(nil)

	paths := []string{"user://", "user://notes", "user://notes/", "user:///welcome", "user://a/b/c"}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			if _, err := files.ReadFile(p); !errors.Is(err, ErrInvalidUserPath) {
				t.Errorf("ReadFile(%q) error = %v, want ErrInvalidUserPath", p, err)
			}
		})
	}

	if err := files.WriteUserFile("notes/welcome", nil); !errors.Is(err, ErrInvalidUserPath) {
		t.Errorf("WriteUserFile without scheme error = %v, want ErrInvalidUserPath", err)
	}
}

func TestFiles_UserRoundTrip(t *testing.T) {
	files := NewFiles(createTestGdataManager(t))

	if _, err := files.ReadFile("user://notes/welcome"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile before write error = %v, want fs.ErrNotExist", err)
	}

	if err := files.WriteUserFile("user://notes/welcome", []byte("hi there")); err != nil {
		t.Fatalf("WriteUserFile error: %v", err)
	}

	ta := NewTextAsset(files)
	if err := ta.Load("user://notes/welcome"); err != nil {
		t.Fatalf("Load(user://) error: %v", err)
	}
	if ta.Value() != "hi there" {
		t.Errorf("Value() = %q, want %q", ta.Value(), "hi there")
	}
}
