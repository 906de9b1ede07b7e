package loader

import (
	"errors"
	"io/fs"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"layout.toml", FormatTOML, false},
		{"/etc/layout.TOML", FormatTOML, false},
		{"layout.yaml", FormatYAML, false},
		{"layout.yml", FormatYAML, false},
		{"layout.json", "", true},
		{"layout", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("error = %v, want ErrUnsupportedFormat", err)
			}
			if got != tt.want {
				t.Errorf("FormatFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", "[logging]\nlevel = \"debug\"\n")
	memfs.AddFile("/a.yaml", "logging:\n  level: warn\n")

	for path, want := range map[string]string{"/a.toml": "debug", "/a.yaml": "warn"} {
		l, err := ForPath(memfs, path)
		if err != nil {
			t.Fatalf("ForPath(%q) error = %v", path, err)
		}
		m, err := l.Load()
		if err != nil {
			t.Fatalf("Load(%q) error = %v", path, err)
		}
		if got, _ := getByPath(m, "logging.level"); got != want {
			t.Errorf("%s: logging.level = %v, want %q", path, got, want)
		}
	}

	if _, err := ForPath(memfs, "/a.ini"); err == nil {
		t.Error("expected error for .ini")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"logging": map[string]any{"level": "info"},
		"layout":  map[string]any{"path": "a.toml", "watch": false},
	}
	src := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"layout":  map[string]any{"watch": true},
		"extra":   1,
	}

	got := DeepMerge(dst, src)

	checks := map[string]any{
		"logging.level": "debug",
		"layout.path":   "a.toml",
		"layout.watch":  true,
		"extra":         1,
	}
	for path, want := range checks {
		if v, _ := getByPath(got, path); v != want {
			t.Errorf("%s = %v, want %v", path, v, want)
		}
	}

	if DeepMerge(nil, nil) == nil {
		t.Error("DeepMerge(nil, nil) returned nil")
	}
}
