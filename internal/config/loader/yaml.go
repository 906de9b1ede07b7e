package loader

import (
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads YAML files.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a YAML loader for path on the OS file system.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fs, path: path}
}

// Load reads the configured path.
func (l *YAMLLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads path into a map. A missing or empty file yields nil, nil.
func (l *YAMLLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := readFile(l.fs, path)
	if err != nil || data == nil {
		return nil, err
	}

	var out map[string]any
	if err := l.unmarshal(path, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode reads path into v.
func (l *YAMLLoader) Decode(path string, v any) error {
	data, err := readFile(l.fs, path)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return l.unmarshal(path, data, v)
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func (l *YAMLLoader) unmarshal(source string, data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			pe.Line, _ = strconv.Atoi(m[1])
		}
		return pe
	}
	return nil
}
