package loader

import (
	"errors"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
logging:
  level: debug
layout:
  watch: true
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := getByPath(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v", v)
	}
	if v, _ := getByPath(config, "layout.watch"); v != true {
		t.Errorf("layout.watch = %v", v)
	}
}

func TestYAMLLoader_Decode(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/l.yml", `
groups:
  - name: size
    buttons:
      - value: s
      - value: m
`)

	var doc struct {
		Groups []struct {
			Name    string `yaml:"name"`
			Buttons []struct {
				Value string `yaml:"value"`
			} `yaml:"buttons"`
		} `yaml:"groups"`
	}
	if err := NewYAMLLoaderWithFS(memfs, "/l.yml").Decode("/l.yml", &doc); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(doc.Groups) != 1 || len(doc.Groups[0].Buttons) != 2 {
		t.Errorf("decoded %+v", doc)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "groups:\n  - name: a\n   value: b\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Line == 0 {
		t.Errorf("Line not extracted from %q", pe.Message)
	}
}

func TestYAMLLoader_Missing(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/none.yaml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v, want nil, nil", config, err)
	}
}
