package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagemodel.yaml")
	data := "rootPath: /content/site\napiHost: https://author.example.com/\nerrorPageRoot: /content/site/errors/\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		RootPath:      "/content/site",
		APIHost:       "https://author.example.com/",
		ErrorPageRoot: "/content/site/errors/",
		Selector:      "model",
		Extension:     "json",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("rootPaht: /content/site\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestURLs(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ModelURL("/content/site/page"); got != "/content/site/page.model.json" {
		t.Errorf("ModelURL = %q", got)
	}
	if got := cfg.ErrorPageURL(404); got != "" {
		t.Errorf("ErrorPageURL without root = %q", got)
	}
	cfg.APIHost = "https://author.example.com/"
	cfg.ContextPath = "/ctx"
	cfg.ErrorPageRoot = "/content/site/errors/"
	if got := cfg.ModelURL("/content/site/page.html"); got != "https://author.example.com/ctx/content/site/page.model.json" {
		t.Errorf("ModelURL = %q", got)
	}
	if got := cfg.ErrorPageURL(500); got != "https://author.example.com/ctx/content/site/errors/500.model.json" {
		t.Errorf("ErrorPageURL = %q", got)
	}
}
