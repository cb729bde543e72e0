// Package config holds the configuration of the pagemodel command.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/koolkav1/aem-spa-page-model-manager/pathutil"
)

// Config represents the configuration file structure.  Every field can be
// overridden by a CLI flag.
type Config struct {
	// RootPath is the path of the root page of the model.
	RootPath string `yaml:"rootPath"`
	// APIHost is prefixed to model urls, e.g. "https://author.example.com".
	APIHost string `yaml:"apiHost"`
	// ContextPath is the servlet context path models are served under.
	ContextPath string `yaml:"contextPath"`
	// ErrorPageRoot is the path prefix of error page models, e.g.
	// "/content/site/errors/" for "/content/site/errors/404.model.json".
	ErrorPageRoot string `yaml:"errorPageRoot"`
	Selector      string `yaml:"selector"`
	Extension     string `yaml:"extension"`
}

// LoadConfig loads a YAML configuration file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Selector:  pathutil.DefaultSelector,
		Extension: pathutil.DefaultExtension,
	}
}

// ModelURL returns the url of the model of the page or item at path.
func (c *Config) ModelURL(path string) string {
	u := pathutil.AddSelector(path, c.Selector)
	u = pathutil.AddExtension(u, c.Extension)
	u = pathutil.MakeAbsolute(pathutil.Externalize(u, c.ContextPath))
	return strings.TrimSuffix(c.APIHost, "/") + u
}

// ErrorPageURL returns the url of the error page model for an HTTP status
// code, or "" if there is no error page root.
func (c *Config) ErrorPageURL(code int) string {
	if c.ErrorPageRoot == "" {
		return ""
	}
	return c.ModelURL(c.ErrorPageRoot + strconv.Itoa(code))
}
