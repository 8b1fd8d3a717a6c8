// Package config loads and validates the apidoc.yml site configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "apidoc.yml"

// Error policies for files that fail to parse.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// Config is the root of apidoc.yml.
type Config struct {
	Site Site `yaml:"site"`
}

// Site describes one documentation site build.
type Site struct {
	// Title is appended to every page title.
	Title string `yaml:"title" validate:"required"`
	// Version is shown in the page template.
	Version string `yaml:"version"`
	// Source holds modules/, guides/ and static/.
	Source string `yaml:"source" validate:"required"`
	// Output receives the generated site. It is cleaned on every build.
	Output string `yaml:"output" validate:"required,nefield=Source"`
	// Markdown names the markdown engine.
	Markdown string `yaml:"markdown" validate:"oneof=goldmark blackfriday"`
	// OnError is either "abort" or "skip".
	OnError string `yaml:"on_error" validate:"oneof=abort skip"`
	// Archive, when set, is the path of a .tgz of the output tree.
	Archive string `yaml:"archive"`
	// EmitJSON writes the parsed module next to each module page.
	EmitJSON bool `yaml:"emit_json"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Site: Site{
			Title:    "API Documentation",
			Source:   "docs",
			Output:   filepath.Join("build", "docs"),
			Markdown: "goldmark",
			OnError:  OnErrorAbort,
		},
	}
}

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())
		validatorInstance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			return name
		})
	})
	return validatorInstance
}

// Load reads path on top of Default. A missing file is an error unless
// optional is set, in which case the defaults are returned.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the configuration and reports every offending field.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		field := strings.ToLower(ve.Namespace())
		if ve.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, ve.Tag(), ve.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, ve.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
