// Settings controls the look of the REPL and which bits of the inner workings of the lexer and parser
// get shown for debugging purposes. Defaults are overridden by a YAML file and then by the environment.

package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"monkey/text"

	"fortio.org/log"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_ENV    = "MONKEY_CONFIG"
	LOG_LEVEL_ENV = "MONKEY_LOG_LEVEL"
	NO_COLOR_ENV  = "MONKEY_NO_COLOR"
	CONFIG_FILE   = ".monkey.yaml"
)

type Settings struct {
	Prompt   string `yaml:"prompt"`
	Color    bool   `yaml:"color"`
	LogLevel string `yaml:"log_level"`

	// These do what it sounds like.
	ShowLexer  bool `yaml:"show_lexer"`
	ShowParser bool `yaml:"show_parser"`
}

func Default() *Settings {
	return &Settings{
		Prompt:   text.PROMPT,
		Color:    true,
		LogLevel: "info",
	}
}

// Load starts from the defaults and applies the config file, if there is one, and then the
// environment. An explicitly named config file that doesn't exist is an error; a missing
// file in the home directory is not.
func Load() (*Settings, error) {
	s := Default()
	path, explicit := os.LookupEnv(CONFIG_ENV)
	if !explicit {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, CONFIG_FILE)
		}
	}
	if path != "" {
		err := s.ReadFile(path)
		if err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
			return nil, err
		}
	}
	s.ApplyEnv(os.LookupEnv)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("can't open config file: %w", err)
	}
	defer f.Close()
	if err := s.Decode(f); err != nil {
		return fmt.Errorf("can't read config file %s: %w", path, err)
	}
	log.LogVf("settings: read %s", path)
	return nil
}

// Decode overlays whatever keys are in the YAML on top of s. Keys we don't know about are an
// error, and an empty document changes nothing.
func (s *Settings) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(s)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// ApplyEnv takes a lookup function rather than reading the environment itself, so that the
// tests can fake one.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) {
	if level, ok := lookup(LOG_LEVEL_ENV); ok && level != "" {
		s.LogLevel = level
	}
	if _, ok := lookup(NO_COLOR_ENV); ok {
		s.Color = false
	}
}

func (s *Settings) Validate() error {
	if _, err := log.ValidateLevel(s.LogLevel); err != nil {
		return fmt.Errorf("bad log_level %q: %w", s.LogLevel, err)
	}
	return nil
}

// Apply pushes the settings out to the places that use them, which at present is just the logger.
func (s *Settings) Apply() {
	level, err := log.ValidateLevel(s.LogLevel)
	if err != nil {
		log.Warnf("Ignoring bad log level %q", s.LogLevel)
		return
	}
	log.SetLogLevel(level)
}
