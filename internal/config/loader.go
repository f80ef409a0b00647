package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"ratectl/pkg/logging"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/ratectl"
	configFileName = "config.yaml"
)

// osUserHomeDir is swapped in tests.
var osUserHomeDir = os.UserHomeDir

// DefaultConfigDir returns ~/.config/ratectl.
func DefaultConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads config.yaml from configPath on top of the defaults,
// validates the result and renders its path templates. A missing file is
// not an error.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
	case err != nil:
		return Config{}, ConfigurationError{
			FilePath:  configFilePath,
			FileName:  configFileName,
			ErrorType: ErrorTypeIO,
			Message:   err.Error(),
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, ConfigurationError{
				FilePath:    configFilePath,
				FileName:    configFileName,
				ErrorType:   ErrorTypeParse,
				Message:     "malformed YAML",
				Details:     err.Error(),
				Suggestions: []string{"durations are written like 3s or 50ms"},
			}
		}
		logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	}

	if err := Validate(config, configFilePath); err != nil {
		return Config{}, err
	}
	if err := config.render(configFilePath); err != nil {
		return Config{}, err
	}
	return config, nil
}

// templateData is what path templates can refer to.
type templateData struct {
	ModuleID  string
	ModuleDir string
}

// render expands the path templates in place.
func (c *Config) render(configFilePath string) error {
	data := templateData{ModuleID: c.ModuleID}

	var err error
	if c.ModuleDir, err = renderField("moduleDir", c.ModuleDir, data, configFilePath); err != nil {
		return err
	}
	data.ModuleDir = c.ModuleDir

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"scriptPath", &c.ScriptPath},
		{"configFile", &c.ConfigFile},
		{"logFile", &c.LogFile},
	} {
		if *f.value, err = renderField(f.name, *f.value, data, configFilePath); err != nil {
			return err
		}
	}
	return nil
}

func renderField(name, text string, data templateData, configFilePath string) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err == nil {
		var buf bytes.Buffer
		if err = tmpl.Execute(&buf, data); err == nil {
			return buf.String(), nil
		}
	}
	return "", ConfigurationError{
		FilePath:  configFilePath,
		FileName:  filepath.Base(configFilePath),
		Field:     name,
		ErrorType: ErrorTypeTemplate,
		Message:   "cannot render path template",
		Details:   err.Error(),
	}
}

// Default returns the default configuration with its paths rendered.
func Default() (Config, error) {
	config := GetDefaultConfig()
	if err := config.render(configFileName); err != nil {
		return Config{}, err
	}
	return config, nil
}
