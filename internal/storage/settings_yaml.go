package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pacetimer/internal/core/duration"
	"pacetimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	DefaultDuration string `yaml:"default_duration,omitempty"`
	KeepAwake       *bool  `yaml:"keep_awake,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return loadSettingsFile(configPath)
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return saveSettingsFile(configPath, settings)
}

func loadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	if err := applyYamlSettings(&settings, fileData); err != nil {
		return settings, err
	}
	return settings, nil
}

func saveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	keepAwake := settings.KeepAwake
	serialized, err := yaml.Marshal(yamlSettings{
		DefaultDuration: settings.DefaultDuration,
		KeepAwake:       &keepAwake,
	})
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// applyYamlSettings keeps defaults for absent keys. A bad duration is
// reported but does not discard the rest of the file.
func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) error {
	if fileData.KeepAwake != nil {
		settings.KeepAwake = *fileData.KeepAwake
	}
	if fileData.DefaultDuration == "" {
		return nil
	}
	spec, err := duration.Parse(fileData.DefaultDuration)
	if err != nil {
		return fmt.Errorf("settings default_duration: %w", err)
	}
	settings.DefaultDuration = spec.String()
	return nil
}
