package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
)

// ErrConfigExists is returned by WriteDefaultConfig when the file is already present
var ErrConfigExists = errors.New("config file already exists")

// DefaultConfigJSON renders the defaults as an indented nested JSON object
func DefaultConfigJSON() ([]byte, error) {
	k := koanf.New(".")
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	out, err := json.Parser().Marshal(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("marshaling defaults: %w", err)
	}
	return append(out, '\n'), nil
}

// WriteDefaultConfig writes the default configuration to path.
// An existing file is only replaced when force is set.
func WriteDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	content, err := DefaultConfigJSON()
	if err != nil {
		return err
	}
	return writeAtomically(path, content)
}

// writeAtomically writes content to a file using a temporary file and rename.
// Parent directories are created when missing.
func writeAtomically(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	tmpPath = ""
	return nil
}
