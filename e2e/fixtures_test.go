//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates a temporary directory used as $HOME and working directory
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateSourceFile writes a text file of numbered lines into the workspace
func (tf *TUITestFramework) CreateSourceFile(name string, lines int) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	var b strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&b, "line %03d\n", i)
	}

	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write source file: %w", err)
	}
	return path, nil
}

// WriteConfig writes a config file where the app looks for it under $XDG_CONFIG_HOME
func (tf *TUITestFramework) WriteConfig(content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	path := tf.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

// ConfigPath is the config file the app under test reads and saves
func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, "scrollpager", "config.toml")
}
