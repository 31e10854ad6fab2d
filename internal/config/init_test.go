package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/structree/structree/internal/utils"
)

func TestInitializeConfigurationLocal(t *testing.T) {
	workingDirectory := t.TempDir()

	writtenPath, initError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
	})
	if initError != nil {
		t.Fatalf("unexpected init error: %v", initError)
	}
	if writtenPath != filepath.Join(workingDirectory, utils.ConfigFileName) {
		t.Errorf("unexpected configuration path %q", writtenPath)
	}

	content, readError := os.ReadFile(writtenPath)
	if readError != nil {
		t.Fatalf("reading configuration: %v", readError)
	}
	if !strings.Contains(string(content), "output_file: structure.txt") {
		t.Errorf("expected default output file in template, got:\n%s", content)
	}
}

func TestInitializeConfigurationRefusesOverwriteWithoutForce(t *testing.T) {
	workingDirectory := t.TempDir()

	if _, initError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
	}); initError != nil {
		t.Fatalf("unexpected first init error: %v", initError)
	}

	if _, initError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
	}); initError == nil {
		t.Error("expected an error when the configuration file already exists")
	}

	if _, initError := InitializeConfiguration(InitOptions{
		Target:           InitTargetLocal,
		WorkingDirectory: workingDirectory,
		Force:            true,
	}); initError != nil {
		t.Errorf("expected forced overwrite to succeed, got %v", initError)
	}
}

func TestInitializeConfigurationGlobal(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)

	writtenPath, initError := InitializeConfiguration(InitOptions{Target: InitTargetGlobal})
	if initError != nil {
		t.Fatalf("unexpected init error: %v", initError)
	}
	expectedPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
	if writtenPath != expectedPath {
		t.Errorf("expected %q, got %q", expectedPath, writtenPath)
	}
}

func TestInitializeConfigurationRejectsUnknownTarget(t *testing.T) {
	if _, initError := InitializeConfiguration(InitOptions{Target: InitTarget("remote")}); initError == nil {
		t.Error("expected an error for an unsupported target")
	}
}
