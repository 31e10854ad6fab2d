package tree_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/structree/structree/internal/tree"
)

func TestOSDirectoryReaderListsEntriesWithKinds(testingInstance *testing.T) {
	rootPath := testingInstance.TempDir()
	if err := os.Mkdir(filepath.Join(rootPath, "subdir"), 0o755); err != nil {
		testingInstance.Fatalf("creating subdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(rootPath, "file.txt"), []byte("content"), 0o644); err != nil {
		testingInstance.Fatalf("creating file: %v", err)
	}

	reader := tree.NewOSDirectoryReader()
	entries, listError := reader.List(rootPath)
	if listError != nil {
		testingInstance.Fatalf("unexpected listing error: %v", listError)
	}

	kindsByName := make(map[string]tree.Kind, len(entries))
	for _, entry := range entries {
		kindsByName[entry.Name] = entry.Kind
	}
	if kindsByName["subdir"] != tree.KindDirectory {
		testingInstance.Errorf("expected subdir to be a directory entry")
	}
	if kindsByName["file.txt"] != tree.KindFile {
		testingInstance.Errorf("expected file.txt to be a file entry")
	}
}

func TestOSDirectoryReaderReportsMissingDirectory(testingInstance *testing.T) {
	reader := tree.NewOSDirectoryReader()
	missingPath := filepath.Join(testingInstance.TempDir(), "does-not-exist")
	if _, listError := reader.List(missingPath); listError == nil {
		testingInstance.Error("expected an error for a missing directory")
	}
}

func TestRenderAgainstFilesystem(testingInstance *testing.T) {
	rootPath := testingInstance.TempDir()
	nestedPath := filepath.Join(rootPath, "b")
	if err := os.Mkdir(nestedPath, 0o755); err != nil {
		testingInstance.Fatalf("creating nested directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nestedPath, "x"), nil, 0o644); err != nil {
		testingInstance.Fatalf("creating nested file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(rootPath, "a"), nil, 0o644); err != nil {
		testingInstance.Fatalf("creating top-level file: %v", err)
	}

	renderer := tree.NewRenderer(tree.NewOSDirectoryReader(), nil)
	rendered := renderer.Render(context.Background(), rootPath, "")

	expected := "├── b\n│   └── x\n└── a\n"
	if rendered != expected {
		testingInstance.Errorf("unexpected render\nwant:\n%q\ngot:\n%q", expected, rendered)
	}
}

func TestOSDirectoryReaderTreatsSymlinkedDirectoryAsFile(testingInstance *testing.T) {
	rootPath := testingInstance.TempDir()
	realDirectory := filepath.Join(rootPath, "real")
	if err := os.Mkdir(realDirectory, 0o755); err != nil {
		testingInstance.Fatalf("creating directory: %v", err)
	}
	linkPath := filepath.Join(rootPath, "link")
	if err := os.Symlink(realDirectory, linkPath); err != nil {
		testingInstance.Skipf("symlinks unavailable: %v", err)
	}

	reader := tree.NewOSDirectoryReader()
	entries, listError := reader.List(rootPath)
	if listError != nil {
		testingInstance.Fatalf("unexpected listing error: %v", listError)
	}
	for _, entry := range entries {
		if entry.Name == "link" && entry.Kind != tree.KindFile {
			testingInstance.Error("expected symlinked directory to report as a file entry")
		}
	}
}
