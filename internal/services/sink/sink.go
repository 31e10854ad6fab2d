// Package sink delivers rendered structure documents to their destination.
package sink

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/structree/structree/internal/services/clipboard"
	"github.com/structree/structree/internal/tree"
)

const (
	// outputFileMode is the permission set for written structure files.
	outputFileMode = 0o644
	// documentSeparator joins documents handed to the clipboard in one run.
	documentSeparator = "\n"

	// errorWriteFileFormat reports a failed structure file write.
	errorWriteFileFormat = "writing structure file %s: %w"
	// errorOpenFileFormat reports a failed attempt to open the written file.
	errorOpenFileFormat = "opening structure file %s: %w"
	// errorClipboardFormat reports a failed clipboard write.
	errorClipboardFormat = "copying structure to clipboard: %w"
)

// Document is one rendered directory structure ready for delivery.
type Document struct {
	// TargetDirectory is the directory the structure was rendered for.
	TargetDirectory string
	// Body is the recursive listing without the root line.
	Body string
}

// Text returns the full document text: the synthetic root line followed by
// the rendered body.
func (document Document) Text() string {
	return tree.RootLine(document.TargetDirectory) + document.Body
}

// Sink consumes rendered documents. Handle is called once per document in
// render order; Flush completes delivery and must be called exactly once.
type Sink interface {
	Handle(document Document) error
	Flush() error
}

// FileSink writes each document into its target directory and optionally
// opens the written file for display.
type FileSink struct {
	outputFileName string
	openAfterWrite bool
	openCommand    func(filePath string) error
	notify         func(message string)
}

// NewFileSink constructs a FileSink writing outputFileName under each
// document's target directory. When openAfterWrite is set the written file is
// opened with the host's default handler. notify receives one user-facing
// message per delivered document and may be nil.
func NewFileSink(outputFileName string, openAfterWrite bool, notify func(message string)) *FileSink {
	return &FileSink{
		outputFileName: outputFileName,
		openAfterWrite: openAfterWrite,
		openCommand:    openWithHostHandler,
		notify:         notify,
	}
}

// Handle writes the document, overwriting any previous structure file.
func (fileSink *FileSink) Handle(document Document) error {
	outputFilePath := filepath.Join(document.TargetDirectory, fileSink.outputFileName)
	if writeError := os.WriteFile(outputFilePath, []byte(document.Text()), outputFileMode); writeError != nil {
		return fmt.Errorf(errorWriteFileFormat, outputFilePath, writeError)
	}
	if fileSink.notify != nil {
		fileSink.notify(fmt.Sprintf("Structure written to %s", outputFilePath))
	}
	if fileSink.openAfterWrite {
		if openError := fileSink.openCommand(outputFilePath); openError != nil {
			return fmt.Errorf(errorOpenFileFormat, outputFilePath, openError)
		}
	}
	return nil
}

// Flush completes delivery. File documents are written eagerly, so there is
// nothing left to do.
func (fileSink *FileSink) Flush() error {
	return nil
}

// openWithHostHandler opens filePath with the platform's default application.
func openWithHostHandler(filePath string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", filePath).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", filePath).Start()
	default:
		return exec.Command("xdg-open", filePath).Start()
	}
}

// ClipboardSink accumulates documents and places the combined text on the
// system clipboard when flushed.
type ClipboardSink struct {
	copier    clipboard.Copier
	documents []string
	notify    func(message string)
}

// NewClipboardSink constructs a ClipboardSink delivering through copier.
// notify receives one user-facing message on successful delivery and may be nil.
func NewClipboardSink(copier clipboard.Copier, notify func(message string)) *ClipboardSink {
	return &ClipboardSink{copier: copier, notify: notify}
}

// Handle buffers the document until Flush.
func (clipboardSink *ClipboardSink) Handle(document Document) error {
	clipboardSink.documents = append(clipboardSink.documents, document.Text())
	return nil
}

// Flush writes the accumulated documents to the clipboard. A run that
// delivered no documents leaves the clipboard untouched.
func (clipboardSink *ClipboardSink) Flush() error {
	if len(clipboardSink.documents) == 0 {
		return nil
	}
	combinedText := strings.Join(clipboardSink.documents, documentSeparator)
	if copyError := clipboardSink.copier.Copy(combinedText); copyError != nil {
		return fmt.Errorf(errorClipboardFormat, copyError)
	}
	if clipboardSink.notify != nil {
		clipboardSink.notify("Structure copied to clipboard")
	}
	return nil
}

var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*ClipboardSink)(nil)
)
