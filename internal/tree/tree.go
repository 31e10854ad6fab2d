// Package tree renders a directory subtree as an ASCII tree listing with
// box-drawing connectors.
package tree

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
)

const (
	// middleConnector marks an entry that has later siblings.
	middleConnector = "├── "
	// lastConnector marks the final entry of a directory listing.
	lastConnector = "└── "
	// continuationIndent extends the prefix below an entry that has later siblings.
	continuationIndent = "│   "
	// terminalIndent extends the prefix below the final entry of a listing.
	terminalIndent = "    "
	// directorySuffix terminates the synthetic root line.
	directorySuffix = "/"
	// lineSeparator terminates every rendered entry line.
	lineSeparator = "\n"
)

// Kind distinguishes files from directories in a listing.
type Kind int

const (
	// KindFile marks a non-directory entry.
	KindFile Kind = iota
	// KindDirectory marks a directory entry.
	KindDirectory
)

// Entry is a single named item of a directory listing.
type Entry struct {
	Name string
	Kind Kind
}

// DirectoryReader lists the immediate entries of a directory. Implementations
// signal unreadable or non-existent directories through the error return; the
// renderer degrades such subtrees to empty output.
type DirectoryReader interface {
	List(directoryPath string) ([]Entry, error)
}

// Renderer produces the recursive tree listing for a directory. Ignored names
// and the collation order are fixed for the lifetime of the renderer, so a
// single instance is safe for concurrent renders.
type Renderer struct {
	reader       DirectoryReader
	ignoredNames map[string]struct{}
	collator     *collate.Collator
}

// NewRenderer constructs a Renderer that lists directories through reader and
// drops entries whose name exactly matches one of ignoredNames. Matching is a
// literal name comparison, not a pattern language.
func NewRenderer(reader DirectoryReader, ignoredNames []string) *Renderer {
	ignoredNameSet := make(map[string]struct{}, len(ignoredNames))
	for _, ignoredName := range ignoredNames {
		ignoredNameSet[ignoredName] = struct{}{}
	}
	return &Renderer{
		reader:       reader,
		ignoredNames: ignoredNameSet,
		collator:     localeCollator(),
	}
}

// Render returns the listing of directoryPath and, recursively, of every
// directory below it. Each line is prefix + connector + name; directories are
// expanded immediately after their own line. Listing failures yield an empty
// string for the affected subtree. Cancellation is polled at call entry and at
// the top of every iteration; a cancelled frame discards what it accumulated
// and returns an empty string, so callers must treat a cancelled render as
// unspecified partial or empty output.
func (renderer *Renderer) Render(renderContext context.Context, directoryPath string, prefix string) string {
	if renderContext.Err() != nil {
		return ""
	}

	directoryEntries, listError := renderer.reader.List(directoryPath)
	if listError != nil {
		return ""
	}

	visibleEntries := renderer.filterIgnored(directoryEntries)
	renderer.sortEntries(visibleEntries)

	var listing strings.Builder
	for entryIndex, currentEntry := range visibleEntries {
		if renderContext.Err() != nil {
			return ""
		}

		isLastEntry := entryIndex == len(visibleEntries)-1
		connector := middleConnector
		childIndent := continuationIndent
		if isLastEntry {
			connector = lastConnector
			childIndent = terminalIndent
		}

		listing.WriteString(prefix)
		listing.WriteString(connector)
		listing.WriteString(currentEntry.Name)
		listing.WriteString(lineSeparator)

		if currentEntry.Kind == KindDirectory {
			childDirectoryPath := filepath.Join(directoryPath, currentEntry.Name)
			listing.WriteString(renderer.Render(renderContext, childDirectoryPath, prefix+childIndent))
		}
	}
	return listing.String()
}

// filterIgnored returns the entries whose names are not blacklisted.
func (renderer *Renderer) filterIgnored(directoryEntries []Entry) []Entry {
	visibleEntries := make([]Entry, 0, len(directoryEntries))
	for _, currentEntry := range directoryEntries {
		if _, isIgnored := renderer.ignoredNames[currentEntry.Name]; isIgnored {
			continue
		}
		visibleEntries = append(visibleEntries, currentEntry)
	}
	return visibleEntries
}

// sortEntries orders directories before files and entries of the same kind by
// the locale collator. The sort is stable; the collator is the only tie-break.
func (renderer *Renderer) sortEntries(directoryEntries []Entry) {
	sort.SliceStable(directoryEntries, func(firstIndex, secondIndex int) bool {
		firstEntry := directoryEntries[firstIndex]
		secondEntry := directoryEntries[secondIndex]
		if firstEntry.Kind != secondEntry.Kind {
			return firstEntry.Kind == KindDirectory
		}
		return renderer.collator.CompareString(firstEntry.Name, secondEntry.Name) < 0
	})
}

// RootLine returns the synthetic first line for a render of rootDirectoryPath.
// The renderer itself never emits this line; composing it is the caller's job.
func RootLine(rootDirectoryPath string) string {
	return filepath.Base(rootDirectoryPath) + directorySuffix + lineSeparator
}
