package tree

import "os"

// OSDirectoryReader lists directories through the operating system.
type OSDirectoryReader struct{}

// NewOSDirectoryReader constructs the filesystem-backed DirectoryReader.
func NewOSDirectoryReader() *OSDirectoryReader {
	return &OSDirectoryReader{}
}

// List returns the immediate entries of directoryPath. Symbolic links report
// as file entries because fs.DirEntry.IsDir is false for them, so renders
// never follow links and cannot loop through link cycles.
func (reader *OSDirectoryReader) List(directoryPath string) ([]Entry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, readDirectoryError
	}
	entries := make([]Entry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryKind := KindFile
		if directoryEntry.IsDir() {
			entryKind = KindDirectory
		}
		entries = append(entries, Entry{Name: directoryEntry.Name(), Kind: entryKind})
	}
	return entries, nil
}

var _ DirectoryReader = (*OSDirectoryReader)(nil)
