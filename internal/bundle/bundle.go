package bundle

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// entryMode is applied to every archive entry regardless of the source file.
const entryMode os.FileMode = 0o644

// entryTimestamp is the fixed modification time stamped on every entry.
// Archives carry no real timestamps so equal trees produce equal bytes.
//
//nolint:gochecknoglobals // Shared constant timestamp, time.Date is not a const expression.
var entryTimestamp = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// errEntryNotFound is returned when a named entry is absent from an archive.
var errEntryNotFound = errors.New("entry not found in archive")

// Write creates a zip archive at archivePath containing every file under root.
// Entry names are slash-separated paths relative to root and are written in
// sorted order with normalized metadata.
func Write(archivePath, root string) error {
	names, err := collectFiles(root)
	if err != nil {
		return err
	}

	out, err := os.Create(filepath.Clean(archivePath))
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	writer := zip.NewWriter(out)

	for _, name := range names {
		if err = writeEntry(writer, root, name); err != nil {
			_ = writer.Close()
			_ = out.Close()

			return err
		}
	}

	if err = writer.Close(); err != nil {
		_ = out.Close()

		return fmt.Errorf("finalize archive: %w", err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// List returns the entry names stored in the archive, in stored order.
func List(archivePath string) ([]string, error) {
	reader, err := zip.OpenReader(filepath.Clean(archivePath))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)
	}

	return names, nil
}

// ReadEntry returns the contents of a single named archive entry.
func ReadEntry(archivePath, name string) ([]byte, error) {
	reader, err := zip.OpenReader(filepath.Clean(archivePath))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		contents, err := readFile(file)
		if err != nil {
			return nil, fmt.Errorf("read entry %s: %w", name, err)
		}

		return contents, nil
	}

	return nil, fmt.Errorf("%s: %w", name, errEntryNotFound)
}

// collectFiles walks root and returns sorted archive-relative file paths.
func collectFiles(root string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		names = append(names, filepath.ToSlash(relative))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(names)

	return names, nil
}

// writeEntry appends one file to the archive with normalized metadata.
func writeEntry(writer *zip.Writer, root, name string) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entryTimestamp,
	}
	header.SetMode(entryMode)

	entry, err := writer.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}

	contents, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if _, err = entry.Write(contents); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}

	return nil
}

// readFile extracts the contents of an already located archive member.
func readFile(file *zip.File) ([]byte, error) {
	source, err := file.Open()
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = source.Close()
	}()

	return io.ReadAll(source)
}
