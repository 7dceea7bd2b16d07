package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inbar-marom/botverify/internal/domain"
)

// Archiver implements domain.Archiver over ZIP archives.
type Archiver struct{}

// New creates an Archiver.
func New() *Archiver { return &Archiver{} }

// ExtractFiles reads a submission ZIP into upload payloads, skipping
// directories and hidden entries the tournament API would reject anyway.
func (a *Archiver) ExtractFiles(zipPath string) ([]domain.ArchiveFile, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer r.Close()

	var files []domain.ArchiveFile
	for _, entry := range r.File {
		name := entry.Name
		if strings.HasSuffix(name, "/") || strings.HasPrefix(filepath.Base(name), ".") {
			continue
		}
		if entry.FileInfo().IsDir() {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s from archive: %w", name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s from archive: %w", name, err)
		}

		files = append(files, domain.ArchiveFile{
			FileName: filepath.Base(name),
			Code:     string(content),
		})
	}
	return files, nil
}

// Unpack extracts a downloaded template archive into destDir and returns
// the extracted paths. Entries that would escape destDir are rejected.
func (a *Archiver) Unpack(data []byte, destDir string) ([]string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	var extracted []string
	for _, entry := range r.File {
		target := filepath.Join(destDir, filepath.FromSlash(entry.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return nil, fmt.Errorf("archive entry %q escapes destination directory", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, err
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s from archive: %w", entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s from archive: %w", entry.Name, err)
		}
		if err := os.WriteFile(target, content, 0644); err != nil {
			return nil, err
		}
		extracted = append(extracted, entry.Name)
	}
	return extracted, nil
}
