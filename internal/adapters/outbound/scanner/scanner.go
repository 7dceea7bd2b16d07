package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/inbar-marom/botverify/internal/domain"
)

var skipDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	".git":         true,
	".vs":          true,
	"node_modules": true,
}

const testResultsDirName = "TestResults"

// FileScanner implements domain.SubmissionScanner by walking the submission
// directory and snapshotting matching source files.
type FileScanner struct {
	extensions map[string]bool
	extraSkip  map[string]bool
}

// New creates a scanner for the given source extensions (defaults to .cs)
// plus any extra directory names to exclude.
func New(extensions []string, excludePaths ...string) *FileScanner {
	if len(extensions) == 0 {
		extensions = []string{".cs"}
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	extra := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extra[strings.TrimSuffix(p, "/")] = true
	}
	return &FileScanner{extensions: exts, extraSkip: extra}
}

// Scan walks submissionPath once, reading each matching file into an
// immutable snapshot. An unreadable file is an infrastructure failure: the
// environment, not the submission, is broken.
func (s *FileScanner) Scan(submissionPath string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(submissionPath)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return domain.Infra("scanning "+path, err)
		}

		if d.IsDir() {
			if d.Name() == testResultsDirName {
				result.TestResultsDir = path
				return filepath.SkipDir
			}
			if skipDirs[d.Name()] || s.extraSkip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.extensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Infra("reading "+path, err)
		}

		relPath, _ := filepath.Rel(absPath, path)
		file := domain.SourceFile{
			Path:      relPath,
			Content:   string(data),
			LineCount: strings.Count(string(data), "\n") + 1,
		}

		if isTestFile(relPath) {
			result.TestFiles = append(result.TestFiles, file)
		} else {
			result.SourceFiles = append(result.SourceFiles, file)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// isTestFile classifies by the dotnet conventions the tournament templates
// use: *Tests.cs / *Test.cs files, or anything under a *.Tests project dir.
func isTestFile(relPath string) bool {
	base := filepath.Base(relPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if strings.HasSuffix(stem, "Tests") || strings.HasSuffix(stem, "Test") {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if strings.HasSuffix(part, ".Tests") || part == "Tests" {
			return true
		}
	}
	return false
}
