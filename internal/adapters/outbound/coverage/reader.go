package coverage

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
)

// Reader implements domain.CoverageReader by locating and parsing cobertura
// XML reports under a test results directory.
type Reader struct{}

// New creates a coverage report reader.
func New() *Reader { return &Reader{} }

// coberturaReport is the slice of the cobertura schema we need: the overall
// line rate on the root element.
type coberturaReport struct {
	XMLName  xml.Name `xml:"coverage"`
	LineRate float64  `xml:"line-rate,attr"`
}

// Read walks resultsDir for coverage artifacts. parsed reports whether a
// report was successfully read; found reports whether any artifact exists
// at all, so callers can pick the right fallback tier. An empty resultsDir
// means the test run produced nothing.
func (r *Reader) Read(resultsDir string) (percent float64, parsed bool, found bool, err error) {
	if resultsDir == "" {
		return 0, false, false, nil
	}

	var candidates []string
	walkErr := filepath.WalkDir(resultsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ".cobertura.xml") || strings.HasSuffix(name, ".xml") {
			candidates = append(candidates, path)
		}
		return nil
	})
	if walkErr != nil {
		if os.IsNotExist(walkErr) {
			return 0, false, false, nil
		}
		return 0, false, false, walkErr
	}
	if len(candidates) == 0 {
		return 0, false, false, nil
	}

	// Prefer cobertura-named files, but try every candidate: artifacts that
	// exist but fail to parse still count as found.
	sortCoberturaFirst(candidates)
	for _, path := range candidates {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		var report coberturaReport
		if xml.Unmarshal(data, &report) == nil {
			return report.LineRate * 100, true, true, nil
		}
	}
	return 0, false, true, nil
}

func sortCoberturaFirst(paths []string) {
	i := 0
	for j, p := range paths {
		if strings.HasSuffix(strings.ToLower(p), ".cobertura.xml") {
			paths[i], paths[j] = paths[j], paths[i]
			i++
		}
	}
}
