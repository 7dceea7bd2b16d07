package application

import (
	"context"
	"fmt"

	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/inbar-marom/botverify/internal/domain/rules"
)

// PortalService wraps the tournament portal workflow: template download,
// remote verification of a packaged submission, and final upload. The local
// style rules are a superset of what the remote validation performs, so
// uploads are preflighted locally first and violations surface as warnings
// before the archive leaves the machine.
type PortalService struct {
	archiver domain.Archiver
	client   domain.RegistryClient
	engine   *rules.Engine
}

// NewPortalService creates a PortalService.
func NewPortalService(archiver domain.Archiver, client domain.RegistryClient) *PortalService {
	return &PortalService{
		archiver: archiver,
		client:   client,
		engine:   rules.NewEngine(0),
	}
}

// DownloadTemplate fetches the named bot template and unpacks it into
// outputDir, returning the extracted file names.
func (s *PortalService) DownloadTemplate(ctx context.Context, name, outputDir string) ([]string, error) {
	data, err := s.client.DownloadTemplate(ctx, name)
	if err != nil {
		return nil, err
	}
	extracted, err := s.archiver.Unpack(data, outputDir)
	if err != nil {
		return nil, fmt.Errorf("unpacking template %s: %w", name, err)
	}
	return extracted, nil
}

// VerifyArchive extracts zipPath, runs the local rule preflight, and sends
// the files for remote validation. Preflight findings are prepended to the
// result's warnings; the remote verdict stays authoritative.
func (s *PortalService) VerifyArchive(ctx context.Context, zipPath, teamName string) (*domain.UploadResult, error) {
	files, err := s.extract(zipPath)
	if err != nil {
		return nil, err
	}

	preflight := s.Preflight(files)

	result, err := s.client.VerifySubmission(ctx, teamName, files)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(preflight, result.Warnings...)
	return result, nil
}

// SubmitArchive extracts zipPath and uploads it as a tournament entry.
func (s *PortalService) SubmitArchive(ctx context.Context, zipPath, teamName string, overwrite bool) (*domain.SubmitResult, error) {
	files, err := s.extract(zipPath)
	if err != nil {
		return nil, err
	}
	return s.client.SubmitArchive(ctx, teamName, files, overwrite)
}

// Preflight scans archive files with the adjacent-terminator rule and
// formats any hits as human-readable warnings.
func (s *PortalService) Preflight(files []domain.ArchiveFile) []string {
	sources := make([]domain.SourceFile, len(files))
	for i, f := range files {
		sources[i] = domain.SourceFile{Path: f.FileName, Content: f.Code}
	}

	violations, _ := s.engine.Scan(sources, rules.NewAdjacentTerminator())
	warnings := make([]string, 0, len(violations))
	for _, v := range violations {
		warnings = append(warnings, fmt.Sprintf("local preflight: %s:%d: %s", v.FilePath, v.Line, v.Snippet))
	}
	return warnings
}

func (s *PortalService) extract(zipPath string) ([]domain.ArchiveFile, error) {
	files, err := s.archiver.ExtractFiles(zipPath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no valid files found in %s", zipPath)
	}
	return files, nil
}
