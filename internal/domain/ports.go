package domain

import "context"

// SubmissionScanner walks a submission directory and snapshots its source
// and test files.
type SubmissionScanner interface {
	Scan(submissionPath string) (*ScanResult, error)
}

// ScanResult holds the file snapshots collected from one submission directory.
type ScanResult struct {
	RootPath       string       `json:"root_path"`
	SourceFiles    []SourceFile `json:"source_files"`
	TestFiles      []SourceFile `json:"test_files"`
	TestResultsDir string       `json:"test_results_dir,omitempty"`
}

// AllFiles returns source files followed by test files.
func (s *ScanResult) AllFiles() []SourceFile {
	all := make([]SourceFile, 0, len(s.SourceFiles)+len(s.TestFiles))
	all = append(all, s.SourceFiles...)
	all = append(all, s.TestFiles...)
	return all
}

// BuildResult is the classified outcome of one toolchain build invocation.
// A non-zero exit code is a normal check failure, never an error.
type BuildResult struct {
	Succeeded bool   `json:"succeeded"`
	Output    string `json:"output"`
}

// TestResult is the outcome of one toolchain test run. TestCount and
// ElapsedSeconds are zero when the tool output did not expose them.
type TestResult struct {
	Succeeded      bool    `json:"succeeded"`
	Output         string  `json:"output"`
	TestCount      int     `json:"test_count"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// ToolchainRunner invokes the external build/test toolchain as a subprocess.
// A returned error always means the tool could not execute (launch failure,
// timeout); tool-reported failures come back inside the result.
type ToolchainRunner interface {
	Build(ctx context.Context, submissionPath string) (*BuildResult, error)
	Test(ctx context.Context, submissionPath string) (*TestResult, error)
	ListTests(ctx context.Context, submissionPath string) (int, error)
}

// CoverageReader looks for machine-readable coverage artifacts under a test
// results directory. parsed means a report was read; found means artifacts
// exist even if none parsed.
type CoverageReader interface {
	Read(resultsDir string) (percent float64, parsed bool, found bool, err error)
}

// ConfigLoader loads verification configuration for a submission directory.
type ConfigLoader interface {
	Load(submissionPath string) (Config, error)
}

// SubmissionStore is the registry record store. Constructed at startup with
// caller-managed lifetime and injected into services; implementations must be
// safe for concurrent use.
type SubmissionStore interface {
	Create(sub Submission) (Submission, error)
	Get(id string) (Submission, error)
	List(filter SubmissionFilter) ([]Submission, error)
	Update(id string, upd SubmissionUpdate) (Submission, error)
	Delete(id string) (Submission, error)
	Statistics() (Statistics, error)
}

// ArchiveFile is one file extracted from a submission ZIP, in the wire shape
// the tournament API expects.
type ArchiveFile struct {
	FileName string `json:"FileName"`
	Code     string `json:"Code"`
}

// UploadResult is the tournament API's verdict on an uploaded submission.
type UploadResult struct {
	Accepted bool     `json:"accepted"`
	Message  string   `json:"message,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// SubmitResult confirms a tournament submission upload.
type SubmitResult struct {
	Accepted     bool     `json:"accepted"`
	TeamName     string   `json:"team_name,omitempty"`
	SubmissionID string   `json:"submission_id,omitempty"`
	Message      string   `json:"message,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

// RegistryClient talks to the remote tournament API.
type RegistryClient interface {
	DownloadTemplate(ctx context.Context, name string) ([]byte, error)
	VerifySubmission(ctx context.Context, teamName string, files []ArchiveFile) (*UploadResult, error)
	SubmitArchive(ctx context.Context, teamName string, files []ArchiveFile, overwrite bool) (*SubmitResult, error)
}

// Archiver extracts submission ZIPs and unpacks template archives.
type Archiver interface {
	ExtractFiles(zipPath string) ([]ArchiveFile, error)
	Unpack(data []byte, destDir string) ([]string, error)
}

// GitInfo exposes repository metadata for a submission directory.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
	RemoteURL(path string) (string, error)
}
