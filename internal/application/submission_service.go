package application

import (
	"fmt"

	"github.com/inbar-marom/botverify/internal/domain"
)

// SubmissionService fronts the registry store with input validation and the
// status transitions driven by verification reports.
type SubmissionService struct {
	store domain.SubmissionStore
}

// NewSubmissionService creates a SubmissionService over the given store.
func NewSubmissionService(store domain.SubmissionStore) *SubmissionService {
	return &SubmissionService{store: store}
}

// Create validates and registers a new submission record. New records start
// pending unless a valid status is supplied.
func (s *SubmissionService) Create(sub domain.Submission) (domain.Submission, error) {
	if sub.BotName == "" {
		return domain.Submission{}, fmt.Errorf("bot name is required")
	}
	if sub.TeamName == "" {
		return domain.Submission{}, fmt.Errorf("team name is required")
	}
	if sub.Version == "" {
		return domain.Submission{}, fmt.Errorf("version is required")
	}
	if sub.Status != "" && !domain.ValidStatus(sub.Status) {
		return domain.Submission{}, fmt.Errorf("unknown status %q", sub.Status)
	}
	return s.store.Create(sub)
}

func (s *SubmissionService) Get(id string) (domain.Submission, error) {
	return s.store.Get(id)
}

func (s *SubmissionService) List(filter domain.SubmissionFilter) ([]domain.Submission, error) {
	if filter.Status != "" && !domain.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("unknown status %q", filter.Status)
	}
	return s.store.List(filter)
}

func (s *SubmissionService) Update(id string, upd domain.SubmissionUpdate) (domain.Submission, error) {
	if upd.Status != nil && !domain.ValidStatus(*upd.Status) {
		return domain.Submission{}, fmt.Errorf("unknown status %q", *upd.Status)
	}
	return s.store.Update(id, upd)
}

func (s *SubmissionService) Delete(id string) (domain.Submission, error) {
	return s.store.Delete(id)
}

func (s *SubmissionService) Statistics() (domain.Statistics, error) {
	return s.store.Statistics()
}

// ApplyReport transitions a submission based on a verification verdict:
// approved when every check passed, rejected otherwise. The pipeline drives
// the registry but never owns it.
func (s *SubmissionService) ApplyReport(id string, report *domain.VerificationReport) (domain.Submission, error) {
	status := domain.StatusRejected
	if report.OverallPassed() {
		status = domain.StatusApproved
	}
	return s.store.Update(id, domain.SubmissionUpdate{Status: &status})
}
