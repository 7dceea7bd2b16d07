package domain

import "time"

// SubmissionStatus is the lifecycle state of a registry record.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
	StatusTesting  SubmissionStatus = "testing"
)

// ValidStatuses enumerates all recognized submission statuses.
var ValidStatuses = []SubmissionStatus{
	StatusPending, StatusApproved, StatusRejected, StatusTesting,
}

// ValidStatus reports whether s is a recognized submission status.
func ValidStatus(s SubmissionStatus) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Submission is one bot registry record, keyed by an opaque identifier.
type Submission struct {
	ID            string           `json:"id"`
	BotName       string           `json:"bot_name"`
	TeamName      string           `json:"team_name"`
	Version       string           `json:"version"`
	RepositoryURL string           `json:"repository_url"`
	Description   string           `json:"description,omitempty"`
	Language      string           `json:"language,omitempty"`
	Framework     string           `json:"framework,omitempty"`
	Status        SubmissionStatus `json:"status"`
	SubmittedAt   time.Time        `json:"submitted_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// SubmissionFilter narrows List results. Zero values match everything;
// Limit <= 0 means no limit. Name matching is case-insensitive.
type SubmissionFilter struct {
	TeamName string
	Status   SubmissionStatus
	Limit    int
}

// SubmissionUpdate carries partial field updates. Nil pointers leave the
// stored value untouched.
type SubmissionUpdate struct {
	Version       *string
	Description   *string
	RepositoryURL *string
	Status        *SubmissionStatus
}

// Statistics aggregates registry counts.
type Statistics struct {
	Total      int            `json:"total_submissions"`
	ByStatus   map[string]int `json:"by_status"`
	ByTeam     map[string]int `json:"by_team"`
	ByLanguage map[string]int `json:"by_language"`
}
