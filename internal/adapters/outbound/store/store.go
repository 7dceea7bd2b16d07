package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/camelcase"
	"github.com/google/uuid"

	"github.com/inbar-marom/botverify/internal/domain"
)

// Store is a file-backed implementation of domain.SubmissionStore. The
// in-memory map is the source of truth within a process; every mutation is
// flushed to the JSON file so records survive across invocations. Construct
// it once at startup and inject it; all methods are safe for concurrent use.
type Store struct {
	path string

	mu          sync.RWMutex
	submissions map[string]domain.Submission
	order       []string
}

// fileFormat is the on-disk shape: an ordered list, not a map, so the file
// diffs cleanly and insertion order survives a reload.
type fileFormat struct {
	Submissions []domain.Submission `json:"submissions"`
}

// Open loads the store file at path, creating an empty store when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:        path,
		submissions: make(map[string]domain.Submission),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for _, sub := range f.Submissions {
		s.submissions[sub.ID] = sub
		s.order = append(s.order, sub.ID)
	}
	return s, nil
}

func (s *Store) Create(sub domain.Submission) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	sub.ID = newID(sub.TeamName)
	if sub.Status == "" {
		sub.Status = domain.StatusPending
	}
	sub.SubmittedAt = now
	sub.UpdatedAt = now

	s.submissions[sub.ID] = sub
	s.order = append(s.order, sub.ID)

	if err := s.persist(); err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
}

func (s *Store) Get(id string) (domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.submissions[id]
	if !ok {
		return domain.Submission{}, domain.ErrNotFound
	}
	return sub, nil
}

func (s *Store) List(filter domain.SubmissionFilter) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Submission
	for _, id := range s.order {
		sub := s.submissions[id]
		if filter.TeamName != "" && !strings.EqualFold(sub.TeamName, filter.TeamName) {
			continue
		}
		if filter.Status != "" && sub.Status != filter.Status {
			continue
		}
		result = append(result, sub)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func (s *Store) Update(id string, upd domain.SubmissionUpdate) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return domain.Submission{}, domain.ErrNotFound
	}

	if upd.Version != nil {
		sub.Version = *upd.Version
	}
	if upd.Description != nil {
		sub.Description = *upd.Description
	}
	if upd.RepositoryURL != nil {
		sub.RepositoryURL = *upd.RepositoryURL
	}
	if upd.Status != nil {
		sub.Status = *upd.Status
	}
	sub.UpdatedAt = time.Now().UTC()

	s.submissions[id] = sub
	if err := s.persist(); err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
}

func (s *Store) Delete(id string) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return domain.Submission{}, domain.ErrNotFound
	}

	delete(s.submissions, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if err := s.persist(); err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
}

func (s *Store) Statistics() (domain.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.Statistics{
		Total:      len(s.order),
		ByStatus:   make(map[string]int),
		ByTeam:     make(map[string]int),
		ByLanguage: make(map[string]int),
	}
	for _, sub := range s.submissions {
		stats.ByStatus[string(sub.Status)]++
		stats.ByTeam[sub.TeamName]++
		if sub.Language != "" {
			stats.ByLanguage[sub.Language]++
		}
	}
	return stats, nil
}

// persist writes the ordered record list, creating parent directories as
// needed. Callers hold the write lock.
func (s *Store) persist() error {
	f := fileFormat{Submissions: make([]domain.Submission, 0, len(s.order))}
	for _, id := range s.order {
		f.Submissions = append(f.Submissions, s.submissions[id])
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0644)
}

// newID builds an opaque but readable identifier: sub_<team-slug>_<uuid8>.
func newID(teamName string) string {
	return "sub_" + slug(teamName) + "_" + uuid.NewString()[:8]
}

// slug lowercases a CamelCase team name into dash-separated words.
func slug(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, name)
	if cleaned == "" {
		return "team"
	}
	words := camelcase.Split(cleaned)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}
