// Package tests caches the user's past test results and handles submissions.
// Result fetches degrade to an empty list with the error recorded; submissions
// never get a fallback.
package tests

import (
	"context"
	"sync"

	"github.com/frostedstar/mbticli/internal/client/api"
	"github.com/frostedstar/mbticli/internal/logging"
)

// Client is the slice of the API surface this store consumes.
type Client interface {
	SubmitAnswers(ctx context.Context, questionnaireID int64, answers map[int64]int64) (*api.TestSubmission, error)
	TestResults(ctx context.Context) ([]api.TestResult, error)
	TestResultDetail(ctx context.Context, answerID int64) (*api.TestResultDetail, error)
}

// Store caches results newest-first.
type Store struct {
	client Client
	log    logging.Logger

	mu      sync.RWMutex
	results []api.TestResult
	loading bool
	lastErr error
}

func NewStore(client Client, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{client: client, log: log}
}

// FetchResults loads the result history. On failure the list degrades to
// empty and the error is recorded for the UI.
func (s *Store) FetchResults(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	rs, err := s.client.TestResults(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Warn(ctx, "result fetch failed", "error", err)
		s.results = nil
		s.lastErr = err
		return
	}
	s.results = rs
	s.lastErr = nil
}

// Detail returns one past result with its scores.
func (s *Store) Detail(ctx context.Context, answerID int64) (*api.TestResultDetail, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	d, err := s.client.TestResultDetail(ctx, answerID)
	if err != nil {
		s.log.Warn(ctx, "result detail fetch failed", "answerId", answerID, "error", err)
		s.setErr(err)
		return nil, err
	}
	return d, nil
}

// Submit sends a completed test. On success the new result is prepended to
// the cached list; no re-fetch happens.
func (s *Store) Submit(ctx context.Context, questionnaireID int64, questionnaireTitle string, answers map[int64]int64) (*api.TestSubmission, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	sub, err := s.client.SubmitAnswers(ctx, questionnaireID, answers)
	if err != nil {
		s.log.Warn(ctx, "submission failed", "questionnaireId", questionnaireID, "error", err)
		s.setErr(err)
		return nil, err
	}

	result := api.TestResult{
		AnswerID:           sub.AnswerID,
		QuestionnaireID:    questionnaireID,
		QuestionnaireTitle: questionnaireTitle,
		MbtiType:           sub.MbtiType,
		SubmittedAt:        sub.SubmittedAt,
	}

	s.mu.Lock()
	s.results = append([]api.TestResult{result}, s.results...)
	s.lastErr = nil
	s.mu.Unlock()

	s.log.Info(ctx, "test submitted", "questionnaireId", questionnaireID, "mbtiType", sub.MbtiType)
	return sub, nil
}

// Results returns the cached list, newest first.
func (s *Store) Results() []api.TestResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.TestResult(nil), s.results...)
}

// Latest returns the most recent result, or nil.
func (s *Store) Latest() *api.TestResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.results) == 0 {
		return nil
	}
	r := s.results[0]
	return &r
}

// HasResults reports whether any results are cached.
func (s *Store) HasResults() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results) > 0
}

// Loading reports whether a call is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded error.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Reset drops all cached state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.loading = false
	s.lastErr = nil
}

func (s *Store) setLoading(b bool) {
	s.mu.Lock()
	s.loading = b
	s.mu.Unlock()
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
