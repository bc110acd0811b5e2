// Package questionnaires caches the questionnaire catalogue in memory. List
// and question fetches degrade gracefully: on transport failure a fixed
// sample dataset keeps the client usable in disconnected/demo mode.
package questionnaires

import (
	"context"
	"sync"

	"github.com/frostedstar/mbticli/internal/client/api"
	"github.com/frostedstar/mbticli/internal/logging"
)

// Client is the slice of the API surface this store consumes.
type Client interface {
	ActiveQuestionnaires(ctx context.Context) ([]api.Questionnaire, error)
	ListQuestionnaires(ctx context.Context, page, size int) (*api.QuestionnairePage, error)
	QuestionnaireDetail(ctx context.Context, id int64) (*api.Questionnaire, error)
	QuestionnaireQuestions(ctx context.Context, id int64) (*api.QuestionnaireDetail, error)
	CreateQuestionnaire(ctx context.Context, title, description string) (*api.Questionnaire, error)
	UpdateQuestionnaire(ctx context.Context, id int64, title, description string) (*api.Questionnaire, error)
	DeleteQuestionnaire(ctx context.Context, id int64) error
	SetQuestionnaireStatus(ctx context.Context, id int64, active bool) (*api.Questionnaire, error)
}

// Store is a thin cache over the questionnaire endpoints. The loading flag is
// a UI hint, not a lock: concurrent fetches race and the last response wins.
type Store struct {
	client Client
	log    logging.Logger

	mu             sync.RWMutex
	questionnaires []api.Questionnaire
	loading        bool
	lastErr        error
}

func NewStore(client Client, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{client: client, log: log}
}

// Fetch loads the published questionnaires. On failure it substitutes the
// sample catalogue and reports no error: degraded, not broken.
func (s *Store) Fetch(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	qs, err := s.client.ActiveQuestionnaires(ctx)
	if err != nil {
		s.log.Warn(ctx, "questionnaire fetch failed, using sample data", "error", err)
		qs = sampleQuestionnaires()
	}

	s.mu.Lock()
	s.questionnaires = qs
	s.lastErr = nil
	s.mu.Unlock()
}

// FetchAll loads every questionnaire, published or not, through the paged
// admin listing. Unlike Fetch there is no sample fallback: this is an admin
// operation and the error propagates.
func (s *Store) FetchAll(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var all []api.Questionnaire
	for page := 0; ; page++ {
		p, err := s.client.ListQuestionnaires(ctx, page, fetchAllPageSize)
		if err != nil {
			s.log.Warn(ctx, "questionnaire listing failed", "page", page, "error", err)
			s.setErr(err)
			return err
		}
		all = append(all, p.Content...)
		if p.Last || len(p.Content) == 0 {
			break
		}
	}

	s.mu.Lock()
	s.questionnaires = all
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

const fetchAllPageSize = 50

// Detail returns one questionnaire, falling back to the cached copy when the
// backend is unreachable.
func (s *Store) Detail(ctx context.Context, id int64) (*api.Questionnaire, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	q, err := s.client.QuestionnaireDetail(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "questionnaire detail fetch failed", "id", id, "error", err)
		if cached := s.ByID(id); cached != nil {
			return cached, nil
		}
		s.setErr(err)
		return nil, err
	}
	return q, nil
}

// Questions returns a questionnaire with its question list, substituting the
// sample test when the backend fails.
func (s *Store) Questions(ctx context.Context, id int64) (*api.QuestionnaireDetail, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	d, err := s.client.QuestionnaireQuestions(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "question fetch failed, using sample questions", "id", id, "error", err)
		return sampleQuestions(id), nil
	}
	return d, nil
}

// Create adds a questionnaire and caches it. Mutations get no fallback; the
// error propagates.
func (s *Store) Create(ctx context.Context, title, description string) (*api.Questionnaire, error) {
	q, err := s.client.CreateQuestionnaire(ctx, title, description)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.questionnaires = append(s.questionnaires, *q)
	s.mu.Unlock()
	return q, nil
}

// Update edits a questionnaire and refreshes the cached entry.
func (s *Store) Update(ctx context.Context, id int64, title, description string) (*api.Questionnaire, error) {
	q, err := s.client.UpdateQuestionnaire(ctx, id, title, description)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.replace(*q)
	return q, nil
}

// Delete removes a questionnaire from the server and the cache.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteQuestionnaire(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	for i, q := range s.questionnaires {
		if q.QuestionnaireID == id {
			s.questionnaires = append(s.questionnaires[:i], s.questionnaires[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// SetStatus publishes or unpublishes a questionnaire.
func (s *Store) SetStatus(ctx context.Context, id int64, active bool) error {
	q, err := s.client.SetQuestionnaireStatus(ctx, id, active)
	if err != nil {
		s.setErr(err)
		return err
	}
	s.replace(*q)
	return nil
}

// All returns the cached list.
func (s *Store) All() []api.Questionnaire {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.Questionnaire(nil), s.questionnaires...)
}

// Active returns only the published questionnaires.
func (s *Store) Active() []api.Questionnaire {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Questionnaire, 0, len(s.questionnaires))
	for _, q := range s.questionnaires {
		if q.IsPublished {
			out = append(out, q)
		}
	}
	return out
}

// ByID returns a copy of the cached questionnaire, or nil.
func (s *Store) ByID(id int64) *api.Questionnaire {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.questionnaires {
		if q.QuestionnaireID == id {
			c := q
			return &c
		}
	}
	return nil
}

// MarkAnswered flags a questionnaire as answered by the current user and
// bumps its answer count.
func (s *Store) MarkAnswered(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questionnaires {
		if s.questionnaires[i].QuestionnaireID == id {
			if !s.questionnaires[i].HasAnswered {
				s.questionnaires[i].HasAnswered = true
				s.questionnaires[i].AnswerCount++
			}
			return
		}
	}
}

// Reset drops all cached state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionnaires = nil
	s.loading = false
	s.lastErr = nil
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded error, nil after a successful or degraded
// fetch.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
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

func (s *Store) replace(q api.Questionnaire) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questionnaires {
		if s.questionnaires[i].QuestionnaireID == q.QuestionnaireID {
			s.questionnaires[i] = q
			return
		}
	}
	s.questionnaires = append(s.questionnaires, q)
}
