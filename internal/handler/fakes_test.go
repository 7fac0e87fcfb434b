package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/model"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/utils"
)

// fakeUserStore is an in-memory UserStore for handler tests.
type fakeUserStore struct {
	users map[string]model.User // keyed by id
	seq   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (s *fakeUserStore) Create(ctx context.Context, name, email, password string, cost int) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	s.seq++
	u := model.User{
		ID:           fmt.Sprintf("user-%d", s.seq),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

// fakeTaskStore is an in-memory TaskStore. Filtering, sorting and
// aggregation run through the same repository functions the real store
// uses, so handler tests exercise the production query engine.
type fakeTaskStore struct {
	tasks map[string]model.Task // keyed by id
	seq   int
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[string]model.Task{}}
}

func (s *fakeTaskStore) Create(ctx context.Context, t *model.Task) error {
	s.seq++
	t.ID = fmt.Sprintf("task-%d", s.seq)
	// Distinct timestamps keep created_at ordering unambiguous.
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Minute)
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[t.ID] = *t
	return nil
}

func (s *fakeTaskStore) GetByIDAndOwner(ctx context.Context, id, ownerID string) (model.Task, error) {
	t, ok := s.tasks[id]
	if !ok || t.UserID != ownerID {
		return model.Task{}, repository.ErrTaskNotFound
	}
	return t, nil
}

func (s *fakeTaskStore) owned(ownerID string) []model.Task {
	out := []model.Task{}
	for _, t := range s.tasks {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	return out
}

func (s *fakeTaskStore) Search(ctx context.Context, ownerID string, q repository.TaskQuery) ([]model.Task, error) {
	return repository.ApplyQuery(s.owned(ownerID), q), nil
}

func (s *fakeTaskStore) Update(ctx context.Context, t *model.Task) error {
	t.UpdatedAt = t.UpdatedAt.Add(time.Minute)
	s.tasks[t.ID] = *t
	return nil
}

func (s *fakeTaskStore) Delete(ctx context.Context, id, ownerID string) error {
	t, ok := s.tasks[id]
	if !ok || t.UserID != ownerID {
		return repository.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *fakeTaskStore) Stats(ctx context.Context, ownerID string, now time.Time) (model.TaskStats, error) {
	return repository.AggregateStats(s.owned(ownerID), now), nil
}

func (s *fakeTaskStore) Categories(ctx context.Context, ownerID string) ([]string, error) {
	return repository.DistinctCategories(s.owned(ownerID)), nil
}

// newTestContext builds an echo context carrying an optional JSON body and
// an optional authenticated user id, the way JWTAuth would have left it.
func newTestContext(method, target, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set(middleware.UserIDKey, uid)
	}
	return c, rec
}
