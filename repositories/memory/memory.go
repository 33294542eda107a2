// Package memory holds map-backed implementations of the repository interfaces.
// They follow the Postgres repositories' error contracts and are used by the
// service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/repositories"
	"github.com/google/uuid"
)

type Users struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]models.User
	Calls  int
	// Updates counts successful writes (Create, UpdateProfile, UpdateLeagues).
	Updates int
}

func NewUsers() *Users {
	return &Users{byID: make(map[int]models.User)}
}

var _ repositories.UserRepository = (*Users)(nil)

func (r *Users) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	for _, u := range r.byID {
		if u.Username == user.Username {
			return repositories.ErrUsernameConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	if user.Leagues == nil {
		user.Leagues = models.Leagues{}
	}
	r.byID[user.ID] = cloneUser(*user)
	r.Updates++
	return nil
}

func (r *Users) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	for _, u := range r.byID {
		if u.Username == username {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *Users) UpdateProfile(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	u, ok := r.byID[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	u.Leagues = append(models.Leagues{}, user.Leagues...)
	r.byID[user.ID] = u
	r.Updates++
	return nil
}

func (r *Users) UpdateLeagues(_ context.Context, userID int, leagues models.Leagues) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	u, ok := r.byID[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Leagues = append(models.Leagues{}, leagues...)
	r.byID[userID] = u
	r.Updates++
	return nil
}

// Len returns the number of stored users.
func (r *Users) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func cloneUser(u models.User) models.User {
	u.Leagues = append(models.Leagues{}, u.Leagues...)
	return u
}

type Scores struct {
	mu      sync.Mutex
	nextID  int
	records []models.ScoreRecord
	Calls   int
	// Err, when set, is returned by every call.
	Err error
}

func NewScores() *Scores {
	return &Scores{}
}

var _ repositories.ScoreRepository = (*Scores)(nil)

func (r *Scores) Create(_ context.Context, record *models.ScoreRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	record.ID = r.nextID
	record.CreatedAt = time.Now().UTC()
	rec := *record
	rec.Games = append([]int(nil), record.Games...)
	r.records = append(r.records, rec)
	return nil
}

func (r *Scores) ListByUser(_ context.Context, userID int) ([]models.ScoreRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.ScoreRecord{}
	for _, rec := range r.records {
		if rec.UserID == userID {
			rec.Games = append([]int(nil), rec.Games...)
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].BowledOn.Equal(out[j].BowledOn) {
			return out[i].BowledOn.After(out[j].BowledOn)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type Sessions struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]models.Session
	Calls int
}

func NewSessions() *Sessions {
	return &Sessions{byID: make(map[uuid.UUID]models.Session)}
}

var _ repositories.SessionRepository = (*Sessions)(nil)

func (r *Sessions) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	session.CreatedAt = time.Now().UTC()
	r.byID[session.ID] = *session
	return nil
}

func (r *Sessions) GetByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	s, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return &s, nil
}

func (r *Sessions) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Sessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	var n int64
	for id, s := range r.byID {
		if s.Expired(now) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ResetCalls zeroes every call counter.
func ResetCalls(users *Users, scores *Scores, sessions *Sessions) {
	if users != nil {
		users.mu.Lock()
		users.Calls = 0
		users.mu.Unlock()
	}
	if scores != nil {
		scores.mu.Lock()
		scores.Calls = 0
		scores.mu.Unlock()
	}
	if sessions != nil {
		sessions.mu.Lock()
		sessions.Calls = 0
		sessions.mu.Unlock()
	}
}
