package memory

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"medical-triage-be/pkg/store"
)

// SessionRepository keeps bounded conversation histories in process
// memory. Sessions idle for an hour are evicted wholesale; within a
// session, turns beyond the cap are dropped oldest first.
type SessionRepository struct {
	cache *cache.Cache
	limit int

	// Per-session locks serialize read-then-append so concurrent
	// requests on one session never interleave turns.
	locks sync.Map
}

func NewSessionRepository(historyLimit int) *SessionRepository {
	if historyLimit <= 0 {
		historyLimit = 5
	}
	// Default expiration of 1 hour, expired sessions purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		limit: historyLimit,
	}
}

func (r *SessionRepository) Record(ctx context.Context, sessionID, userText, systemText string) error {
	mu := r.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session := r.load(sessionID)
	session.Turns = append(session.Turns, store.ConversationTurn{
		UserInput:      userText,
		SystemResponse: systemText,
		Timestamp:      time.Now(),
	})
	if len(session.Turns) > r.limit {
		session.Turns = session.Turns[len(session.Turns)-r.limit:]
	}

	r.cache.Set(sessionID, session, cache.DefaultExpiration)
	return nil
}

// History returns a snapshot copy; callers are isolated from later writes.
func (r *SessionRepository) History(ctx context.Context, sessionID string) ([]store.ConversationTurn, error) {
	mu := r.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session := r.load(sessionID)
	snapshot := make([]store.ConversationTurn, len(session.Turns))
	copy(snapshot, session.Turns)
	return snapshot, nil
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// load returns the stored session or a fresh empty one. Unknown ids are
// not an error; they triage as new conversations.
func (r *SessionRepository) load(sessionID string) *store.Session {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session)
	}
	return &store.Session{ID: sessionID}
}

func (r *SessionRepository) sessionLock(sessionID string) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
