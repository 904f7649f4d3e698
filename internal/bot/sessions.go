package bot

import (
	"sync"
	"time"

	"github.com/scar796/nutrio/internal/conversation"
	"github.com/scar796/nutrio/internal/models"
)

// userState is the transient per-user scope: the intake session, the most
// recent plans for grocery building and week navigation. It is mirrored
// to storage only where the data model requires it; the session itself
// never is.
type userState struct {
	mu       sync.Mutex
	session  *conversation.Session
	lastPlan *models.MealPlan
	weekPlan *models.MealPlan
	weekDay  int
	lastSeen time.Time
}

type sessionStore struct {
	mu    sync.Mutex
	users map[int64]*userState
}

func newSessionStore() *sessionStore {
	return &sessionStore{users: make(map[int64]*userState)}
}

// withUser runs fn while holding the user's lock. All state transitions
// for one user are serialized here; different users proceed
// independently.
func (store *sessionStore) withUser(userID int64, fn func(*userState)) {
	store.mu.Lock()
	state, ok := store.users[userID]
	if !ok {
		state = &userState{}
		store.users[userID] = state
	}
	store.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()
	state.lastSeen = time.Now()
	fn(state)
}

// sweep discards abandoned conversation sessions and cached plans for
// users idle longer than maxIdle. Returns the number of users swept.
func (store *sessionStore) sweep(maxIdle time.Duration) int {
	store.mu.Lock()
	defer store.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	swept := 0
	for userID, state := range store.users {
		if state.mu.TryLock() {
			idle := state.lastSeen.Before(cutoff)
			state.mu.Unlock()
			if idle {
				delete(store.users, userID)
				swept++
			}
		}
	}
	return swept
}
