package mcpserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erraggy/schematools/inferrer"
)

// sessionState accumulates data samples into one schema across tool
// calls. All fields are guarded by mu; the store hands out shared
// pointers so concurrent schema_session_add calls on the same session
// serialize on the state, not the store.
type sessionState struct {
	mu        sync.Mutex
	schema    *inferrer.Schema
	samples   int
	createdAt time.Time
	updatedAt time.Time
}

// sessionStore holds active inference sessions in an LRU cache so a
// long-running server cannot accumulate unbounded state. Evicted or
// expired sessions are simply forgotten; clients get an unknown
// session error and start a new one.
type sessionStore struct {
	cache *lru.Cache[string, *sessionState]
}

func newSessionStore(maxItems int) *sessionStore {
	c, err := lru.New[string, *sessionState](maxItems)
	if err != nil {
		// lru.New fails only on a non-positive size; loadConfig
		// guarantees SessionCacheSize > 0.
		panic(err)
	}
	return &sessionStore{cache: c}
}

var sessions = newSessionStore(cfg.SessionCacheSize)

// get returns the session with the given ID, or false when it does not
// exist (never created, expired out of the LRU, or evicted).
func (s *sessionStore) get(id string) (*sessionState, bool) {
	return s.cache.Get(id)
}

// create allocates a fresh session and returns its ID.
func (s *sessionStore) create() (string, *sessionState, error) {
	id, err := newSessionID()
	if err != nil {
		return "", nil, err
	}
	now := time.Now()
	state := &sessionState{createdAt: now, updatedAt: now}
	s.cache.Add(id, state)
	return id, state, nil
}

// len returns the number of live sessions.
func (s *sessionStore) len() int {
	return s.cache.Len()
}

// reset drops all sessions. Used in tests.
func (s *sessionStore) reset() {
	s.cache.Purge()
}

// newSessionID returns a 16-byte random hex identifier.
func newSessionID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
