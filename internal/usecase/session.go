package usecase

import "sync"

// Sessions maps chat IDs to their conversation state. Owned here rather
// than by the transport adapter so the state-transition logic stays
// independent of how sessions are stored.
type Sessions struct {
	mu     sync.Mutex
	byChat map[int64]*Session
}

func NewSessions() *Sessions {
	return &Sessions{byChat: make(map[int64]*Session)}
}

// Get returns the session for a chat, creating an idle one on first use.
func (r *Sessions) Get(chatID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byChat[chatID]; ok {
		return s
	}
	s := &Session{ChatID: chatID, Stage: StageIdle}
	r.byChat[chatID] = s
	return s
}
