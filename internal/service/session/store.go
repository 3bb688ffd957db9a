package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/config"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/chat"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/sports"
)

// ErrInvalidSession marks a blank session identifier.
var ErrInvalidSession = errors.New("session id is required")

// Memory is the conversational carry-over kept besides raw turns: the last
// subjects the user mentioned, for continuity across vague follow-ups.
type Memory struct {
	Teams          []string
	LastTournament string
	BetTypes       []string
}

// Session is one conversation's bounded state. All mutators hold the
// session's own lock, so overlapping requests for the same id serialize
// without contending with other sessions.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	lastSeen  time.Time
	limit     int

	turns      []chat.Turn
	memory     Memory
	pendingBet *sports.PendingBet
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// AppendTurn records a completed exchange, evicting the oldest turn once
// the history cap is reached.
func (s *Session) AppendTurn(user, bot string) chat.Turn {
	turn := chat.Turn{
		ID:        uuid.NewString(),
		User:      user,
		Bot:       bot,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, turn)
	if s.limit > 0 && len(s.turns) > s.limit {
		s.turns = append(s.turns[:0:0], s.turns[len(s.turns)-s.limit:]...)
	}
	s.lastSeen = time.Now()
	return turn
}

// History returns a snapshot of the stored turns, oldest first.
func (s *Session) History() []chat.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]chat.Turn, len(s.turns))
	copy(copied, s.turns)
	return copied
}

// Remember merges the latest mentioned subjects into the session memory.
func (s *Session) Remember(teams []string, tournament string, betTypes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(teams) > 0 {
		s.memory.Teams = append([]string(nil), teams...)
	}
	if tournament != "" {
		s.memory.LastTournament = tournament
	}
	if len(betTypes) > 0 {
		s.memory.BetTypes = append([]string(nil), betTypes...)
	}
}

// Memory returns a copy of the remembered subjects.
func (s *Session) Memory() Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Memory{
		Teams:          append([]string(nil), s.memory.Teams...),
		LastTournament: s.memory.LastTournament,
		BetTypes:       append([]string(nil), s.memory.BetTypes...),
	}
}

// SetPendingBet stores a simulated bet awaiting confirmation.
func (s *Session) SetPendingBet(bet *sports.PendingBet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingBet = bet
}

// TakePendingBet returns and clears the pending bet, if any.
func (s *Session) TakePendingBet() *sports.PendingBet {
	s.mu.Lock()
	defer s.mu.Unlock()
	bet := s.pendingBet
	s.pendingBet = nil
	return bet
}

// HasPendingBet reports whether a bet is awaiting confirmation.
func (s *Session) HasPendingBet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingBet != nil
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Store keeps every live session, keyed by id. Not durable across restarts.
type Store struct {
	mu       sync.RWMutex
	cfg      config.SessionConfig
	sessions map[string]*Session
	logger   *zap.SugaredLogger
}

// NewStore bootstraps the in-memory store.
func NewStore(cfg config.SessionConfig, logger *zap.SugaredLogger) *Store {
	return &Store{
		cfg:      cfg,
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// GetOrCreate returns the session for the id, creating it on first use.
func (st *Store) GetOrCreate(sessionID string) (*Session, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, ErrInvalidSession
	}

	st.mu.RLock()
	existing, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		existing.mu.Lock()
		existing.lastSeen = time.Now()
		existing.mu.Unlock()
		return existing, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if existing, ok := st.sessions[id]; ok {
		return existing, nil
	}

	now := time.Now()
	created := &Session{
		id:        id,
		createdAt: now,
		lastSeen:  now,
		limit:     st.cfg.HistoryLimit,
		turns:     make([]chat.Turn, 0, st.cfg.HistoryLimit),
	}
	st.sessions[id] = created
	return created, nil
}

// Len reports how many sessions are live.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// StartSweeper launches the idle-session reaper until ctx is cancelled.
func (st *Store) StartSweeper(ctx context.Context) {
	if st.cfg.TTL <= 0 {
		return
	}
	interval := st.cfg.TTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				st.sweep(now)
			}
		}
	}()
}

func (st *Store) sweep(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, sess := range st.sessions {
		if sess.idleSince(now) > st.cfg.TTL {
			delete(st.sessions, id)
			if st.logger != nil {
				st.logger.Infow("expired idle session", "session_id", id)
			}
		}
	}
}
