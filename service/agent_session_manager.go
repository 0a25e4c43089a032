package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-agent/domain"
	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/agent"
	"github.com/beka-birhanu/vinom-agent/service/i"
	"github.com/google/uuid"
)

const (
	defaultTokenTTL        = time.Hour
	defaultLeaderboardSize = 100

	leaderboardKey = "leaderboard:episodes"

	// ClaimSessionID is the token claim holding the session ID.
	ClaimSessionID = "sessionID"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrMissingDependency  = errors.New("missing dependency")
	ErrInvalidLeaderboard = errors.New("leaderboard size must be positive")
)

type session struct {
	agent     *agent.Agent
	episode   *dmn.Episode
	createdAt time.Time
	sync.Mutex
}

// AgentSessionManager hosts one agent per session and keeps the transcript of its current
// episode. Steps of one session are serialised; different sessions step concurrently.
//
// Only running or unsaved episodes stay in memory. A session lives as long as its token.
type AgentSessionManager struct {
	sessions  map[uuid.UUID]*session
	episodes  map[uuid.UUID]*dmn.Episode
	tokenizer i.Tokenizer
	repo      i.EpisodeRepo
	board     i.SortedQueue
	boardSize int64
	tokenTTL  time.Duration
	agentOpts []agent.Option
	logger    i.Logger
	now       func() time.Time
	sync.RWMutex
}

type Config struct {
	Tokenizer       i.Tokenizer
	EpisodeRepo     i.EpisodeRepo
	Leaderboard     i.SortedQueue
	LeaderboardSize int
	TokenTTL        time.Duration
	AgentOptions    []agent.Option
	Logger          i.Logger
	Clock           func() time.Time // Clock defaults to time.Now.
}

func NewAgentSessionManager(c *Config) (*AgentSessionManager, error) {
	switch {
	case c.Tokenizer == nil:
		return nil, fmt.Errorf("tokenizer: %w", ErrMissingDependency)
	case c.EpisodeRepo == nil:
		return nil, fmt.Errorf("episode repo: %w", ErrMissingDependency)
	case c.Leaderboard == nil:
		return nil, fmt.Errorf("leaderboard: %w", ErrMissingDependency)
	case c.Logger == nil:
		return nil, fmt.Errorf("logger: %w", ErrMissingDependency)
	case c.LeaderboardSize < 0:
		return nil, ErrInvalidLeaderboard
	}

	asm := &AgentSessionManager{
		sessions:  make(map[uuid.UUID]*session),
		episodes:  make(map[uuid.UUID]*dmn.Episode),
		tokenizer: c.Tokenizer,
		repo:      c.EpisodeRepo,
		board:     c.Leaderboard,
		boardSize: int64(c.LeaderboardSize),
		tokenTTL:  c.TokenTTL,
		logger:    c.Logger,
		now:       c.Clock,
	}
	if asm.now == nil {
		asm.now = time.Now
	}
	if asm.boardSize == 0 {
		asm.boardSize = defaultLeaderboardSize
	}
	if asm.tokenTTL <= 0 {
		asm.tokenTTL = defaultTokenTTL
	}
	asm.agentOpts = append([]agent.Option{agent.WithLogger(c.Logger)}, c.AgentOptions...)
	return asm, nil
}

// NewSession creates an agent standing on start and facing heading. Sessions whose token has
// expired are evicted first.
func (m *AgentSessionManager) NewSession(ctx context.Context, start game.Position, heading game.Heading) (uuid.UUID, string, error) {
	m.evictExpired(ctx)
	a := agent.New(start, heading, m.agentOpts...)

	m.Lock()
	sessionID := uuid.New()
	for {
		if _, ok := m.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}
	s := &session{
		agent:     a,
		episode:   dmn.NewEpisode(a.ID(), sessionID, start, heading),
		createdAt: m.now(),
	}
	m.sessions[sessionID] = s
	m.episodes[a.ID()] = s.episode
	m.Unlock()

	token, err := m.tokenizer.Generate(map[string]interface{}{
		ClaimSessionID: sessionID.String(),
	}, m.tokenTTL)
	if err != nil {
		m.clean(sessionID, a.ID())
		return uuid.Nil, "", fmt.Errorf("issuing session token: %w", err)
	}

	m.logger.Info(fmt.Sprintf("started session %s with episode %s at %s facing %s", sessionID, a.ID(), start, heading))
	return sessionID, token, nil
}

// Step hands p to the agent of the session and returns its action. Climbing out or a planning
// failure ends the episode.
func (m *AgentSessionManager) Step(ctx context.Context, sessionID uuid.UUID, p game.Percept) (game.Action, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return game.None, err
	}

	s.Lock()
	defer s.Unlock()

	if s.episode.Finished() {
		return game.None, fmt.Errorf("episode %s: %w", s.episode.ID, agent.ErrEpisodeOver)
	}

	s.episode.Observe(p)
	action, err := s.agent.Step(p)
	if err != nil {
		if errors.Is(err, agent.ErrEpisodeOver) {
			return game.None, err
		}
		m.logger.Error(fmt.Sprintf("session %s: %v", sessionID, err))
		m.finish(ctx, s, dmn.OutcomeFailed, err)
		return game.None, err
	}

	s.episode.Record(action, s.agent.Goal())
	if action == game.Climb {
		m.finish(ctx, s, dmn.OutcomeClimbed, nil)
	}
	return action, nil
}

// Reset abandons the running episode of the session, if any, and starts a new one.
func (m *AgentSessionManager) Reset(ctx context.Context, sessionID uuid.UUID, start game.Position, heading game.Heading) error {
	s, err := m.session(sessionID)
	if err != nil {
		return err
	}

	s.Lock()
	defer s.Unlock()

	if !s.episode.Finished() {
		m.finish(ctx, s, dmn.OutcomeAbandoned, nil)
	}
	previous := s.episode.ID
	s.agent.Reset(start, heading)
	s.episode = dmn.NewEpisode(s.agent.ID(), sessionID, start, heading)

	m.Lock()
	delete(m.episodes, previous)
	if m.sessions[sessionID] == s {
		m.episodes[s.agent.ID()] = s.episode
	}
	m.Unlock()

	m.logger.Info(fmt.Sprintf("session %s: new episode %s at %s facing %s", sessionID, s.agent.ID(), start, heading))
	return nil
}

// Episode looks the episode up among the running sessions first, then in the repository.
// The returned episode is a copy.
func (m *AgentSessionManager) Episode(ctx context.Context, episodeID uuid.UUID) (*dmn.Episode, error) {
	m.RLock()
	e, ok := m.episodes[episodeID]
	var s *session
	if ok {
		s = m.sessions[e.SessionID]
	}
	m.RUnlock()
	if !ok {
		return m.repo.ByID(ctx, episodeID)
	}

	if s != nil {
		s.Lock()
		defer s.Unlock()
	}
	snapshot := *e
	snapshot.Actions = slices.Clone(e.Actions)
	snapshot.Goals = slices.Clone(e.Goals)
	return &snapshot, nil
}

// Leaderboard returns the n ranked episodes with the fewest steps.
func (m *AgentSessionManager) Leaderboard(ctx context.Context, n int) ([]dmn.LeaderboardEntry, error) {
	if n <= 0 {
		return []dmn.LeaderboardEntry{}, nil
	}

	tops, err := m.board.Tops(ctx, leaderboardKey, int64(n))
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	entries := make([]dmn.LeaderboardEntry, 0, len(tops))
	for _, t := range tops {
		id, err := uuid.Parse(t.Member)
		if err != nil {
			m.logger.Warning(fmt.Sprintf("skipping leaderboard member %q: %v", t.Member, err))
			continue
		}
		entries = append(entries, dmn.LeaderboardEntry{EpisodeID: id, Steps: int(t.Score)})
	}
	return entries, nil
}

// StopAll abandons every running episode and forgets every session.
func (m *AgentSessionManager) StopAll(ctx context.Context) {
	m.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*session)
	m.episodes = make(map[uuid.UUID]*dmn.Episode)
	m.Unlock()

	for _, s := range sessions {
		s.Lock()
		if !s.episode.Finished() {
			m.finish(ctx, s, dmn.OutcomeAbandoned, nil)
		}
		s.Unlock()
	}
	m.logger.Info(fmt.Sprintf("stopped %d sessions", len(sessions)))
}

// finish closes the episode of s and persists it. The caller holds the session lock.
// Persistence failures are logged; they never change what the agent answered. A saved episode
// is dropped from memory and served from the repository from then on.
func (m *AgentSessionManager) finish(ctx context.Context, s *session, o dmn.Outcome, cause error) {
	e := s.episode
	e.End(o, cause)

	if err := m.repo.Save(ctx, e); err != nil {
		m.logger.Error(fmt.Sprintf("saving episode %s: %v", e.ID, err))
	} else {
		m.Lock()
		delete(m.episodes, e.ID)
		m.Unlock()
	}

	if e.Ranked() {
		if err := m.board.Enqueue(ctx, leaderboardKey, float64(e.Steps()), e.ID.String()); err != nil {
			m.logger.Error(fmt.Sprintf("ranking episode %s: %v", e.ID, err))
		} else if m.board.Count(ctx, leaderboardKey) > m.boardSize {
			if err := m.board.Trim(ctx, leaderboardKey, m.boardSize); err != nil {
				m.logger.Warning(fmt.Sprintf("trimming leaderboard: %v", err))
			}
		}
	}

	m.logger.Info(fmt.Sprintf("episode %s %s after %d steps", e.ID, o, e.Steps()))
}

func (m *AgentSessionManager) session(id uuid.UUID) (*session, error) {
	m.RLock()
	defer m.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

// evictExpired forgets sessions older than the token TTL and abandons their running episodes.
func (m *AgentSessionManager) evictExpired(ctx context.Context) {
	now := m.now()

	m.Lock()
	var expired []*session
	for id, s := range m.sessions {
		if now.Sub(s.createdAt) >= m.tokenTTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.Unlock()

	for _, s := range expired {
		s.Lock()
		if !s.episode.Finished() {
			m.finish(ctx, s, dmn.OutcomeAbandoned, nil)
		}
		m.Lock()
		delete(m.episodes, s.episode.ID)
		m.Unlock()
		s.Unlock()
	}
	if len(expired) > 0 {
		m.logger.Debug(fmt.Sprintf("evicted %d expired sessions", len(expired)))
	}
}

func (m *AgentSessionManager) clean(sessionID, episodeID uuid.UUID) {
	m.Lock()
	defer m.Unlock()
	delete(m.episodes, episodeID)
	delete(m.sessions, sessionID)
}
