package view

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/client"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
)

// Session holds the latest snapshot fetched from the API together with the
// club config it is interpreted with. Every command ends with a refresh that
// replaces the snapshot.
type Session struct {
	api   client.ClubAPI
	cfg   config.ClubConfig
	rules club.Rules

	state *club.ClubState
	phase club.Phase

	// Drafts keeps the last rejected suggestions so they can be corrected.
	Drafts []club.Item
}

// NewSession creates a session. cfg is resolved once by the caller.
func NewSession(api client.ClubAPI, cfg config.ClubConfig) *Session {
	return &Session{
		api:   api,
		cfg:   cfg,
		rules: cfg.Rules(),
		phase: club.PhaseUnknown,
	}
}

// Refresh fetches the snapshot and resolves its phase. On failure the
// previous snapshot stays in place.
func (s *Session) Refresh(ctx context.Context) error {
	state, err := s.api.FetchState(ctx)
	if err != nil {
		return err
	}
	s.state = state
	s.phase = club.ResolvePhase(state)
	log.Debug("Refreshed club state", "phase", s.phase, "status", club.StatusOf(state))
	return nil
}

func (s *Session) State() *club.ClubState { return s.state }

func (s *Session) Phase() club.Phase { return s.phase }

func (s *Session) Config() config.ClubConfig { return s.cfg }

func (s *Session) Rules() club.Rules { return s.rules }

// LiveScores is the display-only leaderboard of the current snapshot.
func (s *Session) LiveScores() []club.Score {
	if s.state == nil {
		return nil
	}
	return club.LiveScores(s.state.CurrentRound, s.rules.Points)
}

// Controls says which actions the current snapshot allows.
type Controls struct {
	Suggest       bool
	CloseVoting   bool
	MarkDiscussed bool
	NextRound     bool
	// Vote and Complete list the members whose control is enabled.
	Vote     []string
	Complete []string
}

// Controls derives the enabled actions from the snapshot.
func (s *Session) Controls() Controls {
	var c Controls
	if s.state == nil {
		return c
	}
	round := s.state.CurrentRound
	switch s.phase {
	case club.PhaseSuggestion:
		c.Suggest = true
	case club.PhaseVoting:
		c.CloseVoting = true
		c.Vote = club.PendingVoters(s.state)
	case club.PhaseReading:
		c.Complete = club.PendingCompletion(s.state)
		c.MarkDiscussed = !round.IsDiscussed && club.AllCompleted(s.state)
		c.NextRound = round.IsDiscussed
	}
	return c
}

func (c Controls) CanVote(member string) bool { return slices.Contains(c.Vote, member) }

func (c Controls) CanComplete(member string) bool { return slices.Contains(c.Complete, member) }
