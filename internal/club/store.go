package club

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new ClubStore.
func New(db *sql.DB, rules Rules) ClubStore {
	return NewWithClock(db, rules, time.Now)
}

// NewWithClock creates a ClubStore that dates history entries with now.
func NewWithClock(db *sql.DB, rules Rules, now func() time.Time) ClubStore {
	return &store{
		db:    db,
		rules: rules,
		now:   now,
	}
}

func (s *store) Rules() Rules {
	return s.rules
}

// GetState loads the full snapshot, history included.
func (s *store) GetState(ctx context.Context) (*ClubState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx, s.db)
	if err != nil {
		return nil, err
	}
	history, err := s.loadHistory(ctx, s.db)
	if err != nil {
		return nil, err
	}
	state.History = history
	return state, nil
}

// GetHistory returns every finished round, oldest first.
func (s *store) GetHistory(ctx context.Context) ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadHistory(ctx, s.db)
}

func (s *store) SubmitSuggestions(ctx context.Context, items []Item) error {
	return s.mutate(ctx, func(tx *sql.Tx, state *ClubState) error {
		if err := SubmitSuggestions(state, items, s.rules); err != nil {
			return err
		}
		log.Info("Suggestions submitted", "picker", Picker(state), "count", len(items))
		return nil
	})
}

func (s *store) SubmitVote(ctx context.Context, member string, ranking Ranking) error {
	return s.mutate(ctx, func(tx *sql.Tx, state *ClubState) error {
		if err := CastVote(state, member, ranking, s.rules); err != nil {
			return err
		}
		log.Info("Vote recorded", "member", member, "ballots", len(state.CurrentRound.Votes))
		return nil
	})
}

func (s *store) CloseVoting(ctx context.Context) (Item, error) {
	var winner Item
	err := s.mutate(ctx, func(tx *sql.Tx, state *ClubState) error {
		w, err := CloseVoting(state, s.rules)
		if err != nil {
			return err
		}
		winner = w
		log.Info("Voting closed", "winner", w.Title, "ballots", len(state.CurrentRound.Votes))
		return nil
	})
	return winner, err
}

func (s *store) MarkCompleted(ctx context.Context, member string) error {
	return s.mutate(ctx, func(tx *sql.Tx, state *ClubState) error {
		return MarkCompleted(state, member)
	})
}

func (s *store) MarkDiscussed(ctx context.Context) error {
	return s.mutate(ctx, func(tx *sql.Tx, state *ClubState) error {
		return MarkDiscussed(state)
	})
}

// NextRound archives the discussed round and advances the picker.
func (s *store) NextRound(ctx context.Context) (HistoryEntry, error) {
	var archived HistoryEntry
	err := s.mutate(ctx, func(tx *sql.Tx, state *ClubState) error {
		entry, err := AdvanceRound(state, HistoryEntry{
			ID:            uuid.NewString(),
			DateCompleted: s.now().Format(DateLayout),
		})
		if err != nil {
			return err
		}
		if err := s.appendHistory(ctx, tx, entry); err != nil {
			return err
		}
		archived = entry
		log.Info("New round started", "picker", Picker(state), "archived", entry.ID)
		return nil
	})
	return archived, err
}

// Reset replaces the entire state, history included.
func (s *store) Reset(ctx context.Context, state *ClubState) error {
	if err := ValidateState(state, s.rules.Points); err != nil {
		return err
	}
	next := state.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM round_history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	for _, entry := range next.History {
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if err := s.appendHistory(ctx, tx, entry); err != nil {
			return err
		}
	}
	if err := s.saveState(ctx, tx, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("State has been reset", "club", next.ClubName, "members", len(next.Members), "history", len(next.History))
	return nil
}

// mutate loads the state inside a transaction, applies fn and saves the
// result. Nothing is written when fn fails.
func (s *store) mutate(ctx context.Context, fn func(tx *sql.Tx, state *ClubState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	state, err := s.loadState(ctx, tx)
	if err != nil {
		return err
	}
	if err := fn(tx, state); err != nil {
		return err
	}
	if err := s.saveState(ctx, tx, state); err != nil {
		return err
	}
	return tx.Commit()
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *store) loadState(ctx context.Context, q querier) (*ClubState, error) {
	var (
		state       ClubState
		membersBlob []byte
		roundBlob   []byte
	)
	err := q.QueryRowContext(ctx, `
		SELECT club_name, club_type, members_blob, current_picker_index, round_blob
		FROM club_state
		WHERE id = 1
	`).Scan(&state.ClubName, &state.ClubType, &membersBlob, &state.CurrentPickerIndex, &roundBlob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load club state: %w", err)
	}

	if err := decodeBlob(membersBlob, &state.Members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	round := NewRound()
	if err := decodeBlob(roundBlob, &round); err != nil {
		return nil, fmt.Errorf("failed to decode current round: %w", err)
	}
	if round.Votes == nil {
		round.Votes = make(map[string]Ranking)
	}
	if round.CompletionStatus == nil {
		round.CompletionStatus = make(map[string]bool)
	}
	if round.Suggestions == nil {
		round.Suggestions = []Item{}
	}
	state.CurrentRound = round
	state.History = []HistoryEntry{}
	return &state, nil
}

func (s *store) saveState(ctx context.Context, tx *sql.Tx, state *ClubState) error {
	membersBlob, err := encodeBlob(state.Members)
	if err != nil {
		return fmt.Errorf("failed to encode members: %w", err)
	}
	roundBlob, err := encodeBlob(state.CurrentRound)
	if err != nil {
		return fmt.Errorf("failed to encode current round: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO club_state (id, club_name, club_type, members_blob, current_picker_index, round_blob, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			club_name = excluded.club_name,
			club_type = excluded.club_type,
			members_blob = excluded.members_blob,
			current_picker_index = excluded.current_picker_index,
			round_blob = excluded.round_blob,
			updated_at = excluded.updated_at;
	`, state.ClubName, state.ClubType, membersBlob, state.CurrentPickerIndex, roundBlob, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save club state: %w", err)
	}
	return nil
}

func (s *store) loadHistory(ctx context.Context, q querier) ([]HistoryEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, winning_title, winning_author, picker, date_completed
		FROM round_history
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	history := []HistoryEntry{}
	for rows.Next() {
		var (
			entry         HistoryEntry
			title, author sql.NullString
		)
		if err := rows.Scan(&entry.ID, &title, &author, &entry.Picker, &entry.DateCompleted); err != nil {
			return nil, err
		}
		if title.Valid {
			entry.WinningItem = &Item{Title: title.String, Author: author.String}
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (s *store) appendHistory(ctx context.Context, tx *sql.Tx, entry HistoryEntry) error {
	var title, author sql.NullString
	if entry.WinningItem != nil {
		title = sql.NullString{String: entry.WinningItem.Title, Valid: true}
		author = sql.NullString{String: entry.WinningItem.Author, Valid: true}
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO round_history (id, seq, winning_title, winning_author, picker, date_completed, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM round_history), ?, ?, ?, ?, ?)
	`, entry.ID, title, author, entry.Picker, entry.DateCompleted, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// encodeBlob packs v with msgpack, reusing the json field names.
func encodeBlob(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeBlob(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
