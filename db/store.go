// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/roundvote/voting"
)

var ErrNoSnapshot = errors.New("no result snapshot for round")

// Store appends round events to the database. It implements
// voting.Notifier; write failures are logged and never reach the caller.
type Store struct {
	db        *sql.DB
	mu        sync.Mutex
	seq       int64
	lastRound uint64
}

// NewStore resumes the event sequence and the highest round number from
// the existing log.
func NewStore(db *sql.DB) (*Store, error) {
	var seq int64
	if err := db.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM round_event`).Scan(&seq); err != nil {
		return nil, fmt.Errorf("failed to read event sequence: %w", err)
	}
	var last int64
	err := db.QueryRow(`
		SELECT COALESCE(MAX(round_no), 0) FROM (
			SELECT round_no FROM round_binding
			UNION ALL SELECT round_no FROM round_event
			UNION ALL SELECT round_no FROM result_snapshot
		) AS rounds
	`).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to read last round: %w", err)
	}
	return &Store{db: db, seq: seq, lastRound: uint64(last)}, nil
}

// LastRound returns the highest round number the database has seen.
// Round numbers are never reused across restarts.
func (s *Store) LastRound() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRound
}

// EventRecord is one row of the event log.
type EventRecord struct {
	Seq        int64
	Kind       voting.EventKind
	Iteration  uint64
	Round      uint64
	Actor      string
	Subject    string
	Entity     string
	Project    string
	Previous   string
	Token      uint64
	Mode       string
	Version    string
	OccurredAt time.Time
}

// Snapshot is the persisted final result of a locked round.
type Snapshot struct {
	ID         string
	Iteration  uint64
	Round      uint64
	Mode       string
	Outcome    voting.Outcome
	Scores     voting.ScoreSheet
	ComputedAt time.Time
}

type snapshotPayload struct {
	Mode    string            `json:"mode"`
	Outcome voting.Outcome    `json:"outcome"`
	Scores  voting.ScoreSheet `json:"scores"`
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func entityOf(ev voting.Event) string {
	switch ev.Kind {
	case voting.EventVoterAdded, voting.EventVoterRemoved, voting.EventEntityVoteCast:
		return ev.Entity.String()
	}
	return ""
}

func modeOf(ev voting.Event) string {
	switch ev.Kind {
	case voting.EventModeChanged, voting.EventLocked:
		return ev.Mode.String()
	}
	return ""
}

func (s *Store) Notify(ev voting.Event) {
	if err := s.record(ev); err != nil {
		slog.Error("failed to record round event", "kind", string(ev.Kind), "round", ev.Round, "error", err)
	}
}

func (s *Store) record(ev voting.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var token any
	if ev.Token != 0 {
		token = int64(ev.Token)
	}
	_, err = tx.Exec(`
		INSERT INTO round_event (id, seq, kind, iteration, round_no, actor, subject, entity, project, previous, token, mode, version, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, uuid.NewString(), s.seq+1, string(ev.Kind), int64(ev.Iteration), int64(ev.Round),
		nullable(string(ev.Actor)), nullable(string(ev.Subject)), nullable(entityOf(ev)),
		nullable(string(ev.Project)), nullable(string(ev.Previous)), token,
		nullable(modeOf(ev)), nullable(ev.Version), at.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	switch ev.Kind {
	case voting.EventAdapterSet:
		_, err = tx.Exec(`
			INSERT INTO adapter_binding (version, set_by, set_at) VALUES ($1, $2, $3)
			ON CONFLICT (version) DO UPDATE SET set_by = excluded.set_by, set_at = excluded.set_at
		`, ev.Version, string(ev.Actor), at.UnixMilli())
	case voting.EventRoundBound:
		_, err = tx.Exec(`
			INSERT INTO round_binding (round_no, version, bound_at) VALUES ($1, $2, $3)
			ON CONFLICT (round_no) DO UPDATE SET version = excluded.version, bound_at = excluded.bound_at
		`, int64(ev.Round), ev.Version, at.UnixMilli())
	case voting.EventLocked:
		err = insertSnapshot(tx, ev, at)
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", ev.Kind, err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.seq++
	if ev.Round > s.lastRound {
		s.lastRound = ev.Round
	}
	return nil
}

func insertSnapshot(tx *sql.Tx, ev voting.Event, at time.Time) error {
	p := snapshotPayload{Mode: ev.Mode.String(), Outcome: ev.Outcome}
	if ev.Scores != nil {
		p.Scores = *ev.Scores
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO result_snapshot (id, iteration, round_no, mode, winner, has_winner, payload, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.NewString(), int64(ev.Iteration), int64(ev.Round), p.Mode,
		nullable(string(ev.Outcome.Winner)), ev.Outcome.HasWinner, string(payload), at.UnixMilli())
	return err
}

// Events returns the log of one round in commit order.
func (s *Store) Events(round uint64) ([]EventRecord, error) {
	rows, err := s.db.Query(`
		SELECT seq, kind, iteration, round_no, actor, subject, entity, project, previous, token, mode, version, occurred_at
		FROM round_event
		WHERE round_no = $1
		ORDER BY seq
	`, int64(round))
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	records := []EventRecord{}
	for rows.Next() {
		var (
			rec                                                      EventRecord
			kind                                                     string
			iteration, roundNo, occurred                             int64
			actor, subject, entity, project, previous, mode, version sql.NullString
			token                                                    sql.NullInt64
		)
		if err := rows.Scan(&rec.Seq, &kind, &iteration, &roundNo, &actor, &subject, &entity,
			&project, &previous, &token, &mode, &version, &occurred); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Kind = voting.EventKind(kind)
		rec.Iteration = uint64(iteration)
		rec.Round = uint64(roundNo)
		rec.Actor = actor.String
		rec.Subject = subject.String
		rec.Entity = entity.String
		rec.Project = project.String
		rec.Previous = previous.String
		rec.Token = uint64(token.Int64)
		rec.Mode = mode.String
		rec.Version = version.String
		rec.OccurredAt = time.UnixMilli(occurred).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Snapshot returns the frozen result of a locked round.
func (s *Store) Snapshot(round uint64) (Snapshot, error) {
	var (
		snap               Snapshot
		iteration, roundNo int64
		computed           int64
		payload            string
	)
	err := s.db.QueryRow(`
		SELECT id, iteration, round_no, mode, payload, computed_at
		FROM result_snapshot
		WHERE round_no = $1
	`, int64(round)).Scan(&snap.ID, &iteration, &roundNo, &snap.Mode, &payload, &computed)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}

	var p snapshotPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Iteration = uint64(iteration)
	snap.Round = uint64(roundNo)
	snap.Outcome = p.Outcome
	snap.Scores = p.Scores
	snap.ComputedAt = time.UnixMilli(computed).UTC()
	return snap, nil
}

// RoundBindings returns the persisted round → version table.
func (s *Store) RoundBindings() (map[uint64]string, error) {
	rows, err := s.db.Query(`SELECT round_no, version FROM round_binding`)
	if err != nil {
		return nil, fmt.Errorf("query bindings: %w", err)
	}
	defer rows.Close()

	out := make(map[uint64]string)
	for rows.Next() {
		var (
			round   int64
			version string
		)
		if err := rows.Scan(&round, &version); err != nil {
			return nil, err
		}
		out[uint64(round)] = version
	}
	return out, rows.Err()
}
