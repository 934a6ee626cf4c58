// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"log/slog"
	"time"
)

// EventKind names a state change.
type EventKind string

const (
	EventProjectRegistered    EventKind = "project_registered"
	EventProjectRemoved       EventKind = "project_removed"
	EventVoterAdded           EventKind = "entity_voter_added"
	EventVoterRemoved         EventKind = "entity_voter_removed"
	EventModeChanged          EventKind = "voting_mode_changed"
	EventActivated            EventKind = "activated"
	EventVotingClosed         EventKind = "voting_closed"
	EventEntityVoteCast       EventKind = "entity_vote_cast"
	EventCommunityVoteCast    EventKind = "community_vote_cast"
	EventLocked               EventKind = "locked_for_history"
	EventOwnershipTransferred EventKind = "ownership_transferred"
	EventBallotMinted         EventKind = "ballot_minted"
	EventBallotTransferred    EventKind = "ballot_transferred"
	EventAdapterSet           EventKind = "adapter_set"
	EventRoundBound           EventKind = "round_bound"
)

// Event describes one committed state change. Fields that do not apply to
// a kind are left zero.
type Event struct {
	Kind      EventKind
	Iteration uint64
	Round     uint64
	Actor     Address
	Subject   Address
	Entity    EntityID
	Project   Address
	Previous  Address
	Token     TokenID
	Mode      Mode
	Version   string
	Outcome   Outcome
	Scores    *ScoreSheet
	At        time.Time
}

// Notifier receives events in commit order. Implementations must not call
// back into the emitting controller.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(ev Event) { f(ev) }

// Notifiers fans an event out to several notifiers.
type Notifiers []Notifier

func (ns Notifiers) Notify(ev Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ev)
		}
	}
}

// LogNotifier writes events through slog.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(ev Event) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"kind", string(ev.Kind), "iteration", ev.Iteration, "round", ev.Round}
	if !ev.Actor.IsZero() {
		attrs = append(attrs, "actor", string(ev.Actor))
	}
	if !ev.Subject.IsZero() {
		attrs = append(attrs, "subject", string(ev.Subject))
	}
	if !ev.Project.IsZero() {
		attrs = append(attrs, "project", string(ev.Project))
	}
	switch ev.Kind {
	case EventVoterAdded, EventVoterRemoved, EventEntityVoteCast:
		attrs = append(attrs, "entity", ev.Entity.String())
	case EventCommunityVoteCast, EventBallotMinted, EventBallotTransferred:
		attrs = append(attrs, "token", uint64(ev.Token))
	case EventLocked:
		attrs = append(attrs, "has_winner", ev.Outcome.HasWinner, "winner", ev.Outcome.Winner.String())
	case EventAdapterSet, EventRoundBound:
		attrs = append(attrs, "version", ev.Version)
	case EventModeChanged:
		attrs = append(attrs, "mode", ev.Mode.String())
	}
	logger.Info("round event", attrs...)
}
