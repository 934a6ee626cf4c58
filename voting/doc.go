// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the round voting engine: project registration,
role isolation, the three voting entities, and winner determination.

# Rounds

A Controller holds the complete state of one round:

	ctrl := voting.NewController(voting.Config{
		Iteration: 7,
		Round:     1,
		Owner:     admin,
		Mode:      voting.ModeConsensus,
		Ballots:   book,
	})

Rounds progress through five phases:

	Unconfigured → Configured → VotingOpen → VotingEnded → Locked

Activate opens a fixed 48 hour window (VotingPeriod) and locks the project
list. CloseVoting and ShortenVoting can only move the end of the window
earlier. LockForHistory freezes the outcome; nothing mutates afterwards.

# Roles

An address holds at most one role per round:

  - RoleProject: a registered candidate
  - RoleSteering: member of the steering entity pool
  - RoleOversight: member of the oversight entity pool
  - RoleCommunity: any account that has received a community ballot or
    voted with one, including after the ballot is transferred away

Every admission point (RegisterProject, AddEntityVoter, ballot minting via
AdmitCommunity) goes through the same roleOf lookup.

# Entities

EntityPool is used for both steering (EntitySteering, id 0) and oversight
(EntityOversight, id 1). CommunityPool is keyed by ballot token and enforces
the token/account uniqueness rule on first vote. Tallies are maintained
incrementally on every vote and removal.

# Winners

Two algorithms, selected by Mode:

  - Consensus: each entity resolves its internal majority; the project with
    strictly the most entity votes wins.
  - Weighted: each entity is worth WeightScale/3; multi-voter entities split
    their share proportionally. Strictly highest total score wins.

Ties and empty results yield no winner in both modes.

# Errors

All failures wrap one of the kind sentinels (ErrConfiguration,
ErrLifecycle, ErrRoleConflict, ErrDuplicateVote, ErrAuthorization,
ErrResolution, ErrInvalidArgument) and can be classified with errors.Is.

# Events

Every state change is reported to the configured Notifier in commit order.
LogNotifier writes events through log/slog.
*/
package voting
