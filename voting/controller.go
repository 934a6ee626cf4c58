// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"time"

	"github.com/algorand/go-deadlock"
)

// VotingPeriod is the length of the voting window opened by Activate.
const VotingPeriod = 48 * time.Hour

// BallotSource answers ownership and role questions about community ballots.
type BallotSource interface {
	OwnerOf(token TokenID) (Address, bool)
	RoleOf(token TokenID) string
	HoldsBallot(addr Address) bool
}

// Config carries the deployment parameters of a round.
type Config struct {
	Iteration uint64
	Round     uint64
	Owner     Address
	Mode      Mode
	Ballots   BallotSource
	// SteeringSeats caps the steering pool; zero means unlimited.
	SteeringSeats int
	Notifier      Notifier
	Clock         func() time.Time
}

// Participation counts votes cast per entity.
type Participation struct {
	Steering  uint64 `json:"steering"`
	Oversight uint64 `json:"oversight"`
	Community uint64 `json:"community"`
}

// Breakdown counts one project's votes per entity.
type Breakdown struct {
	Steering  uint64 `json:"steering"`
	Oversight uint64 `json:"oversight"`
	Community uint64 `json:"community"`
}

// Controller is one round. All mutations are serialized and either apply
// completely or return an error without changing state.
type Controller struct {
	mu deadlock.RWMutex

	iteration uint64
	round     uint64
	owner     Address
	mode      Mode
	seats     int

	projects  *ProjectRegistry
	roles     map[Address]Role
	steering  *EntityPool
	oversight *EntityPool
	community *CommunityPool
	ballots   BallotSource

	activated    bool
	startTime    time.Time
	endTime      time.Time
	votingClosed bool
	locked       bool
	final        Outcome

	notifier Notifier
	now      func() time.Time
}

func NewController(cfg Config) *Controller {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Controller{
		iteration: cfg.Iteration,
		round:     cfg.Round,
		owner:     cfg.Owner,
		mode:      cfg.Mode,
		seats:     cfg.SteeringSeats,
		projects:  NewProjectRegistry(),
		roles:     make(map[Address]Role),
		steering:  NewEntityPool(EntitySteering),
		oversight: NewEntityPool(EntityOversight),
		community: NewCommunityPool(),
		ballots:   cfg.Ballots,
		notifier:  cfg.Notifier,
		now:       now,
	}
}

// SetBallots attaches the ballot source when it is created after the
// controller.
func (c *Controller) SetBallots(b BallotSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ballots = b
}

func (c *Controller) emit(ev Event) {
	if c.notifier == nil {
		return
	}
	ev.Iteration = c.iteration
	ev.Round = c.round
	ev.At = c.now()
	c.notifier.Notify(ev)
}

func (c *Controller) pool(id EntityID) (*EntityPool, error) {
	switch id {
	case EntitySteering:
		return c.steering, nil
	case EntityOversight:
		return c.oversight, nil
	default:
		return nil, ErrInvalidEntity
	}
}

func (c *Controller) requireOwner(caller Address) error {
	if caller != c.owner {
		return ErrNotOwner
	}
	return nil
}

// hasVotingEnded must be called with mu held.
func (c *Controller) hasVotingEnded() bool {
	return c.activated && !c.now().Before(c.endTime)
}

func (c *Controller) votingOpen() bool {
	return c.activated && !c.locked && c.now().Before(c.endTime)
}

// Lifecycle reads.

func (c *Controller) Iteration() uint64 { return c.iteration }

func (c *Controller) RoundNumber() uint64 { return c.round }

func (c *Controller) StartTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startTime
}

func (c *Controller) EndTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endTime
}

// IsActive reports whether votes are currently accepted.
func (c *Controller) IsActive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.votingOpen()
}

// HasVotingEnded reports whether the voting window has passed.
func (c *Controller) HasVotingEnded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasVotingEnded()
}

// VotingEnded reports whether voting was explicitly closed, either early or
// by locking the round.
func (c *Controller) VotingEnded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.votingClosed
}

func (c *Controller) IsLocked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locked
}

func (c *Controller) ProjectsLocked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projects.Locked()
}

func (c *Controller) VotingMode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

func (c *Controller) Owner() Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owner
}

func (c *Controller) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.locked:
		return PhaseLocked
	case c.hasVotingEnded():
		return PhaseVotingEnded
	case c.activated:
		return PhaseVotingOpen
	case c.projects.Len() > 0 || c.steering.Len() > 0 || c.oversight.Len() > 0:
		return PhaseConfigured
	default:
		return PhaseUnconfigured
	}
}

// Project reads.

func (c *Controller) ProjectAddresses() []Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projects.Addresses()
}

func (c *Controller) ProjectCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projects.Len()
}

// ProjectAt returns the project at a 1-based index.
func (c *Controller) ProjectAt(index int) (Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projects.At(index)
}

func (c *Controller) IsRegisteredProject(addr Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projects.Contains(addr)
}

// Entity reads.

func (c *Controller) EntityVoters(id EntityID) ([]Address, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := c.pool(id)
	if err != nil {
		return nil, err
	}
	return p.Members(), nil
}

// EntityVoteOf returns the project voter chose, or the empty Address.
func (c *Controller) EntityVoteOf(id EntityID, voter Address) (Address, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := c.pool(id)
	if err != nil {
		return "", err
	}
	index, ok := p.VoteOf(voter)
	if !ok {
		return "", nil
	}
	addr, _ := c.projects.At(index)
	return addr, nil
}

func (c *Controller) EntityHasVoted(id EntityID, voter Address) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := c.pool(id)
	if err != nil {
		return false, err
	}
	return p.HasVoted(voter), nil
}

func (c *Controller) IsEntityVoter(id EntityID, addr Address) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := c.pool(id)
	if err != nil {
		return false, err
	}
	return p.IsMember(addr), nil
}

// EntityVote returns the entity's internal majority.
func (c *Controller) EntityVote(id EntityID) (Outcome, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := c.pool(id)
	if err != nil {
		return Outcome{}, err
	}
	return c.outcome(p.ResolveMajority(c.projects.Len())), nil
}

// Community reads.

func (c *Controller) CommunityVoteOf(token TokenID) Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	index, ok := c.community.VoteOf(token)
	if !ok {
		return ""
	}
	addr, _ := c.projects.At(index)
	return addr
}

func (c *Controller) CommunityHasVoted(token TokenID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.community.HasVoted(token)
}

func (c *Controller) CommunityVote() Outcome {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.outcome(c.community.ResolveMajority(c.projects.Len()))
}

// Aggregates.

func (c *Controller) VoteParticipationCounts() Participation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Participation{
		Steering:  c.steering.VotesCast(),
		Oversight: c.oversight.VotesCast(),
		Community: c.community.VotesCast(),
	}
}

// ProjectVoteBreakdown returns zero counts for unknown projects.
func (c *Controller) ProjectVoteBreakdown(project Address) Breakdown {
	c.mu.RLock()
	defer c.mu.RUnlock()
	index, ok := c.projects.IndexOf(project)
	if !ok {
		return Breakdown{}
	}
	return Breakdown{
		Steering:  c.steering.Tally(index),
		Oversight: c.oversight.Tally(index),
		Community: c.community.Tally(index),
	}
}

// Results. All of these recompute from the current tallies.

// Winner dispatches on the round's voting mode.
func (c *Controller) Winner() Outcome {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.winner()
}

func (c *Controller) winner() Outcome {
	if c.mode == ModeWeighted {
		return c.weightedSheet().Outcome
	}
	return c.consensus()
}

func (c *Controller) WinnerConsensus() Outcome {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.consensus()
}

func (c *Controller) WinnerWeighted() Outcome {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.weightedSheet().Outcome
}

// WinnerWithScores returns every project's weighted score.
func (c *Controller) WinnerWithScores() ScoreSheet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.weightedSheet()
}

// FinalWinner is the outcome frozen by LockForHistory.
func (c *Controller) FinalWinner() (Outcome, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.final, c.locked
}

func (c *Controller) consensus() Outcome {
	return c.outcome(consensusWinner(c.projects.Len(), c.steering, c.oversight, c.community))
}

func (c *Controller) weightedSheet() ScoreSheet {
	n := c.projects.Len()
	scores := weightedScores(n, c.steering, c.oversight, c.community)
	sheet := ScoreSheet{
		Scores:        make([]ProjectScore, 0, n),
		TotalPossible: WeightScale,
		MaxScore:      MaxScore,
		Outcome:       c.outcome(strictMax(scores)),
	}
	for i, addr := range c.projects.Addresses() {
		sheet.Scores = append(sheet.Scores, ProjectScore{Project: addr, Score: scores[i+1]})
	}
	return sheet
}

func (c *Controller) outcome(index int, ok bool) Outcome {
	if !ok {
		return Outcome{}
	}
	addr, found := c.projects.At(index)
	if !found {
		return Outcome{}
	}
	return Outcome{Winner: addr, HasWinner: true}
}
