package models

import "time"

// Request types

type CreateRoundRequest struct {
	Version   string `json:"version"`
	Iteration uint64 `json:"iteration"`
	Mode      string `json:"mode"`
	Owner     string `json:"owner,omitempty"` // defaults to the caller
}

type SetRoundVersionRequest struct {
	Version string `json:"version"`
}

// Used to register projects and add entity voters
type AddressRequest struct {
	Address string `json:"address"`
}

type EntityVoteRequest struct {
	Project string `json:"project"`
}

type CommunityVoteRequest struct {
	Token   uint64 `json:"token"`
	Project string `json:"project"`
}

type MintBallotRequest struct {
	To   string `json:"to"`
	Role string `json:"role,omitempty"` // defaults to "Community"
}

type TransferBallotRequest struct {
	To string `json:"to"`
}

type SetModeRequest struct {
	Mode string `json:"mode"`
}

// End, when set, shortens the voting window instead of closing it now
type CloseVotingRequest struct {
	End *time.Time `json:"end,omitempty"`
}

// Shape names a built-in adapter ("v1" single-seat, "v2" pooled)
type SetAdapterRequest struct {
	Version string `json:"version"`
	Shape   string `json:"shape"`
	Replace bool   `json:"replace,omitempty"`
}

// Response types

type CreateRoundResponse struct {
	Round     uint64 `json:"round"`
	Iteration uint64 `json:"iteration"`
	Version   string `json:"version"`
	Owner     string `json:"owner"`
}

type RoundsResponse struct {
	Rounds []uint64 `json:"rounds"`
}

type RoundResponse struct {
	Round          uint64     `json:"round"`
	Iteration      uint64     `json:"iteration"`
	Version        string     `json:"version"`
	Phase          string     `json:"phase"`
	Mode           string     `json:"mode"`
	Owner          string     `json:"owner"`
	IsActive       bool       `json:"is_active"`
	HasVotingEnded bool       `json:"has_voting_ended"`
	VotingEnded    bool       `json:"voting_ended"`
	IsLocked       bool       `json:"is_locked"`
	ProjectsLocked bool       `json:"projects_locked"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Ends           string     `json:"ends,omitempty"` // human readable, e.g. "2 days from now"
}

type ConfigResponse struct {
	Round        uint64   `json:"round"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type ProjectsResponse struct {
	Projects []string `json:"projects"`
}

type VotersResponse struct {
	Entity string   `json:"entity"`
	Voters []string `json:"voters"`
}

type VoterStatus struct {
	Address  string `json:"address"`
	HasVoted bool   `json:"has_voted"`
	Vote     string `json:"vote,omitempty"`
}

type EntityResponse struct {
	Entity  string        `json:"entity"`
	Voters  []VoterStatus `json:"voters"`
	Outcome Outcome       `json:"outcome"`
}

type MintBallotResponse struct {
	Token uint64 `json:"token"`
	Owner string `json:"owner"`
	Role  string `json:"role"`
}

type CommunityResponse struct {
	Outcome Outcome `json:"outcome"`
	Votes   uint64  `json:"votes"`
}

type CommunityBallotResponse struct {
	Token    uint64 `json:"token"`
	HasVoted bool   `json:"has_voted"`
	Vote     string `json:"vote,omitempty"`
}

type ResultsResponse struct {
	Mode      string   `json:"mode"`
	Winner    Outcome  `json:"winner"`
	Consensus Outcome  `json:"consensus"`
	Weighted  Outcome  `json:"weighted"`
	Final     *Outcome `json:"final,omitempty"` // set once locked
}

type ScoresResponse struct {
	Scores        []ProjectScore `json:"scores"`
	TotalPossible uint64         `json:"total_possible"`
	MaxScore      uint64         `json:"max_score"`
	Outcome       Outcome        `json:"outcome"`
}

type ParticipationResponse struct {
	Steering  uint64 `json:"steering"`
	Oversight uint64 `json:"oversight"`
	Community uint64 `json:"community"`
}

type BreakdownResponse struct {
	Project   string `json:"project"`
	Steering  uint64 `json:"steering"`
	Oversight uint64 `json:"oversight"`
	Community uint64 `json:"community"`
}

type AdaptersResponse struct {
	Adapters []AdapterInfo `json:"adapters"`
}

type SnapshotResponse struct {
	Round      uint64         `json:"round"`
	Iteration  uint64         `json:"iteration"`
	Mode       string         `json:"mode"`
	Outcome    Outcome        `json:"outcome"`
	Scores     ScoresResponse `json:"scores"`
	ComputedAt time.Time      `json:"computed_at"`
}

type EventsResponse struct {
	Round  uint64  `json:"round"`
	Events []Event `json:"events"`
}

// Domain types

type Outcome struct {
	Winner    string `json:"winner,omitempty"`
	HasWinner bool   `json:"has_winner"`
}

// Score is fixed point: TotalPossible is 1.0. Share is Score/TotalPossible
// for display only.
type ProjectScore struct {
	Project string  `json:"project"`
	Score   uint64  `json:"score"`
	Share   float64 `json:"share"`
}

type AdapterInfo struct {
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type Event struct {
	Seq        int64     `json:"seq"`
	Kind       string    `json:"kind"`
	Actor      string    `json:"actor,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Entity     string    `json:"entity,omitempty"`
	Project    string    `json:"project,omitempty"`
	Previous   string    `json:"previous,omitempty"`
	Token      uint64    `json:"token,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	Version    string    `json:"version,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
