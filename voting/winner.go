// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "math/bits"

// WeightScale is 1.0 in the fixed-point unit used by weighted scores.
const WeightScale uint64 = 1_000_000_000_000_000_000

// entityShare is the weight of each of the three entities, truncated.
const entityShare = WeightScale / 3

// MaxScore is the highest score a project can reach: three truncated
// shares, one unit short of WeightScale.
const MaxScore = 3 * entityShare

// Outcome is the result of a winner query.
type Outcome struct {
	Winner    Address `json:"winner,omitempty"`
	HasWinner bool    `json:"has_winner"`
}

// ProjectScore is one project's weighted score.
type ProjectScore struct {
	Project Address `json:"project"`
	Score   uint64  `json:"score"`
}

// ScoreSheet is the transparent view of a weighted result. TotalPossible
// is the nominal 1.0 (WeightScale). Entity shares are truncated, so no
// project scores above MaxScore, which is WeightScale-1.
type ScoreSheet struct {
	Scores        []ProjectScore `json:"scores"`
	TotalPossible uint64         `json:"total_possible"`
	MaxScore      uint64         `json:"max_score"`
	Outcome       Outcome        `json:"outcome"`
}

// consensusWinner counts one vote per entity majority and returns the
// project with strictly the most entity votes.
func consensusWinner(projectCount int, entities ...tallier) (int, bool) {
	counts := make([]uint64, projectCount+1)
	for _, e := range entities {
		if project, ok := e.ResolveMajority(projectCount); ok {
			counts[project]++
		}
	}
	return strictMax(counts)
}

// weightedScores returns per-project scores indexed 1..projectCount.
func weightedScores(projectCount int, entities ...tallier) []uint64 {
	scores := make([]uint64, projectCount+1)
	for _, e := range entities {
		addEntityScore(scores, projectCount, e)
	}
	return scores
}

func addEntityScore(scores []uint64, projectCount int, e tallier) {
	if s, ok := e.(singleSeat); ok {
		if project, voted, single := s.singleChoice(); single {
			if voted {
				scores[project] += entityShare
			}
			return
		}
	}
	total := e.VotesCast()
	if total == 0 {
		return
	}
	for i := 1; i <= projectCount; i++ {
		if v := e.Tally(i); v > 0 {
			scores[i] += mulDiv(v, entityShare, total)
		}
	}
}

// strictMax returns the index of the strictly greatest non-zero value.
// values[0] is unused.
func strictMax(values []uint64) (int, bool) {
	best, bestValue, tied := 0, uint64(0), false
	for i := 1; i < len(values); i++ {
		switch v := values[i]; {
		case v > bestValue:
			best, bestValue, tied = i, v, false
		case v == bestValue && v > 0:
			tied = true
		}
	}
	if bestValue == 0 || tied {
		return 0, false
	}
	return best, true
}

// mulDiv computes a*b/c truncated, for a <= c.
func mulDiv(a, b, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, c)
	return q
}
