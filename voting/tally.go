// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

// tallier is the read side of a pool that the winner algorithms consume.
type tallier interface {
	Tally(project int) uint64
	VotesCast() uint64
	ResolveMajority(projectCount int) (int, bool)
}

// singleSeat is implemented by pools that may hold exactly one voter, whose
// choice then carries the whole entity share.
type singleSeat interface {
	singleChoice() (project int, voted bool, single bool)
}

// resolveMajority scans indices 1..projectCount and returns the project with
// strictly the most votes. Ties at the top and empty tallies yield false.
func resolveMajority(projectCount int, tally func(int) uint64) (int, bool) {
	best, bestVotes, tied := 0, uint64(0), false
	for i := 1; i <= projectCount; i++ {
		v := tally(i)
		switch {
		case v > bestVotes:
			best, bestVotes, tied = i, v, false
		case v == bestVotes && v > 0:
			tied = true
		}
	}
	if bestVotes == 0 || tied {
		return 0, false
	}
	return best, true
}
