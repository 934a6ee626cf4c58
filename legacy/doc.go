// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package legacy provides the single-seat round shape deployed in the first
iterations.

A single-seat round differs from the current pooled controller:

  - the steering entity is one account, exposed as an account/vote/flag
    triple (SteeringAccount, SteeringVote, SteeringHasVoted)
  - projects are read through ProjectCount and ProjectAt, with no bulk list
  - the lock flag is called Locked, and there is no explicit voting-ended flag
  - there is no weighted mode, no participation counts and no per-project
    breakdown

Callers normally reach it through the SingleSeat adapter rather than
directly.
*/
package legacy
