// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package adapter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/roundvote/voting"
)

// ErrUnsupported is returned by write operations a round's shape does not
// provide.
var ErrUnsupported = fmt.Errorf("%w: operation not supported by this round version", voting.ErrConfiguration)

// Version tags of the deployed round shapes.
const (
	VersionSingleSeat = "v1"
	VersionPooled     = "v2"
)

// Capabilities is a set of operations a shape provides natively.
type Capabilities uint32

const (
	CapProjectList Capabilities = 1 << iota
	CapEntityPools
	CapWeighted
	CapVotingMode
	CapVotingEndedFlag
	CapProjectsLockedFlag
	CapParticipation
	CapBreakdown
	CapRemoveProject
	CapShortenVoting
	CapSetVotingMode
	CapTransferOwnership
)

var capabilityNames = []struct {
	cap  Capabilities
	name string
}{
	{CapProjectList, "project_list"},
	{CapEntityPools, "entity_pools"},
	{CapWeighted, "weighted"},
	{CapVotingMode, "voting_mode"},
	{CapVotingEndedFlag, "voting_ended_flag"},
	{CapProjectsLockedFlag, "projects_locked_flag"},
	{CapParticipation, "participation"},
	{CapBreakdown, "breakdown"},
	{CapRemoveProject, "remove_project"},
	{CapShortenVoting, "shorten_voting"},
	{CapSetVotingMode, "set_voting_mode"},
	{CapTransferOwnership, "transfer_ownership"},
}

// Table declares, per version tag, what its controllers support natively.
var Table = map[string]Capabilities{
	VersionSingleSeat: 0,
	VersionPooled: CapProjectList | CapEntityPools | CapWeighted | CapVotingMode |
		CapVotingEndedFlag | CapProjectsLockedFlag | CapParticipation | CapBreakdown |
		CapRemoveProject | CapShortenVoting | CapSetVotingMode | CapTransferOwnership,
}

func (c Capabilities) Has(want Capabilities) bool { return c&want == want }

// Names lists the capabilities in c.
func (c Capabilities) Names() []string {
	names := []string{}
	for _, n := range capabilityNames {
		if c.Has(n.cap) {
			names = append(names, n.name)
		}
	}
	return names
}

func (c Capabilities) String() string {
	if c == 0 {
		return "none"
	}
	return strings.Join(c.Names(), ",")
}

// absent records a fallback taken for a missing capability. It never fails.
func absent(version string, cap Capabilities, op string) {
	slog.Debug("capability absent, using fallback", "version", version, "capability", cap.String(), "op", op)
}

// unsupported is absent for write operations, which cannot fall back.
func unsupported(version string, cap Capabilities, op string) error {
	slog.Debug("capability absent, rejecting", "version", version, "capability", cap.String(), "op", op)
	return fmt.Errorf("%w: %s on %s", ErrUnsupported, op, version)
}
