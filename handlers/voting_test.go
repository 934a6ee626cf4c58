// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/roundvote/adapter"
	"github.com/danielhkuo/roundvote/auth"
	"github.com/danielhkuo/roundvote/models"
	"github.com/danielhkuo/roundvote/testutil"
	"github.com/danielhkuo/roundvote/voting"
)

// openRound deploys and activates a round with two projects, one steering
// voter and two oversight voters.
func openRound(t *testing.T, d *Deployments, version string) uint64 {
	t.Helper()
	id := deployRound(t, d, version, voting.ModeConsensus)
	view, err := d.Registry().Resolve(id)
	if err != nil {
		t.Fatalf("Failed to resolve round: %v", err)
	}
	testutil.Populate(t, view,
		[]voting.Address{testutil.Project(1), testutil.Project(2)},
		[]voting.Address{testutil.Steering(1)},
		[]voting.Address{testutil.Oversight(1), testutil.Oversight(2)})
	return id
}

func activate(t *testing.T, d *Deployments, id uint64) {
	t.Helper()
	view, _ := d.Registry().Resolve(id)
	if err := view.Activate(testutil.Owner); err != nil {
		t.Fatalf("Failed to activate: %v", err)
	}
}

func TestVoteEntity(t *testing.T) {
	d := newTestDeployments(t, nil)
	handler := NewVotingHandler(d, testutil.GetTestConfig())
	id := openRound(t, d, adapter.VersionPooled)
	vote := func(caller voting.Address, entity string, project voting.Address) int {
		req := as(caller, "POST", "/rounds/1/entities/"+entity+"/votes", models.EntityVoteRequest{Project: string(project)})
		return serve(handler.VoteEntity, req, "id", idStr(id), "entity", entity).Code
	}

	if got := vote(testutil.Steering(1), "steering", testutil.Project(1)); got != http.StatusConflict {
		t.Errorf("Expected 409 before activation, got %d", got)
	}

	activate(t, d, id)

	tests := []struct {
		name           string
		caller         voting.Address
		entity         string
		project        voting.Address
		expectedStatus int
	}{
		{"steering by name", testutil.Steering(1), "steering", testutil.Project(1), http.StatusOK},
		{"oversight by id", testutil.Oversight(1), "1", testutil.Project(2), http.StatusOK},
		{"change vote", testutil.Steering(1), "0", testutil.Project(2), http.StatusOK},
		{"wrong pool", testutil.Steering(1), "oversight", testutil.Project(1), http.StatusForbidden},
		{"outsider", testutil.Addr(0x999), "steering", testutil.Project(1), http.StatusForbidden},
		{"unknown project", testutil.Oversight(2), "oversight", testutil.Addr(0x998), http.StatusBadRequest},
		{"invalid entity", testutil.Oversight(2), "2", testutil.Project(1), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vote(tt.caller, tt.entity, tt.project); got != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, got)
			}
		})
	}

	roles := NewRoleHandler(d, testutil.GetTestConfig())
	w := serve(roles.GetEntity, testutil.MakeRequest("GET", "/rounds/1/entities/steering", nil, nil), "id", idStr(id), "entity", "steering")
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.EntityResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Voters) != 1 || !resp.Voters[0].HasVoted || resp.Voters[0].Vote != string(testutil.Project(2)) {
		t.Errorf("Expected steering voter on project 2, got %+v", resp.Voters)
	}
	if !resp.Outcome.HasWinner || resp.Outcome.Winner != string(testutil.Project(2)) {
		t.Errorf("Expected steering majority project 2, got %+v", resp.Outcome)
	}
}

func TestVoteEntity_CallerKeyBoundToAddress(t *testing.T) {
	d := newTestDeployments(t, nil)
	handler := NewVotingHandler(d, testutil.GetTestConfig())
	id := openRound(t, d, adapter.VersionPooled)
	activate(t, d, id)

	// A valid key for one address does not authenticate another.
	req := testutil.MakeRequest("POST", "/rounds/1/entities/steering/votes",
		models.EntityVoteRequest{Project: string(testutil.Project(1))},
		map[string]string{
			auth.HeaderCallerAddress: string(testutil.Steering(1)),
			auth.HeaderCallerKey:     auth.GenerateCallerKey(string(testutil.Oversight(1)), testutil.TestCallerSalt),
		})
	w := serve(handler.VoteEntity, req, "id", idStr(id), "entity", "steering")
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestRoleManagement(t *testing.T) {
	d := newTestDeployments(t, nil)
	handler := NewRoleHandler(d, testutil.GetTestConfig())
	id := deployRound(t, d, adapter.VersionSingleSeat, voting.ModeConsensus)
	add := func(path, entity string, addr voting.Address) int {
		req := as(testutil.Owner, "POST", path, models.AddressRequest{Address: string(addr)})
		if entity == "" {
			return serve(handler.RegisterProject, req, "id", idStr(id)).Code
		}
		return serve(handler.AddVoter, req, "id", idStr(id), "entity", entity).Code
	}

	tests := []struct {
		name           string
		entity         string
		addr           voting.Address
		expectedStatus int
	}{
		{"register project", "", testutil.Project(1), http.StatusCreated},
		{"duplicate project", "", testutil.Project(1), http.StatusBadRequest},
		{"steering seat", "steering", testutil.Steering(1), http.StatusCreated},
		{"single seat is full", "steering", testutil.Steering(2), http.StatusBadRequest},
		{"oversight voter", "oversight", testutil.Oversight(1), http.StatusCreated},
		{"project cannot vote", "oversight", testutil.Project(1), http.StatusConflict},
		{"steering cannot oversee", "oversight", testutil.Steering(1), http.StatusConflict},
		{"voter cannot be a project", "", testutil.Oversight(1), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := add("/rounds/1/x", tt.entity, tt.addr); got != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, got)
			}
		})
	}

	// Clearing the seat frees the address for another role.
	w := serve(handler.RemoveVoter, as(testutil.Owner, "DELETE", "/rounds/1/entities/steering/voters/x", nil),
		"id", idStr(id), "entity", "steering", "address", string(testutil.Steering(1)))
	testutil.AssertStatus(t, w, http.StatusOK)

	if got := add("/rounds/1/x", "oversight", testutil.Steering(1)); got != http.StatusCreated {
		t.Errorf("Expected removed steering voter to join oversight, got %d", got)
	}

	w = serve(handler.ListVoters, testutil.MakeRequest("GET", "/rounds/1/entities/oversight/voters", nil, nil), "id", idStr(id), "entity", "oversight")
	var resp models.VotersResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Voters) != 2 || resp.Entity != "oversight" {
		t.Errorf("Expected two oversight voters, got %+v", resp)
	}

	w = serve(handler.ListProjects, testutil.MakeRequest("GET", "/rounds/1/projects", nil, nil), "id", idStr(id))
	var projects models.ProjectsResponse
	testutil.AssertJSON(t, w, &projects)
	if len(projects.Projects) != 1 || projects.Projects[0] != string(testutil.Project(1)) {
		t.Errorf("Expected single project, got %v", projects.Projects)
	}
}

func TestCommunityBallots(t *testing.T) {
	d := newTestDeployments(t, nil)
	handler := NewVotingHandler(d, testutil.GetTestConfig())
	id := openRound(t, d, adapter.VersionPooled)
	mint := func(caller, to voting.Address, role string) *models.MintBallotResponse {
		req := as(caller, "POST", "/rounds/1/ballots", models.MintBallotRequest{To: string(to), Role: role})
		w := serve(handler.MintBallot, req, "id", idStr(id))
		if w.Code != http.StatusCreated {
			return nil
		}
		var resp models.MintBallotResponse
		testutil.AssertJSON(t, w, &resp)
		return &resp
	}

	first := mint(testutil.Owner, testutil.Community(1), "")
	if first == nil || first.Role != voting.CommunityRole {
		t.Fatalf("Expected community ballot, got %+v", first)
	}
	if mint(testutil.Owner, testutil.Community(1), "") != nil {
		t.Error("Expected second ballot for the same account to be refused")
	}
	if mint(testutil.Owner, testutil.Steering(1), "") != nil {
		t.Error("Expected steering voter to be refused a ballot")
	}
	if mint(testutil.Addr(0x55), testutil.Community(2), "") != nil {
		t.Error("Expected non-owner mint to be refused")
	}
	badge := mint(testutil.Owner, testutil.Community(3), "Sponsor")
	if badge == nil {
		t.Fatal("Expected badge ballot to mint")
	}

	activate(t, d, id)
	vote := func(caller voting.Address, token uint64, project voting.Address) int {
		req := as(caller, "POST", "/rounds/1/community/votes", models.CommunityVoteRequest{Token: token, Project: string(project)})
		return serve(handler.VoteCommunity, req, "id", idStr(id)).Code
	}

	if got := vote(testutil.Community(2), first.Token, testutil.Project(1)); got != http.StatusForbidden {
		t.Errorf("Expected 403 for someone else's ballot, got %d", got)
	}
	if got := vote(testutil.Community(3), badge.Token, testutil.Project(1)); got != http.StatusForbidden {
		t.Errorf("Expected 403 for a non-community ballot, got %d", got)
	}
	if got := vote(testutil.Community(1), first.Token, testutil.Project(2)); got != http.StatusOK {
		t.Errorf("Expected vote to be accepted, got %d", got)
	}

	// The new holder takes over the ballot and may change its vote.
	req := as(testutil.Community(1), "POST", "/rounds/1/ballots/x/transfer", models.TransferBallotRequest{To: string(testutil.Community(4))})
	w := serve(handler.TransferBallot, req, "id", idStr(id), "token", idStr(first.Token))
	testutil.AssertStatus(t, w, http.StatusOK)

	if got := vote(testutil.Community(1), first.Token, testutil.Project(1)); got != http.StatusForbidden {
		t.Errorf("Expected previous holder to lose the ballot, got %d", got)
	}
	if got := vote(testutil.Community(4), first.Token, testutil.Project(1)); got != http.StatusOK {
		t.Errorf("Expected new holder to change the vote, got %d", got)
	}

	w = serve(handler.GetCommunityBallot, testutil.MakeRequest("GET", "/rounds/1/community/x", nil, nil), "id", idStr(id), "token", idStr(first.Token))
	var ballot models.CommunityBallotResponse
	testutil.AssertJSON(t, w, &ballot)
	if !ballot.HasVoted || ballot.Vote != string(testutil.Project(1)) {
		t.Errorf("Expected ballot on project 1, got %+v", ballot)
	}

	w = serve(handler.GetCommunity, testutil.MakeRequest("GET", "/rounds/1/community", nil, nil), "id", idStr(id))
	var community models.CommunityResponse
	testutil.AssertJSON(t, w, &community)
	if community.Votes != 1 || community.Outcome.Winner != string(testutil.Project(1)) {
		t.Errorf("Expected one community vote for project 1, got %+v", community)
	}

	w = serve(handler.TransferBallot, as(testutil.Community(1), "POST", "/rounds/1/ballots/x/transfer", models.TransferBallotRequest{To: string(testutil.Community(5))}),
		"id", idStr(id), "token", idStr(first.Token))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = serve(handler.TransferBallot, as(testutil.Community(4), "POST", "/rounds/1/ballots/x/transfer", models.TransferBallotRequest{To: string(testutil.Community(5))}),
		"id", idStr(id), "token", "abc")
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
