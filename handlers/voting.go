// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/middleware"
	"github.com/danielhkuo/roundvote/models"
	"github.com/danielhkuo/roundvote/voting"
)

// VotingHandler covers entity votes, community ballots and community votes.
type VotingHandler struct {
	base
}

func NewVotingHandler(d *Deployments, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{base{d: d, cfg: cfg}}
}

// VoteEntity handles POST /rounds/{id}/entities/{entity}/votes
func (h *VotingHandler) VoteEntity(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, view, ok := h.round(w, r)
	if !ok {
		return
	}
	entity, err := parseEntity(r)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	var req models.EntityVoteRequest
	if !parseBody(w, r, &req) {
		return
	}
	project, ok := parseAddress(w, req.Project)
	if !ok {
		return
	}

	if err := view.VoteEntity(caller, entity, project); err != nil {
		middleware.Error(w, err)
		return
	}

	slog.Info("entity vote cast", "round", id, "entity", entity.String(), "voter", caller)

	middleware.JSONResponse(w, http.StatusOK, models.VoterStatus{
		Address:  string(caller),
		HasVoted: true,
		Vote:     string(project),
	})
}

// MintBallot handles POST /rounds/{id}/ballots
func (h *VotingHandler) MintBallot(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, _, ok := h.round(w, r)
	if !ok {
		return
	}
	book, err := h.d.Book(id)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	var req models.MintBallotRequest
	if !parseBody(w, r, &req) {
		return
	}
	to, ok := parseAddress(w, req.To)
	if !ok {
		return
	}
	role := req.Role
	if role == "" {
		role = voting.CommunityRole
	}

	token, err := book.Mint(caller, to, role)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.MintBallotResponse{
		Token: uint64(token),
		Owner: string(to),
		Role:  role,
	})
}

// TransferBallot handles POST /rounds/{id}/ballots/{token}/transfer
func (h *VotingHandler) TransferBallot(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, _, ok := h.round(w, r)
	if !ok {
		return
	}
	token, err := parseUint(r.PathValue("token"), "token")
	if err != nil {
		middleware.Error(w, err)
		return
	}
	book, err := h.d.Book(id)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	var req models.TransferBallotRequest
	if !parseBody(w, r, &req) {
		return
	}
	to, ok := parseAddress(w, req.To)
	if !ok {
		return
	}

	if err := book.Transfer(caller, to, voting.TokenID(token)); err != nil {
		middleware.Error(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MintBallotResponse{
		Token: token,
		Owner: string(to),
		Role:  book.RoleOf(voting.TokenID(token)),
	})
}

// VoteCommunity handles POST /rounds/{id}/community/votes
func (h *VotingHandler) VoteCommunity(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, view, ok := h.round(w, r)
	if !ok {
		return
	}

	var req models.CommunityVoteRequest
	if !parseBody(w, r, &req) {
		return
	}
	project, ok := parseAddress(w, req.Project)
	if !ok {
		return
	}

	token := voting.TokenID(req.Token)
	if err := view.VoteCommunity(caller, token, project); err != nil {
		middleware.Error(w, err)
		return
	}

	slog.Info("community vote cast", "round", id, "token", req.Token, "voter", caller)

	middleware.JSONResponse(w, http.StatusOK, models.CommunityBallotResponse{
		Token:    req.Token,
		HasVoted: true,
		Vote:     string(project),
	})
}

// GetCommunity handles GET /rounds/{id}/community
func (h *VotingHandler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CommunityResponse{
		Outcome: toOutcome(view.CommunityVote()),
		Votes:   view.VoteParticipationCounts().Community,
	})
}

// GetCommunityBallot handles GET /rounds/{id}/community/{token}
func (h *VotingHandler) GetCommunityBallot(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	token, err := parseUint(r.PathValue("token"), "token")
	if err != nil {
		middleware.Error(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CommunityBallotResponse{
		Token:    token,
		HasVoted: view.CommunityHasVoted(voting.TokenID(token)),
		Vote:     string(view.CommunityVoteOf(voting.TokenID(token))),
	})
}
