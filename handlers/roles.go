// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/middleware"
	"github.com/danielhkuo/roundvote/models"
)

// RoleHandler manages projects and entity voters of a round.
type RoleHandler struct {
	base
}

func NewRoleHandler(d *Deployments, cfg cliparse.Config) *RoleHandler {
	return &RoleHandler{base{d: d, cfg: cfg}}
}

// ListProjects handles GET /rounds/{id}/projects
func (h *RoleHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ProjectsResponse{
		Projects: toStrings(view.ProjectAddresses()),
	})
}

// RegisterProject handles POST /rounds/{id}/projects
func (h *RoleHandler) RegisterProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}

	var req models.AddressRequest
	if !parseBody(w, r, &req) {
		return
	}
	project, ok := parseAddress(w, req.Address)
	if !ok {
		return
	}

	if err := view.RegisterProject(caller, project); err != nil {
		middleware.Error(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, models.ProjectsResponse{
		Projects: toStrings(view.ProjectAddresses()),
	})
}

// RemoveProject handles DELETE /rounds/{id}/projects/{address}. Only pooled
// rounds can drop a project.
func (h *RoleHandler) RemoveProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	project, ok := parseAddress(w, r.PathValue("address"))
	if !ok {
		return
	}

	if err := view.RemoveProject(caller, project); err != nil {
		middleware.Error(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ProjectsResponse{
		Projects: toStrings(view.ProjectAddresses()),
	})
}

// ListVoters handles GET /rounds/{id}/entities/{entity}/voters
func (h *RoleHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	entity, err := parseEntity(r)
	if err != nil {
		middleware.Error(w, err)
		return
	}
	voters, err := view.EntityVoters(entity)
	if err != nil {
		middleware.Error(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.VotersResponse{
		Entity: entity.String(),
		Voters: toStrings(voters),
	})
}

// AddVoter handles POST /rounds/{id}/entities/{entity}/voters
func (h *RoleHandler) AddVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	entity, err := parseEntity(r)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	var req models.AddressRequest
	if !parseBody(w, r, &req) {
		return
	}
	voter, ok := parseAddress(w, req.Address)
	if !ok {
		return
	}

	if err := view.AddEntityVoter(caller, entity, voter); err != nil {
		middleware.Error(w, err)
		return
	}
	voters, _ := view.EntityVoters(entity)
	middleware.JSONResponse(w, http.StatusCreated, models.VotersResponse{
		Entity: entity.String(),
		Voters: toStrings(voters),
	})
}

// RemoveVoter handles DELETE /rounds/{id}/entities/{entity}/voters/{address}
func (h *RoleHandler) RemoveVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	entity, err := parseEntity(r)
	if err != nil {
		middleware.Error(w, err)
		return
	}
	voter, ok := parseAddress(w, r.PathValue("address"))
	if !ok {
		return
	}

	if err := view.RemoveEntityVoter(caller, entity, voter); err != nil {
		middleware.Error(w, err)
		return
	}
	voters, _ := view.EntityVoters(entity)
	middleware.JSONResponse(w, http.StatusOK, models.VotersResponse{
		Entity: entity.String(),
		Voters: toStrings(voters),
	})
}

// GetEntity handles GET /rounds/{id}/entities/{entity}
func (h *RoleHandler) GetEntity(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	entity, err := parseEntity(r)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	voters, err := view.EntityVoters(entity)
	if err != nil {
		middleware.Error(w, err)
		return
	}
	resp := models.EntityResponse{
		Entity: entity.String(),
		Voters: make([]models.VoterStatus, 0, len(voters)),
	}
	for _, v := range voters {
		voted, _ := view.EntityHasVoted(entity, v)
		choice, _ := view.EntityVoteOf(entity, v)
		resp.Voters = append(resp.Voters, models.VoterStatus{
			Address:  string(v),
			HasVoted: voted,
			Vote:     string(choice),
		})
	}
	out, err := view.EntityVote(entity)
	if err != nil {
		middleware.Error(w, err)
		return
	}
	resp.Outcome = toOutcome(out)

	middleware.JSONResponse(w, http.StatusOK, resp)
}
