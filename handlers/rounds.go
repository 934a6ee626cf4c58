// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/roundvote/adapter"
	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/middleware"
	"github.com/danielhkuo/roundvote/models"
	"github.com/danielhkuo/roundvote/voting"
)

type RoundHandler struct {
	base
}

func NewRoundHandler(d *Deployments, cfg cliparse.Config) *RoundHandler {
	return &RoundHandler{base{d: d, cfg: cfg}}
}

// CreateRound handles POST /rounds
func (h *RoundHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.CreateRoundRequest
	if !parseBody(w, r, &req) {
		return
	}

	version := req.Version
	if version == "" {
		version = adapter.VersionPooled
	}
	mode, err := voting.ParseMode(req.Mode)
	if err != nil {
		middleware.Error(w, err)
		return
	}
	owner := caller
	if req.Owner != "" {
		if owner, ok = parseAddress(w, req.Owner); !ok {
			return
		}
	}

	id, err := h.d.Deploy(caller, version, req.Iteration, mode, owner)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	slog.Info("round deployed", "round", id, "version", version, "iteration", req.Iteration, "owner", owner)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateRoundResponse{
		Round:     id,
		Iteration: req.Iteration,
		Version:   version,
		Owner:     string(owner),
	})
}

// ListRounds handles GET /rounds
func (h *RoundHandler) ListRounds(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.RoundsResponse{Rounds: h.d.reg.Rounds()})
}

// GetRound handles GET /rounds/{id}
func (h *RoundHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	id, view, ok := h.round(w, r)
	if !ok {
		return
	}
	binding, err := h.d.reg.GetConfig(id)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	resp := models.RoundResponse{
		Round:          id,
		Iteration:      view.Iteration(),
		Version:        binding.Version,
		Phase:          view.Phase().String(),
		Mode:           view.VotingMode().String(),
		Owner:          string(view.Owner()),
		IsActive:       view.IsActive(),
		HasVotingEnded: view.HasVotingEnded(),
		VotingEnded:    view.VotingEnded(),
		IsLocked:       view.IsLocked(),
		ProjectsLocked: view.ProjectsLocked(),
	}
	if start := view.StartTime(); !start.IsZero() {
		end := view.EndTime()
		resp.StartTime = &start
		resp.EndTime = &end
		resp.Ends = humanize.Time(end)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetConfig handles GET /rounds/{id}/config
func (h *RoundHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	id, err := parseUint(r.PathValue("id"), "round id")
	if err != nil {
		middleware.Error(w, err)
		return
	}
	binding, err := h.d.reg.GetConfig(id)
	if err != nil {
		middleware.Error(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ConfigResponse{
		Round:        id,
		Version:      binding.Version,
		Capabilities: binding.Adapter.Capabilities().Names(),
	})
}

// SetVersion handles PUT /rounds/{id}/version
func (h *RoundHandler) SetVersion(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, err := parseUint(r.PathValue("id"), "round id")
	if err != nil {
		middleware.Error(w, err)
		return
	}

	var req models.SetRoundVersionRequest
	if !parseBody(w, r, &req) {
		return
	}
	if err := h.d.reg.SetRoundVersion(caller, id, req.Version); err != nil {
		middleware.Error(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "bound"})
}

// Activate handles POST /rounds/{id}/activate
func (h *RoundHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "active", adapter.Round.Activate)
}

// Lock handles POST /rounds/{id}/lock
func (h *RoundHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "locked", adapter.Round.LockForHistory)
}

func (h *RoundHandler) lifecycle(w http.ResponseWriter, r *http.Request, status string, op func(adapter.Round, voting.Address) error) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	if err := op(view, caller); err != nil {
		middleware.Error(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": status})
}

// CloseVoting handles POST /rounds/{id}/close. With an end time in the body
// the window is shortened instead, which only pooled rounds support.
func (h *RoundHandler) CloseVoting(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}

	var req models.CloseVotingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.End == nil {
		if err := view.CloseVoting(caller); err != nil {
			middleware.Error(w, err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "closed"})
		return
	}

	if err := view.ShortenVoting(caller, *req.End); err != nil {
		middleware.Error(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "shortened"})
}

// SetMode handles PUT /rounds/{id}/mode
func (h *RoundHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}

	var req models.SetModeRequest
	if !parseBody(w, r, &req) {
		return
	}
	mode, err := voting.ParseMode(req.Mode)
	if err != nil {
		middleware.Error(w, err)
		return
	}

	if err := view.SetVotingMode(caller, mode); err != nil {
		middleware.Error(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"mode": mode.String()})
}

// TransferOwnership handles PUT /rounds/{id}/owner
func (h *RoundHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, view, ok := h.round(w, r)
	if !ok {
		return
	}

	var req models.AddressRequest
	if !parseBody(w, r, &req) {
		return
	}
	owner, ok := parseAddress(w, req.Address)
	if !ok {
		return
	}

	if err := view.TransferOwnership(caller, owner); err != nil {
		middleware.Error(w, err)
		return
	}
	if book, err := h.d.Book(id); err == nil {
		book.SetAdmin(owner)
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"owner": string(owner)})
}
