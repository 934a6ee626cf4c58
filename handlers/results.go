// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/db"
	"github.com/danielhkuo/roundvote/middleware"
	"github.com/danielhkuo/roundvote/models"
	"github.com/danielhkuo/roundvote/voting"
)

type ResultsHandler struct {
	base
}

func NewResultsHandler(d *Deployments, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{base{d: d, cfg: cfg}}
}

// GetResults handles GET /rounds/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}

	resp := models.ResultsResponse{
		Mode:      view.VotingMode().String(),
		Winner:    toOutcome(view.Winner()),
		Consensus: toOutcome(view.WinnerConsensus()),
		Weighted:  toOutcome(view.WinnerWeighted()),
	}
	if final, ok := view.FinalWinner(); ok {
		out := toOutcome(final)
		resp.Final = &out
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetScores handles GET /rounds/{id}/scores
func (h *ResultsHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, toScores(view.WinnerWithScores()))
}

func toScores(sheet voting.ScoreSheet) models.ScoresResponse {
	resp := models.ScoresResponse{
		Scores:        make([]models.ProjectScore, 0, len(sheet.Scores)),
		TotalPossible: sheet.TotalPossible,
		MaxScore:      sheet.MaxScore,
		Outcome:       toOutcome(sheet.Outcome),
	}
	for _, s := range sheet.Scores {
		ps := models.ProjectScore{Project: string(s.Project), Score: s.Score}
		if sheet.TotalPossible > 0 {
			ps.Share = float64(s.Score) / float64(sheet.TotalPossible)
		}
		resp.Scores = append(resp.Scores, ps)
	}
	return resp
}

// GetParticipation handles GET /rounds/{id}/participation
func (h *ResultsHandler) GetParticipation(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	p := view.VoteParticipationCounts()
	middleware.JSONResponse(w, http.StatusOK, models.ParticipationResponse{
		Steering:  p.Steering,
		Oversight: p.Oversight,
		Community: p.Community,
	})
}

// GetBreakdown handles GET /rounds/{id}/projects/{address}/breakdown
func (h *ResultsHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.round(w, r)
	if !ok {
		return
	}
	project, ok := parseAddress(w, r.PathValue("address"))
	if !ok {
		return
	}
	b := view.ProjectVoteBreakdown(project)
	middleware.JSONResponse(w, http.StatusOK, models.BreakdownResponse{
		Project:   string(project),
		Steering:  b.Steering,
		Oversight: b.Oversight,
		Community: b.Community,
	})
}

// GetEvents handles GET /rounds/{id}/events
func (h *ResultsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	id, err := parseUint(r.PathValue("id"), "round id")
	if err != nil {
		middleware.Error(w, err)
		return
	}
	if h.d.store == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "event log is not enabled")
		return
	}

	records, err := h.d.store.Events(id)
	if err != nil {
		slog.Error("failed to load events", "round", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load events")
		return
	}

	resp := models.EventsResponse{Round: id, Events: make([]models.Event, 0, len(records))}
	for _, rec := range records {
		resp.Events = append(resp.Events, models.Event{
			Seq:        rec.Seq,
			Kind:       string(rec.Kind),
			Actor:      rec.Actor,
			Subject:    rec.Subject,
			Entity:     rec.Entity,
			Project:    rec.Project,
			Previous:   rec.Previous,
			Token:      rec.Token,
			Mode:       rec.Mode,
			Version:    rec.Version,
			OccurredAt: rec.OccurredAt,
		})
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetSnapshot handles GET /rounds/{id}/snapshot
func (h *ResultsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := parseUint(r.PathValue("id"), "round id")
	if err != nil {
		middleware.Error(w, err)
		return
	}
	if h.d.store == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "event log is not enabled")
		return
	}

	snap, err := h.d.store.Snapshot(id)
	if errors.Is(err, db.ErrNoSnapshot) {
		middleware.ErrorResponse(w, http.StatusNotFound, "round has not been locked")
		return
	}
	if err != nil {
		slog.Error("failed to load snapshot", "round", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load snapshot")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SnapshotResponse{
		Round:      snap.Round,
		Iteration:  snap.Iteration,
		Mode:       snap.Mode,
		Outcome:    toOutcome(snap.Outcome),
		Scores:     toScores(snap.Scores),
		ComputedAt: snap.ComputedAt,
	})
}
