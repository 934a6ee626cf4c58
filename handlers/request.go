// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielhkuo/roundvote/adapter"
	"github.com/danielhkuo/roundvote/auth"
	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/middleware"
	"github.com/danielhkuo/roundvote/models"
	"github.com/danielhkuo/roundvote/voting"
)

// base carries what every handler needs.
type base struct {
	d   *Deployments
	cfg cliparse.Config
}

// caller authenticates the request, writing the error response on failure.
func (b base) caller(w http.ResponseWriter, r *http.Request) (voting.Address, bool) {
	addr, err := auth.Caller(r, b.cfg.CallerKeySalt)
	if err != nil {
		middleware.Error(w, err)
		return "", false
	}
	return addr, true
}

// round resolves the {id} path value to its uniform view.
func (b base) round(w http.ResponseWriter, r *http.Request) (uint64, adapter.Round, bool) {
	id, err := parseUint(r.PathValue("id"), "round id")
	if err != nil {
		middleware.Error(w, err)
		return 0, nil, false
	}
	view, err := b.d.reg.Resolve(id)
	if err != nil {
		middleware.Error(w, err)
		return 0, nil, false
	}
	return id, view, true
}

func parseUint(s, what string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", voting.ErrInvalidArgument, what, s)
	}
	return n, nil
}

func parseEntity(r *http.Request) (voting.EntityID, error) {
	return voting.ParseEntityID(r.PathValue("entity"))
}

func toOutcome(o voting.Outcome) models.Outcome {
	return models.Outcome{Winner: string(o.Winner), HasWinner: o.HasWinner}
}

func toStrings(addrs []voting.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = string(a)
	}
	return out
}

// parseBody decodes the JSON body, writing 400 on failure.
func parseBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

// parseAddress parses s, writing 400 on failure.
func parseAddress(w http.ResponseWriter, s string) (voting.Address, bool) {
	addr, err := voting.ParseAddress(s)
	if err != nil {
		middleware.Error(w, err)
		return "", false
	}
	return addr, true
}
