// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/roundvote/adapter"
	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/middleware"
	"github.com/danielhkuo/roundvote/models"
	"github.com/danielhkuo/roundvote/voting"
)

// AdapterHandler administers the adapter registry.
type AdapterHandler struct {
	base
}

func NewAdapterHandler(d *Deployments, cfg cliparse.Config) *AdapterHandler {
	return &AdapterHandler{base{d: d, cfg: cfg}}
}

// ListAdapters handles GET /adapters
func (h *AdapterHandler) ListAdapters(w http.ResponseWriter, r *http.Request) {
	infos := h.d.reg.Adapters()
	resp := models.AdaptersResponse{Adapters: make([]models.AdapterInfo, 0, len(infos))}
	for _, info := range infos {
		resp.Adapters = append(resp.Adapters, models.AdapterInfo{
			Version:      info.Version,
			Capabilities: info.Capabilities.Names(),
		})
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SetAdapter handles POST /adapters. The adapter is one of the built-in
// shapes, registered under a new version tag or replacing an existing one.
func (h *AdapterHandler) SetAdapter(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.SetAdapterRequest
	if !parseBody(w, r, &req) {
		return
	}
	a, ok := adapter.Builtin(req.Shape)
	if !ok {
		middleware.Error(w, fmt.Errorf("%w: unknown shape %q", voting.ErrInvalidArgument, req.Shape))
		return
	}

	var err error
	if req.Replace {
		err = h.d.reg.ReplaceAdapter(caller, req.Version, a)
	} else {
		err = h.d.reg.SetAdapter(caller, req.Version, a)
	}
	if err != nil {
		middleware.Error(w, err)
		return
	}

	slog.Info("adapter set", "version", req.Version, "shape", req.Shape, "replace", req.Replace)

	middleware.JSONResponse(w, http.StatusCreated, models.AdapterInfo{
		Version:      req.Version,
		Capabilities: a.Capabilities().Names(),
	})
}
