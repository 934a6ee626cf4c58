// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/roundvote/db"
	"github.com/danielhkuo/roundvote/registry"
	"github.com/danielhkuo/roundvote/testutil"
	"github.com/danielhkuo/roundvote/voting"
)

// newTestDeployments returns deployments over a registry with the built-in
// adapters, owned by testutil.Owner. store may be nil.
func newTestDeployments(t *testing.T, store *db.Store) *Deployments {
	t.Helper()
	reg := registry.New(testutil.Owner, Notifier(store))
	if err := reg.RegisterBuiltins(testutil.Owner); err != nil {
		t.Fatalf("Failed to register adapters: %v", err)
	}
	return NewDeployments(reg, store)
}

// deployRound deploys a round owned by testutil.Owner.
func deployRound(t *testing.T, d *Deployments, version string, mode voting.Mode) uint64 {
	t.Helper()
	id, err := d.Deploy(testutil.Owner, version, testutil.TestIteration, mode, testutil.Owner)
	if err != nil {
		t.Fatalf("Failed to deploy %s round: %v", version, err)
	}
	return id
}

// serve runs h on req with the given path values (name, value pairs).
func serve(h http.HandlerFunc, req *http.Request, pathValues ...string) *httptest.ResponseRecorder {
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// as sends body from caller.
func as(caller voting.Address, method, path string, body interface{}) *http.Request {
	return testutil.MakeRequest(method, path, body, testutil.CallerHeaders(caller))
}

func idStr(id uint64) string { return strconv.FormatUint(id, 10) }
