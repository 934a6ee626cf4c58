// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil holds fixtures shared by the package tests: fixed
// addresses, a controllable clock, an event recorder, wired rounds and
// HTTP helpers.
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/roundvote/adapter"
	"github.com/danielhkuo/roundvote/auth"
	"github.com/danielhkuo/roundvote/ballots"
	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/db"
	"github.com/danielhkuo/roundvote/legacy"
	"github.com/danielhkuo/roundvote/voting"
)

const (
	TestCallerSalt = "test-caller-salt"
	TestIteration  = 7
)

// Addr returns a deterministic address for n.
func Addr(n int) voting.Address {
	return voting.Address(fmt.Sprintf("0x%040x", n))
}

// Address families used across tests.
var Owner = Addr(1)

func Project(i int) voting.Address   { return Addr(0x100 + i) }
func Steering(i int) voting.Address  { return Addr(0x200 + i) }
func Oversight(i int) voting.Address { return Addr(0x300 + i) }
func Community(i int) voting.Address { return Addr(0x400 + i) }

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Recorder collects events in order.
type Recorder struct {
	mu     sync.Mutex
	events []voting.Event
}

func (r *Recorder) Notify(ev voting.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []voting.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]voting.Event(nil), r.events...)
}

// Kinds lists the recorded event kinds.
func (r *Recorder) Kinds() []voting.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]voting.EventKind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Last returns the most recent event of kind.
func (r *Recorder) Last(kind voting.EventKind) (voting.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return voting.Event{}, false
}

// Env is the wiring around a test round.
type Env struct {
	Clock  *Clock
	Events *Recorder
	Book   *ballots.Book
}

func newEnv() (*Env, voting.Config) {
	env := &Env{Clock: NewClock(), Events: &Recorder{}}
	env.Book = ballots.NewBook(ballots.Config{Iteration: TestIteration, Round: 1, Admin: Owner, Notifier: env.Events})
	cfg := voting.Config{
		Iteration: TestIteration,
		Round:     1,
		Owner:     Owner,
		Ballots:   env.Book,
		Notifier:  env.Events,
		Clock:     env.Clock.Now,
	}
	return env, cfg
}

// NewPooledRound deploys an empty pooled round owned by Owner.
func NewPooledRound(t testing.TB, mode voting.Mode) (*voting.Controller, *Env) {
	t.Helper()
	env, cfg := newEnv()
	cfg.Mode = mode
	c := voting.NewController(cfg)
	env.Book.SetGuard(c)
	return c, env
}

// NewSingleSeatRound deploys an empty single-seat round owned by Owner.
func NewSingleSeatRound(t testing.TB) (*legacy.Round, *Env) {
	t.Helper()
	env, cfg := newEnv()
	r := legacy.New(cfg)
	env.Book.SetGuard(r)
	return r, env
}

// Populate registers projects and entity voters through the uniform view.
func Populate(t testing.TB, r adapter.Round, projects, steering, oversight []voting.Address) {
	t.Helper()
	for _, p := range projects {
		if err := r.RegisterProject(Owner, p); err != nil {
			t.Fatalf("register project %s: %v", p, err)
		}
	}
	for _, v := range steering {
		if err := r.AddEntityVoter(Owner, voting.EntitySteering, v); err != nil {
			t.Fatalf("add steering voter %s: %v", v, err)
		}
	}
	for _, v := range oversight {
		if err := r.AddEntityVoter(Owner, voting.EntityOversight, v); err != nil {
			t.Fatalf("add oversight voter %s: %v", v, err)
		}
	}
}

// Mint issues community ballots to accounts and returns their tokens.
func Mint(t testing.TB, book *ballots.Book, accounts ...voting.Address) []voting.TokenID {
	t.Helper()
	tokens := make([]voting.TokenID, len(accounts))
	for i, a := range accounts {
		tok, err := book.Mint(Owner, a, voting.CommunityRole)
		if err != nil {
			t.Fatalf("mint ballot for %s: %v", a, err)
		}
		tokens[i] = tok
	}
	return tokens
}

// SetupTestDB opens an in-memory sqlite database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  db.TypeSQLite,
		CallerKeySalt: TestCallerSalt,
		RegistryOwner: string(Owner),
	}
}

// CallerHeaders returns the identity headers for addr.
func CallerHeaders(addr voting.Address) map[string]string {
	return map[string]string{
		auth.HeaderCallerAddress: string(addr),
		auth.HeaderCallerKey:     auth.GenerateCallerKey(string(addr), TestCallerSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
