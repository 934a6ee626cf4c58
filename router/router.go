// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/roundvote/cliparse"
	"github.com/danielhkuo/roundvote/handlers"
	"github.com/danielhkuo/roundvote/middleware"
)

func NewRouter(d *handlers.Deployments, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	roundHandler := handlers.NewRoundHandler(d, cfg)
	roleHandler := handlers.NewRoleHandler(d, cfg)
	votingHandler := handlers.NewVotingHandler(d, cfg)
	resultsHandler := handlers.NewResultsHandler(d, cfg)
	adapterHandler := handlers.NewAdapterHandler(d, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Round lifecycle
	mux.HandleFunc("POST /rounds", middleware.WithLogging(roundHandler.CreateRound))
	mux.HandleFunc("GET /rounds", middleware.WithLogging(roundHandler.ListRounds))
	mux.HandleFunc("GET /rounds/{id}", middleware.WithLogging(roundHandler.GetRound))
	mux.HandleFunc("GET /rounds/{id}/config", middleware.WithLogging(roundHandler.GetConfig))
	mux.HandleFunc("PUT /rounds/{id}/version", middleware.WithLogging(roundHandler.SetVersion))
	mux.HandleFunc("PUT /rounds/{id}/mode", middleware.WithLogging(roundHandler.SetMode))
	mux.HandleFunc("PUT /rounds/{id}/owner", middleware.WithLogging(roundHandler.TransferOwnership))
	mux.HandleFunc("POST /rounds/{id}/activate", middleware.WithLogging(roundHandler.Activate))
	mux.HandleFunc("POST /rounds/{id}/close", middleware.WithLogging(roundHandler.CloseVoting))
	mux.HandleFunc("POST /rounds/{id}/lock", middleware.WithLogging(roundHandler.Lock))

	// Projects and entity voters (round owner)
	mux.HandleFunc("GET /rounds/{id}/projects", middleware.WithLogging(roleHandler.ListProjects))
	mux.HandleFunc("POST /rounds/{id}/projects", middleware.WithLogging(roleHandler.RegisterProject))
	mux.HandleFunc("DELETE /rounds/{id}/projects/{address}", middleware.WithLogging(roleHandler.RemoveProject))
	mux.HandleFunc("GET /rounds/{id}/entities/{entity}", middleware.WithLogging(roleHandler.GetEntity))
	mux.HandleFunc("GET /rounds/{id}/entities/{entity}/voters", middleware.WithLogging(roleHandler.ListVoters))
	mux.HandleFunc("POST /rounds/{id}/entities/{entity}/voters", middleware.WithLogging(roleHandler.AddVoter))
	mux.HandleFunc("DELETE /rounds/{id}/entities/{entity}/voters/{address}", middleware.WithLogging(roleHandler.RemoveVoter))

	// Voting
	mux.HandleFunc("POST /rounds/{id}/entities/{entity}/votes", middleware.WithLogging(votingHandler.VoteEntity))
	mux.HandleFunc("POST /rounds/{id}/ballots", middleware.WithLogging(votingHandler.MintBallot))
	mux.HandleFunc("POST /rounds/{id}/ballots/{token}/transfer", middleware.WithLogging(votingHandler.TransferBallot))
	mux.HandleFunc("GET /rounds/{id}/community", middleware.WithLogging(votingHandler.GetCommunity))
	mux.HandleFunc("GET /rounds/{id}/community/{token}", middleware.WithLogging(votingHandler.GetCommunityBallot))
	mux.HandleFunc("POST /rounds/{id}/community/votes", middleware.WithLogging(votingHandler.VoteCommunity))

	// Results (public, recomputed on every read)
	mux.HandleFunc("GET /rounds/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /rounds/{id}/scores", middleware.WithLogging(resultsHandler.GetScores))
	mux.HandleFunc("GET /rounds/{id}/participation", middleware.WithLogging(resultsHandler.GetParticipation))
	mux.HandleFunc("GET /rounds/{id}/projects/{address}/breakdown", middleware.WithLogging(resultsHandler.GetBreakdown))
	mux.HandleFunc("GET /rounds/{id}/events", middleware.WithLogging(resultsHandler.GetEvents))
	mux.HandleFunc("GET /rounds/{id}/snapshot", middleware.WithLogging(resultsHandler.GetSnapshot))

	// Adapter registry
	mux.HandleFunc("GET /adapters", middleware.WithLogging(adapterHandler.ListAdapters))
	mux.HandleFunc("POST /adapters", middleware.WithLogging(adapterHandler.SetAdapter))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("roundvote API v1"))
	})

	return mux
}
