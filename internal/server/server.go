// Package server exposes a small operational HTTP surface next to the
// Telegram transport: liveness for the process supervisor and a stats
// endpoint for dashboards.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/scar796/nutrio/internal/catalog"
	"github.com/scar796/nutrio/internal/config"
	"github.com/scar796/nutrio/internal/models"
	"github.com/scar796/nutrio/internal/repository"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

type stats struct {
	Profiles int            `json:"profiles"`
	Catalog  map[string]int `json:"catalog"`
}

func New(cfg config.Config, index *catalog.Index, profiles repository.ProfileRepository) *Server {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		profileCount, err := profiles.Count(r.Context())
		if err != nil {
			slog.Error("counting profiles", "error", err)
			http.Error(w, "stats unavailable", http.StatusInternalServerError)
			return
		}

		payload := stats{
			Profiles: profileCount,
			Catalog: map[string]int{
				string(models.RegionMaharashtra): len(index.Region(models.RegionMaharashtra)),
				string(models.RegionKarnataka):   len(index.Region(models.RegionKarnataka)),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("writing stats", "error", err)
		}
	})

	return &Server{
		router: router,
		config: cfg,
	}
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting status server", "address", address)
	return http.ListenAndServe(address, server.router)
}
