package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/NWFWMD-IT/Wells/internal/config"
	"github.com/NWFWMD-IT/Wells/internal/db"
	"github.com/NWFWMD-IT/Wells/internal/metrics"
	"github.com/NWFWMD-IT/Wells/internal/middleware"
	"github.com/NWFWMD-IT/Wells/internal/refresh"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	db.Connect(cfg.DatabaseURL)
	refresh.Init(cfg.Spatial)

	r := chi.NewRouter()
	r.Get("/", RootHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/refresh", func(r chi.Router) {
		if cfg.APIKeyHash != "" {
			r.Use(middleware.APIKeyMiddleware(middleware.BcryptVerifier{Hash: cfg.APIKeyHash}))
		}
		// One refresh at a time; a second request while one runs gets a 429
		// instead of queueing behind the transaction.
		r.Use(middleware.RefreshLimiter(rate.NewLimiter(rate.Every(time.Minute), 1)))
		r.Mount("/", refresh.SetupRoutes())
	})

	log.Printf("Server listening on port :%s...", cfg.Port)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
