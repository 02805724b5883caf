package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/config"
	"github.com/Simplici0/soapworks/internal/db"
	"github.com/Simplici0/soapworks/internal/formulation"
	"github.com/Simplici0/soapworks/internal/metrics"
	"github.com/Simplici0/soapworks/internal/migrations"
	"github.com/Simplici0/soapworks/internal/seed"
	"github.com/Simplici0/soapworks/web"
)

type server struct {
	catalog     *catalog.Catalog
	engine      *formulation.Engine
	metrics     *metrics.Metrics
	defaultUnit formulation.Unit
}

func newServer(cat *catalog.Catalog, m *metrics.Metrics, defaultUnit formulation.Unit) *server {
	if !defaultUnit.Valid() {
		defaultUnit = formulation.UnitPound
	}
	return &server{
		catalog:     cat,
		engine:      formulation.NewEngine(cat),
		metrics:     m,
		defaultUnit: defaultUnit,
	}
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
		if v, err := migrations.Version(database); err == nil {
			log.Printf("database schema at version %d", v)
		}
		embedded, err := catalog.LoadEmbedded()
		if err != nil {
			log.Fatalf("failed to load embedded catalog: %v", err)
		}
		stats, err := seed.Run(ctx, database, embedded)
		if err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
		log.Printf("catalog seeded: %d oils, %d recipes inserted, %d updated, %d removed", stats.Oils, stats.Recipes, stats.Updated, stats.Removed)
	}

	cat := loadCatalog(ctx, database)
	srv := newServer(cat, metrics.New(), cfg.DefaultUnit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (%d oils, %d recipes)", addr, len(cat.Oils()), len(cat.Recipes()))
	if err := http.ListenAndServe(addr, srv.routes(cfg.MetricsEnabled)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// loadCatalog prefers the seeded database and falls back to the embedded
// data when the tables are missing or empty.
func loadCatalog(ctx context.Context, database *sql.DB) *catalog.Catalog {
	cat, err := catalog.LoadDB(ctx, database)
	if err == nil && len(cat.Oils()) > 0 {
		return cat
	}
	if err != nil {
		log.Printf("warning: reading catalog from database: %v; using embedded data", err)
	} else {
		log.Printf("warning: database catalog is empty; using embedded data")
	}

	cat, err = catalog.LoadEmbedded()
	if err != nil {
		log.Fatalf("failed to load embedded catalog: %v", err)
	}
	return cat
}

func (s *server) routes(metricsEnabled bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	if metricsEnabled {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Get("/", s.handleHome)
	r.Get("/recipes", s.handleRecipeJump)
	r.Get("/recipes/{slug}", s.handleRecipeDetail)
	r.Get("/recipes/{slug}/pdf", s.handleRecipePDF)

	r.Get("/calculator", s.handleCalculatorForm)
	r.Post("/calculator", s.handleCalculatorSubmit)
	r.Post("/calculator/pdf", s.handleCalculatorPDF)
	r.Post("/calculator/xlsx", s.handleCalculatorXLSX)

	r.Get("/quick", s.handleQuickForm)
	r.Post("/quick", s.handleQuickSubmit)

	r.Route("/api", func(r chi.Router) {
		r.Get("/oils", s.handleAPIOils)
		r.Get("/recipes", s.handleAPIRecipes)
		r.Post("/formulations", s.handleAPIFormulation)
		r.Post("/quick", s.handleAPIQuick)
	})

	return r
}
