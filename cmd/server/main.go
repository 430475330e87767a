package main

import (
	"net/http"
	"os"

	"github.com/xenok69/ECLReborn-backend/internal/api"
	"github.com/xenok69/ECLReborn-backend/internal/config"
	"github.com/xenok69/ECLReborn-backend/internal/database"
	"github.com/xenok69/ECLReborn-backend/internal/handler"
	"github.com/xenok69/ECLReborn-backend/internal/leaderboard"
	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	"github.com/xenok69/ECLReborn-backend/internal/logger"
	"github.com/xenok69/ECLReborn-backend/internal/middleware"
	"github.com/xenok69/ECLReborn-backend/internal/packs"
	"github.com/xenok69/ECLReborn-backend/internal/scoring"
	"github.com/xenok69/ECLReborn-backend/internal/snapshot"
	"github.com/xenok69/ECLReborn-backend/internal/store"
	"github.com/xenok69/ECLReborn-backend/internal/submission"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Câblage du moteur sur le stockage Postgres
	st := store.NewPostgres(db)
	points := scoring.For(scoring.Strategy(cfg.ScoringStrategy))

	lvl := ledger.New(st.Levels(), points)
	aud := ledger.NewAuditor(st.Levels())
	pk := packs.New(lvl, st.Packs(), st.Users())
	wf := submission.New(st.Submissions(), st.Users(), lvl)
	board := leaderboard.New(lvl, pk, st.Users(), points)
	exp := snapshot.NewExporter(lvl, points)

	handler.Init(lvl, aud, pk, st.Packs(), wf, board, exp, snapshot.FilePublisher{}, cfg.PublishTarget)
	middleware.Configure(cfg.AdminKeyHash)

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	srv := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
