package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/xenok69/ECLReborn-backend/internal/handler"
	"github.com/xenok69/ECLReborn-backend/internal/middleware"
	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)
	r.Use(middleware.LoggerMiddleware)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)

	adminRoutes := r.PathPrefix("/").Subrouter()
	adminRoutes.Use(middleware.AdminOnly)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Levels (liste classée)
	r.HandleFunc("/levels", handler.GetLevels).Methods(http.MethodGet)
	r.HandleFunc("/levels/{id}", handler.GetLevel).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/levels", handler.CreateLevel).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/levels/{id}", handler.UpdateLevel).Methods(http.MethodPut)
	adminRoutes.HandleFunc("/levels/{id}/placement", handler.MoveLevel).Methods(http.MethodPatch)
	adminRoutes.HandleFunc("/levels/{id}", handler.DeleteLevel).Methods(http.MethodDelete)

	// Packs
	r.HandleFunc("/packs", handler.GetPacks).Methods(http.MethodGet)
	r.HandleFunc("/packs/{id}", handler.GetPack).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/packs", handler.CreatePack).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/packs/{id}", handler.DeletePack).Methods(http.MethodDelete)
	r.HandleFunc("/users/{userId}/packs/progress", handler.GetUserPackProgress).Methods(http.MethodGet)

	// Submissions
	authenticatedRoutes.HandleFunc("/submissions", handler.CreateSubmission).Methods(http.MethodPost)
	r.HandleFunc("/submissions", handler.GetSubmissions).Methods(http.MethodGet)
	r.HandleFunc("/submissions/{id}", handler.GetSubmission).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/submissions/{id}/approve", handler.ApproveSubmission).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/submissions/{id}/decline", handler.DeclineSubmission).Methods(http.MethodPost)

	// Leaderboard
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/users/{userId}", handler.GetUserRank).Methods(http.MethodGet)

	// Users
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)

	// Audit de cohérence
	adminRoutes.HandleFunc("/audit/diagnose", handler.DiagnoseAudit).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/audit/repair", handler.RepairAudit).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/audit/verify", handler.VerifyAudit).Methods(http.MethodGet)

	// Snapshot
	r.HandleFunc("/snapshot", handler.GetSnapshot).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/snapshot/publish", handler.PublishSnapshot).Methods(http.MethodPost)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		utils.ErrorSimple(w, http.StatusNotFound, "route not found")
	})

	return r
}
