package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// GetLeaderboard calcule le classement général à la demande.
// Le param limit tronque le résultat après attribution des rangs.
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := Board.Board(r.Context())
	if err != nil {
		respondError(w, err, "failed to compute leaderboard")
		return
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 && limit < len(entries) {
			entries = entries[:limit]
		}
	}

	utils.Success(w, entries)
}

// GetUserRank récupère le rang et le percentile d'un utilisateur
func GetUserRank(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	rank, err := Board.UserRank(r.Context(), userID)
	if err != nil {
		respondError(w, err, "user not found in leaderboard")
		return
	}
	utils.Success(w, rank)
}
