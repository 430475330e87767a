package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// GetUser récupère le profil d'un utilisateur : complétions (élaguées des
// niveaux supprimés, élagage persisté) et totaux de points
func GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	profile, err := Board.Profile(r.Context(), id)
	if err != nil {
		respondError(w, err, "user not found")
		return
	}

	levelPoints, packPoints, err := Board.Totals(r.Context(), id)
	if err != nil {
		respondError(w, err, "failed to compute user totals")
		return
	}

	utils.Success(w, map[string]interface{}{
		"profile":     profile,
		"levelPoints": levelPoints,
		"packPoints":  packPoints,
		"totalPoints": levelPoints + packPoints,
	})
}
