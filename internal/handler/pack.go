package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// GetPacks récupère tous les packs
func GetPacks(w http.ResponseWriter, r *http.Request) {
	list, err := Packs.List(r.Context())
	if err != nil {
		respondError(w, err, "failed to fetch packs")
		return
	}
	utils.Success(w, list)
}

// GetPack récupère un pack avec ses niveaux résolus.
// Les références vers des niveaux supprimés sont filtrées, pas signalées.
func GetPack(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pack, err := Packs.Get(r.Context(), id)
	if err != nil {
		respondError(w, err, "pack not found")
		return
	}

	levels, err := Packs.Resolve(r.Context(), *pack)
	if err != nil {
		respondError(w, err, "failed to resolve pack levels")
		return
	}

	utils.Success(w, map[string]interface{}{
		"pack":   pack,
		"levels": levels,
	})
}

// CreatePack crée ou remplace un pack
func CreatePack(w http.ResponseWriter, r *http.Request) {
	var pack model.Pack
	if err := utils.DecodeJSON(r, &pack); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if pack.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name is required")
		return
	}
	if pack.BonusPoints < 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "bonusPoints must be >= 0")
		return
	}
	if pack.ID == "" {
		pack.ID = uuid.NewString()
		pack.CreatedAt = time.Now()
	}
	pack.UpdatedAt = time.Now()

	if err := PackStore.Upsert(r.Context(), pack); err != nil {
		respondError(w, err, "failed to save pack")
		return
	}
	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: pack})
}

// DeletePack supprime un pack. Les completedPacks des utilisateurs ne sont
// pas touchés : les références mortes sont ignorées à la lecture.
func DeletePack(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := PackStore.Delete(r.Context(), id); err != nil {
		respondError(w, err, "pack not found")
		return
	}
	utils.Message(w, "pack deleted")
}

// GetUserPackProgress calcule la progression d'un utilisateur sur tous les packs
func GetUserPackProgress(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	progress, err := Packs.ProgressAll(r.Context(), userID)
	if err != nil {
		respondError(w, err, "failed to compute pack progress")
		return
	}
	utils.Success(w, progress)
}
