package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/xenok69/ECLReborn-backend/internal/middleware"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// GetLevels récupère la liste classée complète, points dérivés inclus
func GetLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := Levels.List(r.Context())
	if err != nil {
		respondError(w, err, "failed to fetch levels")
		return
	}
	utils.Success(w, levels)
}

// GetLevel récupère un niveau par ID
func GetLevel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	level, err := Levels.Get(r.Context(), id)
	if err != nil {
		respondError(w, err, "level not found")
		return
	}
	utils.Success(w, level)
}

// CreateLevel insère un niveau au placement demandé. Le champ placement du
// corps sert de cible ; hors bornes, le niveau est ajouté en fin de liste.
func CreateLevel(w http.ResponseWriter, r *http.Request) {
	var level model.Level
	if err := utils.DecodeJSON(r, &level); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if level.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name is required")
		return
	}
	if level.ID == "" {
		level.ID = uuid.NewString()
	}
	if actor, err := middleware.GetUserFromContext(r); err == nil {
		level.CreatedBy = &actor.ID
		level.UpdatedBy = &actor.ID
	}

	created, err := Levels.Insert(r.Context(), level, level.Placement)
	if err != nil {
		respondError(w, err, "failed to create level")
		return
	}
	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: created})
}

// UpdateLevel met à jour les métadonnées d'un niveau. Le placement stocké
// est conservé : seul PATCH /levels/{id}/placement déplace un niveau.
func UpdateLevel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var level model.Level
	if err := utils.DecodeJSON(r, &level); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}
	level.ID = id
	if actor, err := middleware.GetUserFromContext(r); err == nil {
		level.UpdatedBy = &actor.ID
	}

	updated, err := Levels.Update(r.Context(), level)
	if err != nil {
		respondError(w, err, "level not found")
		return
	}
	utils.Success(w, updated)
}

// MoveLevel déplace un niveau vers un nouveau placement
func MoveLevel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Placement int `json:"placement"`
	}
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moved, err := Levels.Move(r.Context(), id, body.Placement)
	if err != nil {
		respondError(w, err, "level not found")
		return
	}
	utils.Success(w, moved)
}

// DeleteLevel retire un niveau de la liste et compacte les placements
func DeleteLevel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := Levels.Remove(r.Context(), id); err != nil {
		respondError(w, err, "level not found")
		return
	}
	utils.Message(w, "level deleted")
}
