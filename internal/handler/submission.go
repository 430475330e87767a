package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xenok69/ECLReborn-backend/internal/middleware"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// CreateSubmission enregistre une soumission en attente de validation.
// L'identité du soumetteur vient du token, jamais du corps de la requête.
func CreateSubmission(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var sub model.Submission
	if err := utils.DecodeJSON(r, &sub); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub.SubmitterID = actor.ID
	sub.SubmitterName = actor.Username

	created, err := Workflow.Submit(r.Context(), sub)
	if err != nil {
		respondError(w, err, "failed to create submission")
		return
	}
	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: created})
}

// GetSubmissions liste les soumissions, filtrées par status si fourni
func GetSubmissions(w http.ResponseWriter, r *http.Request) {
	status := model.SubmissionStatus(r.URL.Query().Get("status"))

	subs, err := Workflow.List(r.Context(), status)
	if err != nil {
		respondError(w, err, "failed to fetch submissions")
		return
	}
	utils.Success(w, subs)
}

// GetSubmission récupère une soumission par ID
func GetSubmission(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := Workflow.Get(r.Context(), id)
	if err != nil {
		respondError(w, err, "submission not found")
		return
	}
	utils.Success(w, sub)
}

// ApproveSubmission approuve une soumission pending et matérialise son effet
// (insertion dans la liste ou complétion créditée)
func ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := Workflow.Approve(r.Context(), id, resolverID(r))
	if err != nil {
		respondError(w, err, "submission not found")
		return
	}
	utils.Success(w, sub)
}

// DeclineSubmission refuse une soumission pending, sans effet de bord
func DeclineSubmission(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := Workflow.Decline(r.Context(), id, resolverID(r))
	if err != nil {
		respondError(w, err, "submission not found")
		return
	}
	utils.Success(w, sub)
}

// resolverID identifie l'admin qui tranche : utilisateur du contexte si
// présent, sinon accès par clé d'administration
func resolverID(r *http.Request) string {
	if actor, err := middleware.GetUserFromContext(r); err == nil {
		return actor.ID
	}
	return "admin-key"
}
