package handler

import (
	"net/http"

	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// GetSnapshot exporte le document de publication : liste classée complète,
// points recalculés, horodatage. Lecture seule, aucun effet sur le sink.
func GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := Exporter.Export(r.Context())
	if err != nil {
		respondError(w, err, "failed to export snapshot")
		return
	}
	utils.Success(w, snap)
}

// PublishSnapshot pousse le document vers la cible de publication configurée
func PublishSnapshot(w http.ResponseWriter, r *http.Request) {
	if Publisher == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "no publisher configured")
		return
	}

	snap, err := Exporter.ExportTo(r.Context(), Publisher, PublishTarget)
	if err != nil {
		respondError(w, err, "failed to publish snapshot")
		return
	}
	utils.Success(w, snap)
}
