package handler

import (
	"net/http"

	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// DiagnoseAudit compare les placements stockés à la séquence attendue 1..N.
// L'ordre relatif stocké fait foi ; la réponse liste chaque écart.
func DiagnoseAudit(w http.ResponseWriter, r *http.Request) {
	_, issues, err := Auditor.Diagnose(r.Context())
	if err != nil {
		respondError(w, err, "failed to diagnose placements")
		return
	}

	utils.Success(w, map[string]interface{}{
		"consistent": len(issues) == 0,
		"issueCount": len(issues),
		"issues":     issues,
	})
}

// RepairAudit renumérote les placements en préservant l'ordre relatif.
// Avec dryRun=true, rapporte les écritures qui auraient eu lieu sans les faire.
func RepairAudit(w http.ResponseWriter, r *http.Request) {
	dryRun := r.URL.Query().Get("dryRun") == "true"

	fixed, err := Auditor.Repair(r.Context(), dryRun)
	if err != nil {
		respondError(w, err, "failed to repair placements")
		return
	}

	utils.Success(w, map[string]interface{}{
		"dryRun":     dryRun,
		"fixedCount": len(fixed),
		"fixed":      fixed,
	})
}

// VerifyAudit vérifie que la liste est cohérente après réparation
func VerifyAudit(w http.ResponseWriter, r *http.Request) {
	ok, err := Auditor.Verify(r.Context())
	if err != nil {
		respondError(w, err, "failed to verify placements")
		return
	}
	utils.Success(w, map[string]interface{}{"consistent": ok})
}
