package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
	"github.com/xenok69/ECLReborn-backend/internal/leaderboard"
	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	"github.com/xenok69/ECLReborn-backend/internal/packs"
	"github.com/xenok69/ECLReborn-backend/internal/snapshot"
	"github.com/xenok69/ECLReborn-backend/internal/store"
	"github.com/xenok69/ECLReborn-backend/internal/submission"
	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// Composants du moteur, injectés au démarrage via Init
var (
	Levels        *ledger.Ledger
	Auditor       *ledger.Auditor
	Packs         *packs.Aggregator
	PackStore     store.PackStore
	Workflow      *submission.Workflow
	Board         *leaderboard.Aggregator
	Exporter      *snapshot.Exporter
	Publisher     snapshot.Publisher
	PublishTarget string
)

// Init câble les composants du moteur sur le stockage choisi
func Init(
	lvl *ledger.Ledger,
	aud *ledger.Auditor,
	pk *packs.Aggregator,
	pkStore store.PackStore,
	wf *submission.Workflow,
	board *leaderboard.Aggregator,
	exp *snapshot.Exporter,
	pub snapshot.Publisher,
	publishTarget string,
) {
	Levels = lvl
	Auditor = aud
	Packs = pk
	PackStore = pkStore
	Workflow = wf
	Board = board
	Exporter = exp
	Publisher = pub
	PublishTarget = publishTarget
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}

// respondError traduit la taxonomie d'erreurs du moteur en status HTTP.
// Une annulation côté client n'est pas une erreur : on abandonne sans log.
func respondError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, context.Canceled):
		return
	case apperr.IsValidation(err):
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInvalidRank):
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		utils.ErrorSimple(w, http.StatusNotFound, message)
	case errors.Is(err, apperr.ErrTerminalSubmission):
		utils.ErrorSimple(w, http.StatusConflict, err.Error())
	case apperr.IsConsistency(err):
		utils.Error(w, http.StatusConflict, "list placements are inconsistent, run /audit/diagnose", err)
	default:
		utils.Error(w, http.StatusInternalServerError, message, err)
	}
}
