package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xenok69/ECLReborn-backend/internal/handler"
	"github.com/xenok69/ECLReborn-backend/internal/leaderboard"
	"github.com/xenok69/ECLReborn-backend/internal/ledger"
	"github.com/xenok69/ECLReborn-backend/internal/middleware"
	"github.com/xenok69/ECLReborn-backend/internal/packs"
	"github.com/xenok69/ECLReborn-backend/internal/snapshot"
	"github.com/xenok69/ECLReborn-backend/internal/store"
	"github.com/xenok69/ECLReborn-backend/internal/submission"
)

const testAdminKey = "list-admin-key"

func setupTestRouter(t *testing.T, publishTarget string) http.Handler {
	t.Helper()

	mem := store.NewMemory()
	lvl := ledger.New(mem.Levels(), nil)
	aud := ledger.NewAuditor(mem.Levels())
	pk := packs.New(lvl, mem.Packs(), mem.Users())
	wf := submission.New(mem.Submissions(), mem.Users(), lvl)
	board := leaderboard.New(lvl, pk, mem.Users(), nil)
	exp := snapshot.NewExporter(lvl, nil)
	handler.Init(lvl, aud, pk, mem.Packs(), wf, board, exp, snapshot.FilePublisher{}, publishTarget)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminKey), bcrypt.MinCost)
	require.NoError(t, err)
	middleware.Configure(string(hash))

	return SetupRouter()
}

func TestSnapshotExportIsPublic(t *testing.T) {
	target := filepath.Join(t.TempDir(), "snapshot.json")
	router := setupTestRouter(t, target)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Lecture seule : rien ne doit partir vers le sink
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestSnapshotPublishRequiresAdmin(t *testing.T) {
	target := filepath.Join(t.TempDir(), "snapshot.json")
	router := setupTestRouter(t, target)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshot/publish", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestSnapshotPublishWithAdminKey(t *testing.T) {
	target := filepath.Join(t.TempDir(), "snapshot.json")
	router := setupTestRouter(t, target)

	req := httptest.NewRequest(http.MethodPost, "/snapshot/publish", nil)
	req.Header.Set("X-Admin-Key", testAdminKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := os.Stat(target)
	assert.NoError(t, err)
}

func TestLevelMutationRequiresAdmin(t *testing.T) {
	router := setupTestRouter(t, filepath.Join(t.TempDir(), "snapshot.json"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/levels", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
