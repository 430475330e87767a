package middleware

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/xenok69/ECLReborn-backend/internal/database"
	model "github.com/xenok69/ECLReborn-backend/internal/models"
	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// Context keys
type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// adminKeyHash est le hash bcrypt de la clé d'administration (X-Admin-Key)
var adminKeyHash string

// Configure injecte la configuration du middleware au démarrage
func Configure(keyHash string) {
	adminKeyHash = keyHash
}

// AuthMiddleware valide le token et injecte l'utilisateur dans le contexte
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := utils.GetToken(r)
		if err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := validateTokenAndGetUser(r.Context(), token)
		if err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		ctx = context.WithValue(ctx, tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth injecte l'utilisateur si un token valide est présent,
// et laisse passer la requête dans tous les cas
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, err := utils.GetToken(r); err == nil {
			if user, err := validateTokenAndGetUser(r.Context(), token); err == nil {
				ctx := context.WithValue(r.Context(), userContextKey, *user)
				ctx = context.WithValue(ctx, tokenContextKey, token)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly refuse la requête si l'acteur n'a pas les privilèges admin
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r) {
			utils.ErrorSimple(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsAdmin vérifie les privilèges admin : soit l'utilisateur du contexte est
// marqué admin, soit le header X-Admin-Key correspond à la clé configurée.
func IsAdmin(r *http.Request) bool {
	if user, err := GetUserFromContext(r); err == nil && user.IsAdmin {
		return true
	}
	key := r.Header.Get("X-Admin-Key")
	if key == "" || adminKeyHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(adminKeyHash), []byte(key)) == nil
}

// validateTokenAndGetUser valide le token de session et retourne l'acteur
// fourni par l'identité externe (id opaque, nom, avatar).
func validateTokenAndGetUser(ctx context.Context, token string) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar sql.NullString

	query := `
	SELECT u.user_id, u.username, u.avatar, COALESCE(u.is_admin, false)
	FROM users u
	JOIN sessions s ON u.user_id = s.user_id
	WHERE s.token = $1
		AND s.is_active = true
		AND s.expires_at > NOW()`

	err := database.DB.QueryRow(ctx, query, token).Scan(
		&user.ID, &user.Username, &avatar, &user.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("token not found or expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.Avatar = utils.NullStringToString(avatar)
	return &user, nil
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return model.UserProfile{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// RequireAuth est un helper pour vérifier qu'un utilisateur est authentifié
func RequireAuth(r *http.Request) (model.UserProfile, error) {
	return GetUserFromContext(r)
}
