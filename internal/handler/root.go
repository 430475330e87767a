package handler

import (
	"net/http"

	"github.com/xenok69/ECLReborn-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "ECL Reborn API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"levels": []map[string]string{
				{"method": "GET", "path": "/levels", "description": "Liste classée des niveaux (placement 1..N, points dérivés)"},
				{"method": "GET", "path": "/levels/{id}", "description": "Récupérer un niveau par ID"},
				{"method": "POST", "path": "/levels", "description": "Insérer un niveau à un placement (admin)"},
				{"method": "PUT", "path": "/levels/{id}", "description": "Mettre à jour les métadonnées d'un niveau (admin)"},
				{"method": "PATCH", "path": "/levels/{id}/placement", "description": "Déplacer un niveau dans la liste (admin)"},
				{"method": "DELETE", "path": "/levels/{id}", "description": "Retirer un niveau, placements compactés (admin)"},
			},
			"packs": []map[string]string{
				{"method": "GET", "path": "/packs", "description": "Récupérer tous les packs"},
				{"method": "GET", "path": "/packs/{id}", "description": "Récupérer un pack par ID"},
				{"method": "POST", "path": "/packs", "description": "Créer ou remplacer un pack (admin)"},
				{"method": "DELETE", "path": "/packs/{id}", "description": "Supprimer un pack (admin)"},
				{"method": "GET", "path": "/users/{userId}/packs/progress", "description": "Progression d'un utilisateur sur tous les packs"},
			},
			"submissions": []map[string]string{
				{"method": "POST", "path": "/submissions", "description": "Soumettre un niveau ou une complétion (authentifié)"},
				{"method": "GET", "path": "/submissions", "description": "Lister les soumissions (param: status)"},
				{"method": "GET", "path": "/submissions/{id}", "description": "Récupérer une soumission par ID"},
				{"method": "POST", "path": "/submissions/{id}/approve", "description": "Approuver une soumission (admin)"},
				{"method": "POST", "path": "/submissions/{id}/decline", "description": "Refuser une soumission (admin)"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général (param: limit)"},
				{"method": "GET", "path": "/leaderboard/users/{userId}", "description": "Rang et percentile d'un utilisateur"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users/{id}", "description": "Profil utilisateur avec complétions et totaux"},
			},
			"audit": []map[string]string{
				{"method": "GET", "path": "/audit/diagnose", "description": "Diagnostic de cohérence des placements (admin)"},
				{"method": "POST", "path": "/audit/repair", "description": "Réparation des placements (param: dryRun) (admin)"},
				{"method": "GET", "path": "/audit/verify", "description": "Vérification post-réparation (admin)"},
			},
			"snapshot": []map[string]string{
				{"method": "GET", "path": "/snapshot", "description": "Export du document de publication"},
				{"method": "POST", "path": "/snapshot/publish", "description": "Publier le document vers le sink configuré (admin)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour ECL Reborn - Liste de challenges classés et scoring",
		},
	}

	utils.Success(w, routes)
}
