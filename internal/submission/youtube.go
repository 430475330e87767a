package submission

import (
	"regexp"
	"strings"

	"github.com/xenok69/ECLReborn-backend/internal/apperr"
)

// Les soumissions acceptent une URL YouTube collée telle quelle ou un id nu.
// On normalise toujours vers l'id vidéo de 11 caractères.
var (
	bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	urlVideoID = []*regexp.Regexp{
		regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/(?:embed|shorts|v|live)/([A-Za-z0-9_-]{11})`),
	}
)

// ExtractVideoID extrait l'id vidéo d'une URL YouTube ou d'un id nu
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperr.Validation("videoRef", "required")
	}

	if bareVideoID.MatchString(raw) {
		return raw, nil
	}
	for _, pattern := range urlVideoID {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			return m[1], nil
		}
	}
	return "", apperr.Validation("videoRef", "not a recognizable YouTube URL or video id")
}
