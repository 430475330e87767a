package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	model "github.com/xenok69/ECLReborn-backend/internal/models"
)

// FilePublisher écrit le document de publication sur disque. L'écriture
// passe par un fichier temporaire puis un rename : les lecteurs ne voient
// jamais un document partiel.
type FilePublisher struct{}

func (FilePublisher) Publish(ctx context.Context, target string, snap model.Snapshot) error {
	if target == "" {
		return fmt.Errorf("publish target is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(target), fmt.Sprintf(".%s.tmp", filepath.Base(target)))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}
