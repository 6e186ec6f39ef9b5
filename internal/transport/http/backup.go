package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mkandreum/rodetespruebas/internal/domain"
)

// BackupGateway is the minimal interface behind the backup and restore routes.
type BackupGateway interface {
	Snapshot(ctx context.Context) (domain.Backup, error)
	Restore(ctx context.Context, b domain.Backup) error
}

// HandleBackup returns an HTTP handler for GET /admin/backup. The response is
// the full snapshot bundle, suitable for feeding straight back into restore.
func HandleBackup(svc BackupGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		backup, err := svc.Snapshot(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
		_ = json.NewEncoder(w).Encode(backup)
	}
}

// HandleRestore returns an HTTP handler for POST /admin/restore. A bundle that
// fails validation is rejected without touching the store.
func HandleRestore(svc BackupGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var backup domain.Backup
		if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := svc.Restore(r.Context(), backup); err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "restored"})
	}
}
