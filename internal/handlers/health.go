package handlers

import (
	"net/http"

	"github.com/apex/log"

	"github.com/BorisDmv/portfolio-api/internal/repository"
)

func Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InitDB creates any missing content table.
func InitDB(schema repository.SchemaManager, debug bool) http.HandlerFunc {
	logs := log.WithFields(log.Fields{"package": "portfolio", "module": "handlers", "component": "init-db"})
	return func(w http.ResponseWriter, r *http.Request) {
		if err := schema.EnsureSchema(r.Context()); err != nil {
			respondFailure(w, logs, debug, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Database initialized",
		})
	}
}
