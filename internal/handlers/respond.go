package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/apex/log"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	if allowed != "" {
		w.Header().Set("Allow", allowed)
	}
	respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// respondFailure maps err to a status. Internal errors are logged and only
// described to the client in debug mode.
func respondFailure(w http.ResponseWriter, logs *log.Entry, debug bool, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			respondJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error:  appErr.Message,
				Code:   appErr.Code,
				Fields: appErr.Fields,
			})
			return
		case models.CodeNotFound:
			respondJSON(w, http.StatusNotFound, models.ErrorResponse{
				Error: "record not found",
				Code:  appErr.Code,
			})
			return
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	logs.WithError(err).Error("Request failed")
	internal := models.NewInternalError(err)
	resp := models.ErrorResponse{Error: internal.Message, Code: internal.Code}
	if debug {
		resp.Details = err.Error()
	}
	respondJSON(w, http.StatusInternalServerError, resp)
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

// parseID reads the numeric id query parameter.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
