package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"

	"github.com/BorisDmv/portfolio-api/internal/models"
	"github.com/BorisDmv/portfolio-api/internal/repository"
)

const resourceMethods = "GET, POST, PUT, DELETE, OPTIONS"

// Resource serves the uniform CRUD endpoint of one kind, routing on method.
type Resource[T models.Record] struct {
	kind     models.Kind
	repo     repository.Repository[T]
	validate *validator.Validate
	maxBody  int64
	debug    bool
	logs     *log.Entry
}

func NewResource[T models.Record](
	kind models.Kind,
	repo repository.Repository[T],
	validate *validator.Validate,
	maxBody int64,
	debug bool,
) *Resource[T] {
	return &Resource[T]{
		kind:     kind,
		repo:     repo,
		validate: validate,
		maxBody:  maxBody,
		debug:    debug,
		logs: log.WithFields(log.Fields{
			"package": "portfolio", "module": "handlers", "kind": kind.String(),
		}),
	}
}

func (h *Resource[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		methodNotAllowed(w, resourceMethods)
	}
}

func (h *Resource[T]) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context())
	if err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Resource[T]) create(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.repo.Create(r.Context(), rec)
	if err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "missing or invalid id")
		return
	}
	rec, ok := h.decode(w, r)
	if !ok {
		return
	}
	updated, err := h.repo.Update(r.Context(), id, rec)
	if err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Resource[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "missing or invalid id")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Resource[T]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var rec T
	body, err := readBody(w, r, h.maxBody)
	if err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return rec, false
	}
	rec, err = models.DecodeRecord[T](h.validate, body)
	if err != nil {
		respondFailure(w, h.logs, h.debug, err)
		return rec, false
	}
	return rec, true
}
