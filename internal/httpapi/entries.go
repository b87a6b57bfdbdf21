package httpapi

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/journal/internal/errs"
)

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ctxKeyCreateEntry).(createEntryRequest)
	if !ok {
		internalError(w)
		return
	}
	saved, err := s.svc.Create(r.Context(), toInput(req))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDuplicateDay):
			conflict(w, "You already have an entry for today.", "duplicate_day")
		case errors.Is(err, errs.ErrConflict):
			conflict(w, "entry already exists", "conflict")
		case errors.Is(err, errs.ErrInvalid):
			badRequest(w, err.Error())
		default:
			s.log.Error("create entry", "err", err)
			internalError(w)
		}
		return
	}
	toJSON(w, http.StatusCreated, createEntryResponse{
		Detail: "Entry created successfully",
		Entry:  toEntryResponse(saved),
	})
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.List(r.Context())
	if err != nil {
		s.log.Error("list entries", "err", err)
		internalError(w)
		return
	}
	items := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toEntryResponse(e))
	}
	toJSON(w, http.StatusOK, listEntriesResponse{Entries: items, Count: len(items)})
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.log.Error("get entry", "id", id, "err", err)
		internalError(w)
		return
	}
	if !ok {
		notFound(w)
		return
	}
	toJSON(w, http.StatusOK, toEntryResponse(e))
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ctxKeyUpdateEntry).(updateEntryRequest)
	if !ok {
		internalError(w)
		return
	}
	id := chi.URLParam(r, "id")
	e, found, err := s.svc.Update(r.Context(), id, toPatch(req))
	if err != nil {
		if errors.Is(err, errs.ErrInvalid) {
			badRequest(w, err.Error())
			return
		}
		s.log.Error("update entry", "id", id, "err", err)
		internalError(w)
		return
	}
	if !found {
		notFound(w)
		return
	}
	toJSON(w, http.StatusOK, toEntryResponse(e))
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existed, err := s.svc.Delete(r.Context(), id)
	if err != nil {
		s.log.Error("delete entry", "id", id, "err", err)
		internalError(w)
		return
	}
	if !existed {
		notFound(w)
		return
	}
	toJSON(w, http.StatusOK, detailResponse{Detail: "Entry deleted"})
}

// deleteAllEntries clears the store unconditionally. Destructive; there
// is no confirmation step.
func (s *Server) deleteAllEntries(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.DeleteAll(r.Context()); err != nil {
		s.log.Error("delete all entries", "err", err)
		internalError(w)
		return
	}
	toJSON(w, http.StatusOK, detailResponse{Detail: "All entries deleted"})
}
