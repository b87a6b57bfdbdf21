package httpapi

import (
	"time"

	"github.com/tinoosan/journal/internal/journal"
)

// createEntryRequest carries only the caller-settable fields. System
// fields (id, created_at, updated_at) and anything else in the payload
// are dropped by decoding into this struct; clients never control them.
type createEntryRequest struct {
	Work      string            `json:"work"`
	Struggle  string            `json:"struggle"`
	Intention string            `json:"intention"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// updateEntryRequest is a partial field map; nil means "keep stored value".
type updateEntryRequest struct {
	Work      *string           `json:"work"`
	Struggle  *string           `json:"struggle"`
	Intention *string           `json:"intention"`
	Metadata  map[string]string `json:"metadata"`
}

type entryResponse struct {
	ID            string            `json:"id"`
	Work          string            `json:"work"`
	Struggle      string            `json:"struggle"`
	Intention     string            `json:"intention"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	SchemaVersion int               `json:"schema_version"`
}

type createEntryResponse struct {
	Detail string        `json:"detail"`
	Entry  entryResponse `json:"entry"`
}

type listEntriesResponse struct {
	Entries []entryResponse `json:"entries"`
	Count   int             `json:"count"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func toEntryResponse(e journal.Entry) entryResponse {
	var md map[string]string
	if len(e.Metadata) > 0 {
		md = e.Metadata.Clone()
	}
	return entryResponse{
		ID:            e.ID,
		Work:          e.Work,
		Struggle:      e.Struggle,
		Intention:     e.Intention,
		Metadata:      md,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		SchemaVersion: e.SchemaVersion,
	}
}

func toInput(req createEntryRequest) journal.Input {
	return journal.Input{
		Work:      req.Work,
		Struggle:  req.Struggle,
		Intention: req.Intention,
		Metadata:  req.Metadata,
	}
}

func toPatch(req updateEntryRequest) journal.Patch {
	return journal.Patch{
		Work:      req.Work,
		Struggle:  req.Struggle,
		Intention: req.Intention,
		Metadata:  req.Metadata,
	}
}
