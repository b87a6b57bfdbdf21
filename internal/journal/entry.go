package journal

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tinoosan/journal/internal/errs"
	"github.com/tinoosan/journal/internal/meta"
)

const (
	// SchemaVersion tags the stored shape of an entry for forward compatibility.
	SchemaVersion = 1
	// MaxFieldLen bounds each prompt answer, counted in runes after normalization.
	MaxFieldLen = 256
)

// Entry is one journal record: the answers to the three daily prompts
// plus identity, timestamps and extension attributes. Entries are passed
// by value across layer boundaries.
type Entry struct {
	ID            string        `json:"id"`
	Work          string        `json:"work"`
	Struggle      string        `json:"struggle"`
	Intention     string        `json:"intention"`
	Metadata      meta.Metadata `json:"metadata,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	SchemaVersion int           `json:"schema_version"`
}

// Input carries the untrusted prompt answers for a new entry. The system
// fields (id, timestamps) are never part of it; New assigns them.
type Input struct {
	Work      string
	Struggle  string
	Intention string
	Metadata  map[string]string
}

// Patch is a partial update. Nil fields keep their stored values; a
// non-nil Metadata replaces the stored map wholesale. The id and
// timestamps are not patchable.
type Patch struct {
	Work      *string
	Struggle  *string
	Intention *string
	Metadata  map[string]string
}

// FieldError reports which prompt field failed validation and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

// Is lets callers match any FieldError with errors.Is(err, errs.ErrInvalid).
func (e *FieldError) Is(target error) bool { return target == errs.ErrInvalid }

// New builds a validated Entry from untrusted input. It normalizes the
// three prompt answers, assigns a fresh UUID and sets both timestamps to
// the same instant.
func New(in Input) (Entry, error) {
	work, err := normalizeField("work", in.Work)
	if err != nil {
		return Entry{}, err
	}
	struggle, err := normalizeField("struggle", in.Struggle)
	if err != nil {
		return Entry{}, err
	}
	intention, err := normalizeField("intention", in.Intention)
	if err != nil {
		return Entry{}, err
	}
	md := meta.New(in.Metadata)
	if err := md.Validate(); err != nil {
		return Entry{}, &FieldError{Field: "metadata", Reason: err.Error()}
	}
	now := time.Now().UTC()
	return Entry{
		ID:            uuid.NewString(),
		Work:          work,
		Struggle:      struggle,
		Intention:     intention,
		Metadata:      md,
		CreatedAt:     now,
		UpdatedAt:     now,
		SchemaVersion: SchemaVersion,
	}, nil
}

// Normalize validates and normalizes the supplied patch fields, returning
// a patch safe to hand to a storage backend. Callers run it before any
// backend call so invalid input never reaches storage.
func (p Patch) Normalize() (Patch, error) {
	out := Patch{Metadata: p.Metadata}
	if p.Work != nil {
		v, err := normalizeField("work", *p.Work)
		if err != nil {
			return Patch{}, err
		}
		out.Work = &v
	}
	if p.Struggle != nil {
		v, err := normalizeField("struggle", *p.Struggle)
		if err != nil {
			return Patch{}, err
		}
		out.Struggle = &v
	}
	if p.Intention != nil {
		v, err := normalizeField("intention", *p.Intention)
		if err != nil {
			return Patch{}, err
		}
		out.Intention = &v
	}
	if p.Metadata != nil {
		if err := meta.New(p.Metadata).Validate(); err != nil {
			return Patch{}, &FieldError{Field: "metadata", Reason: err.Error()}
		}
	}
	return out, nil
}

// Merge applies a normalized patch to the stored entry and refreshes
// updated_at. It is the read-modify-write step backends run; validation
// has already happened in Patch.Normalize.
func (e Entry) Merge(p Patch, now time.Time) Entry {
	out := e
	if p.Work != nil {
		out.Work = *p.Work
	}
	if p.Struggle != nil {
		out.Struggle = *p.Struggle
	}
	if p.Intention != nil {
		out.Intention = *p.Intention
	}
	if p.Metadata != nil {
		out.Metadata = meta.New(p.Metadata)
	}
	out.UpdatedAt = now.UTC()
	return out
}

// Day returns the UTC calendar day the entry was created on.
func (e Entry) Day() string { return e.CreatedAt.UTC().Format("2006-01-02") }

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

var markupEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// normalizeField trims edges, collapses internal whitespace runs to single
// spaces, enforces the 1..MaxFieldLen length bound and neutralizes angle
// brackets so stored text is inert on any rendering surface. The length
// check runs before escaping so escape expansion never rejects input.
func normalizeField(name, raw string) (string, error) {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return "", &FieldError{Field: name, Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(s) > MaxFieldLen {
		return "", &FieldError{Field: name, Reason: "must be at most 256 characters"}
	}
	return markupEscaper.Replace(s), nil
}
