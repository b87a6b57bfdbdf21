package entry

import (
	"context"

	"github.com/tinoosan/journal/internal/errs"
	"github.com/tinoosan/journal/internal/journal"
)

// Store defines the persistence capabilities the service needs. The
// postgres, cosmos and memory backends all satisfy it; each owns its own
// connection/client lifecycle. Point lookups report absence as a boolean,
// never an error; callers decide how to translate it.
type Store interface {
	Create(ctx context.Context, e journal.Entry) (journal.Entry, error)
	List(ctx context.Context) ([]journal.Entry, error)
	Get(ctx context.Context, id string) (journal.Entry, bool, error)
	Update(ctx context.Context, id string, p journal.Patch) (journal.Entry, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int, error)
}

// Service sits between the HTTP handlers and a Store, adding the
// cross-entry business rule no single backend call can express: at most
// one entry per UTC calendar day. It holds no state of its own.
type Service interface {
	Create(ctx context.Context, in journal.Input) (journal.Entry, error)
	List(ctx context.Context) ([]journal.Entry, error)
	Get(ctx context.Context, id string) (journal.Entry, bool, error)
	Update(ctx context.Context, id string, p journal.Patch) (journal.Entry, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int, error)
}

type service struct {
	store Store
}

func New(store Store) Service { return &service{store: store} }

// Create validates the input, rejects a second entry on the same UTC
// calendar day and persists. Validation fails before any backend call so
// invalid input never causes a partial write.
func (s *service) Create(ctx context.Context, in journal.Input) (journal.Entry, error) {
	e, err := journal.New(in)
	if err != nil {
		return journal.Entry{}, err
	}
	// Full scan: at one entry per day the table stays tiny, and a scan
	// works identically on every backend. The relational schema backs
	// this check with a unique index on the derived day, so two creates
	// racing past it still cannot both land there.
	existing, err := s.store.List(ctx)
	if err != nil {
		return journal.Entry{}, err
	}
	for _, prev := range existing {
		if journal.SameDay(prev.CreatedAt, e.CreatedAt) {
			return journal.Entry{}, errs.ErrDuplicateDay
		}
	}
	return s.store.Create(ctx, e)
}

func (s *service) List(ctx context.Context) ([]journal.Entry, error) {
	return s.store.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (journal.Entry, bool, error) {
	return s.store.Get(ctx, id)
}

// Update normalizes the patch, then delegates the merge to the backend.
// A patch cannot carry created_at, so the one-per-day rule cannot be
// violated here and is not re-checked.
func (s *service) Update(ctx context.Context, id string, p journal.Patch) (journal.Entry, bool, error) {
	norm, err := p.Normalize()
	if err != nil {
		return journal.Entry{}, false, err
	}
	return s.store.Update(ctx, id, norm)
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

func (s *service) DeleteAll(ctx context.Context) (int, error) {
	return s.store.DeleteAll(ctx)
}
