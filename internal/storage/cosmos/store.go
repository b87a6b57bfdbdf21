package cosmos

// Package cosmos provides a document-store backend holding one document
// per entry, keyed by the entry id as both document id and partition key.
// Point operations address documents directly; list and delete-all run a
// full-container scan. Delete-all issues independent point deletes, there
// is no cross-item transaction.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/tinoosan/journal/internal/errs"
	"github.com/tinoosan/journal/internal/journal"
)

// Store wraps an azcosmos client bound to the entries container. All
// methods are safe for concurrent use.
type Store struct {
	client    *azcosmos.Client
	container *azcosmos.ContainerClient
}

// Open builds a Cosmos client for the endpoint using the ambient Azure
// credential chain and binds the entries container.
func Open(endpoint, database, container string) (*Store, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("cosmos credential: %w", err)
	}
	client, err := azcosmos.NewClient(endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("cosmos client: %w", err)
	}
	c, err := client.NewContainer(database, container)
	if err != nil {
		return nil, fmt.Errorf("cosmos container %s/%s: %w", database, container, err)
	}
	return &Store{client: client, container: c}, nil
}

// Close releases the store. The underlying client is a stateless HTTP
// pipeline with no handle to free; Close exists so callers can pair every
// Open with a release on all exit paths, like the other backends.
func (s *Store) Close() {}

// Ready reads the container properties to verify connectivity and access.
func (s *Store) Ready(ctx context.Context) error {
	_, err := s.container.Read(ctx, nil)
	return err
}

// Create persists a new document, failing with ErrConflict on id reuse.
func (s *Store) Create(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return journal.Entry{}, err
	}
	pk := azcosmos.NewPartitionKeyString(e.ID)
	if _, err := s.container.CreateItem(ctx, pk, body, nil); err != nil {
		if statusCode(err) == http.StatusConflict {
			return journal.Entry{}, errs.ErrConflict
		}
		return journal.Entry{}, err
	}
	return e, nil
}

// List scans the whole container. Document order is the natural storage
// order; no ordering is guaranteed.
func (s *Store) List(ctx context.Context) ([]journal.Entry, error) {
	out := make([]journal.Entry, 0)
	// An empty partition key makes the query fan out across partitions.
	pager := s.container.NewQueryItemsPager("select * from c", azcosmos.PartitionKey{}, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var e journal.Entry
			if err := json.Unmarshal(raw, &e); err != nil {
				return nil, fmt.Errorf("decode document: %w", err)
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// Get reads the document addressed by id. Absence is reported as ok=false.
func (s *Store) Get(ctx context.Context, id string) (journal.Entry, bool, error) {
	resp, err := s.container.ReadItem(ctx, azcosmos.NewPartitionKeyString(id), id, nil)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return journal.Entry{}, false, nil
		}
		return journal.Entry{}, false, err
	}
	var e journal.Entry
	if err := json.Unmarshal(resp.Value, &e); err != nil {
		return journal.Entry{}, false, fmt.Errorf("decode document %s: %w", id, err)
	}
	return e, true, nil
}

// Update reads the document, merges the patch and replaces the whole
// document (read-modify-write; there is no sub-field patch here).
func (s *Store) Update(ctx context.Context, id string, p journal.Patch) (journal.Entry, bool, error) {
	e, ok, err := s.Get(ctx, id)
	if err != nil || !ok {
		return journal.Entry{}, ok, err
	}
	merged := e.Merge(p, time.Now().UTC())
	body, err := json.Marshal(merged)
	if err != nil {
		return journal.Entry{}, false, err
	}
	if _, err := s.container.ReplaceItem(ctx, azcosmos.NewPartitionKeyString(id), id, body, nil); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return journal.Entry{}, false, nil
		}
		return journal.Entry{}, false, err
	}
	return merged, true, nil
}

// Delete removes the document addressed by id, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := s.container.DeleteItem(ctx, azcosmos.NewPartitionKeyString(id), id, nil); err != nil {
		if statusCode(err) == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteAll scans the container and point-deletes each document. A delete
// racing a concurrent remove is counted as already gone, not an error.
func (s *Store) DeleteAll(ctx context.Context) (int, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		existed, err := s.Delete(ctx, e.ID)
		if err != nil {
			return n, err
		}
		if existed {
			n++
		}
	}
	return n, nil
}

// statusCode extracts the HTTP status from an azcore response error, or 0.
func statusCode(err error) int {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}
