package embedding

import (
	"context"
	"net/http"
	"time"

	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
	"github.com/jpmoo/thoughtlands-sub000/pkg/httputil"
	"github.com/jpmoo/thoughtlands-sub000/pkg/observability"
)

// HTTPSource fetches embeddings from an external embedding service.
// The service receives {"item_id": "..."} and responds with
// {"vector": [...], "found": true|false}.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source backed by the service at url.
// A nil client uses a client with a 30 second timeout.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{url: url, client: client}
}

type embedRequest struct {
	ItemID string `json:"item_id"`
}

type embedResponse struct {
	Vector []float64 `json:"vector"`
	Found  bool      `json:"found"`
}

// Fetch retrieves an embedding from the service, retrying transient failures.
func (s *HTTPSource) Fetch(ctx context.Context, itemID string) ([]float64, bool, error) {
	start := time.Now()

	var resp embedResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		return httputil.DoJSON(ctx, s.client, s.url, embedRequest{ItemID: itemID}, &resp)
	})
	observability.Collaborator().OnEmbeddingFetch(ctx, itemID, resp.Found, time.Since(start), err)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCollaborator, err, "fetch embedding for %s", itemID)
	}
	if !resp.Found || len(resp.Vector) == 0 {
		return nil, false, nil
	}
	return resp.Vector, true, nil
}

// Ensure HTTPSource implements Source.
var _ Source = (*HTTPSource)(nil)
