package summarize

import (
	"context"
	"net/http"
	"time"

	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
	"github.com/jpmoo/thoughtlands-sub000/pkg/httputil"
	"github.com/jpmoo/thoughtlands-sub000/pkg/observability"
)

// HTTPSummarizer calls an external summarization service.
// The service receives {"prompt": "...", "sources": [...]} and responds
// with {"summary": "..."}.
type HTTPSummarizer struct {
	url    string
	client *http.Client
}

// NewHTTPSummarizer creates a summarizer backed by the service at url.
// A nil client uses a client with a 60 second timeout; summarization
// calls are slower than embedding fetches.
func NewHTTPSummarizer(url string, client *http.Client) *HTTPSummarizer {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPSummarizer{url: url, client: client}
}

type summarizeRequest struct {
	Prompt  string   `json:"prompt"`
	Sources []string `json:"sources"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize calls the service, retrying transient failures.
// An empty summary from the service reports ok=false.
func (s *HTTPSummarizer) Summarize(ctx context.Context, prompt string, sources []string) (string, bool, error) {
	start := time.Now()

	var resp summarizeResponse
	err := httputil.RetryWithBackoff(ctx, func() error {
		return httputil.DoJSON(ctx, s.client, s.url, summarizeRequest{Prompt: prompt, Sources: sources}, &resp)
	})
	observability.Collaborator().OnSummarize(ctx, "http", len(sources), time.Since(start), err)
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeCollaborator, err, "summarize %d sources", len(sources))
	}
	if resp.Summary == "" {
		return "", false, nil
	}
	return resp.Summary, true, nil
}

// Ensure HTTPSummarizer implements Summarizer.
var _ Summarizer = (*HTTPSummarizer)(nil)
