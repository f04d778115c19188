package summarize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jpmoo/thoughtlands-sub000/pkg/cache"
	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
)

func TestNoop(t *testing.T) {
	_, ok, err := Noop{}.Summarize(context.Background(), "p", []string{"a"})
	if err != nil || ok {
		t.Errorf("Noop: ok=%v err=%v, want false/nil", ok, err)
	}
}

func TestStatic(t *testing.T) {
	text, ok, err := Static{}.Summarize(context.Background(), "p", []string{"a", "b"})
	if err != nil || !ok {
		t.Fatalf("Static: ok=%v err=%v", ok, err)
	}
	if !strings.Contains(text, "a, b") {
		t.Errorf("text = %q", text)
	}

	if _, ok, _ := (Static{}).Summarize(context.Background(), "p", nil); ok {
		t.Error("Static with no sources should report no summary")
	}
}

func TestPrompts(t *testing.T) {
	if p := ClusterPrompt(3); !strings.Contains(p, "3") {
		t.Errorf("ClusterPrompt = %q", p)
	}
	if p := PathPrompt("what did I learn about soil?"); !strings.Contains(p, "soil") {
		t.Errorf("PathPrompt = %q", p)
	}
}

func TestHTTPSummarizer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"summary":"notes about composting"}`))
	}))
	defer srv.Close()

	s := NewHTTPSummarizer(srv.URL, srv.Client())
	text, ok, err := s.Summarize(context.Background(), "p", []string{"a"})
	if err != nil || !ok {
		t.Fatalf("Summarize: ok=%v err=%v", ok, err)
	}
	if text != "notes about composting" {
		t.Errorf("text = %q", text)
	}
}

func TestHTTPSummarizerEmptySummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"summary":""}`))
	}))
	defer srv.Close()

	s := NewHTTPSummarizer(srv.URL, srv.Client())
	_, ok, err := s.Summarize(context.Background(), "p", []string{"a"})
	if err != nil || ok {
		t.Errorf("empty summary: ok=%v err=%v, want false/nil", ok, err)
	}
}

func TestHTTPSummarizerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewHTTPSummarizer(srv.URL, srv.Client())
	_, _, err := s.Summarize(context.Background(), "p", []string{"a"})
	if !errors.Is(err, errors.ErrCodeCollaborator) {
		t.Errorf("err = %v, want COLLABORATOR_FAILURE", err)
	}
}

type countingSummarizer struct {
	inner Summarizer
	calls int
}

func (c *countingSummarizer) Summarize(ctx context.Context, prompt string, sources []string) (string, bool, error) {
	c.calls++
	return c.inner.Summarize(ctx, prompt, sources)
}

func TestCached(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	inner := &countingSummarizer{inner: Static{}}
	cached := NewCached(inner, store, nil, 0)
	ctx := context.Background()

	t1, ok, err := cached.Summarize(ctx, "p", []string{"a", "b"})
	if err != nil || !ok {
		t.Fatalf("first call: ok=%v err=%v", ok, err)
	}
	t2, _, _ := cached.Summarize(ctx, "p", []string{"a", "b"})
	if inner.calls != 1 {
		t.Errorf("calls = %d, want 1", inner.calls)
	}
	if t1 != t2 {
		t.Errorf("cached text differs: %q vs %q", t1, t2)
	}

	// Different sources miss the cache.
	cached.Summarize(ctx, "p", []string{"a"})
	if inner.calls != 2 {
		t.Errorf("calls = %d, want 2", inner.calls)
	}
}
