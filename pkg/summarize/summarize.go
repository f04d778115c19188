// Package summarize abstracts the text summarization collaborator.
//
// Some layout modes attach summary cards to the canvas: a label for each
// cluster in clustered walkabout views, and a closing synthesis card at
// the end of a path. The engine delegates the actual text generation to
// a [Summarizer] and degrades gracefully when none is available: a
// missing or failing summarizer means the card is omitted, never that
// the layout fails.
package summarize

import (
	"context"
	"fmt"
	"strings"
)

// Summarizer generates summary text from source notes.
type Summarizer interface {
	// Summarize produces text for the given prompt and source texts.
	// The bool reports whether a summary was produced; absence is not
	// an error. Callers omit the card when ok is false.
	Summarize(ctx context.Context, prompt string, sources []string) (string, bool, error)
}

// ClusterPrompt builds the prompt for labeling a cluster of notes.
func ClusterPrompt(memberCount int) string {
	return fmt.Sprintf("Summarize the shared theme of these %d notes in one short phrase.", memberCount)
}

// PathPrompt builds the prompt for the synthesis card at the end of a path.
// The concept is the question or theme the path was built around.
func PathPrompt(concept string) string {
	return fmt.Sprintf("Explain how these notes, taken together, answer: %s", concept)
}

// Noop is a summarizer that never produces a summary.
// Layouts built with it carry no summary cards.
type Noop struct{}

// Summarize always reports no summary.
func (Noop) Summarize(ctx context.Context, prompt string, sources []string) (string, bool, error) {
	return "", false, nil
}

// Static returns canned summaries, joining the sources. Used in tests and
// offline preview runs where the text itself does not matter.
type Static struct {
	// Prefix is prepended to each summary. Defaults to "Summary of".
	Prefix string
}

// Summarize joins the source texts under the configured prefix.
func (s Static) Summarize(ctx context.Context, prompt string, sources []string) (string, bool, error) {
	if len(sources) == 0 {
		return "", false, nil
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = "Summary of"
	}
	return fmt.Sprintf("%s %s", prefix, strings.Join(sources, ", ")), true, nil
}

// Ensure implementations satisfy Summarizer.
var (
	_ Summarizer = Noop{}
	_ Summarizer = Static{}
)
