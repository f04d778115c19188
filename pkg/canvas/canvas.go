// Package canvas defines the serialization types for the layout engine.
//
// This package is the canonical wire format for arrangement inputs and
// outputs, used for JSON files, API responses and caching. It sits at the
// boundary between the numeric engine (pkg/arrange and friends) and the
// caller, which owns any persisted canvas document format and its merging
// with concurrent edits.
//
// # Core types
//
//   - [Item]: a note with its embedding and concept similarity
//   - [ItemSet]: arrangement input (concept embedding + items)
//   - [Card]: auxiliary text card anchored at a canvas position
//   - [Layout]: arrangement output (id → position map + cards)
//
// # File formats
//
// Inputs and outputs are pretty-printed JSON:
//
//	set, _ := canvas.ReadItemsFile("notes.json")
//	layout, _ := canvas.ReadLayoutFile("notes.layout.json")
//	canvas.WriteLayoutFile(layout, "notes.layout.json")
//
// Validation happens on read: an ItemSet must contain at least one item,
// and a Layout must contain at least one position.
package canvas

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jpmoo/thoughtlands-sub000/pkg/planar"
)

// Card kinds.
const (
	CardKindConcept        = "concept"
	CardKindClusterSummary = "clusterSummary"
	CardKindPathSummary    = "pathSummary"
)

// Item is one note to be arranged. Embeddings are fixed-dimensionality
// per invocation; ConceptSimilarity is the caller-supplied similarity of
// the note to the focal concept, typically in [-1, 1].
type Item struct {
	ID                string    `json:"id"`
	Embedding         []float64 `json:"embedding,omitempty"`
	ConceptSimilarity float64   `json:"concept_similarity"`
}

// ItemSet is the input to one arrangement invocation.
type ItemSet struct {
	Concept []float64 `json:"concept,omitempty"`
	Items   []Item    `json:"items"`
}

// Card is an auxiliary text element placed alongside the arranged items.
// Text may be empty at layout time and filled in asynchronously once a
// summarizer responds; positions are final either way.
type Card struct {
	ID     string          `json:"id"`
	Kind   string          `json:"kind"`
	Text   string          `json:"text,omitempty"`
	Anchor planar.Position `json:"anchor"`
}

// Layout is the output of one arrangement invocation.
type Layout struct {
	Mode      string                     `json:"mode"`
	Seed      uint64                     `json:"seed,omitempty"`
	Positions map[string]planar.Position `json:"positions"`
	Cards     []Card                     `json:"cards,omitempty"`

	// Fallbacks lists item ids whose gaggle placement exhausted its
	// sampling budget and was accepted best-effort; those positions may
	// violate the minimum spacing.
	Fallbacks []string `json:"fallbacks,omitempty"`
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Positions) == 0 {
		return Layout{}, fmt.Errorf("layout must contain positions")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// MarshalItemSet serializes an ItemSet to pretty-printed JSON bytes.
func MarshalItemSet(s ItemSet) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalItemSet deserializes JSON bytes into an ItemSet and validates it.
func UnmarshalItemSet(data []byte) (ItemSet, error) {
	var s ItemSet
	if err := json.Unmarshal(data, &s); err != nil {
		return ItemSet{}, fmt.Errorf("unmarshal item set: %w", err)
	}
	if len(s.Items) == 0 {
		return ItemSet{}, fmt.Errorf("item set must contain items")
	}
	seen := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		if it.ID == "" {
			return ItemSet{}, fmt.Errorf("item with empty id")
		}
		if seen[it.ID] {
			return ItemSet{}, fmt.Errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
	}
	return s, nil
}

// ReadItemsFile reads an ItemSet from a JSON file.
func ReadItemsFile(path string) (ItemSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ItemSet{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalItemSet(data)
}

// WriteItemsFile writes an ItemSet to a JSON file.
func WriteItemsFile(s ItemSet, path string) error {
	data, err := MarshalItemSet(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
