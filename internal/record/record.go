// Package record models the persisted automation records (methods and test
// cases) that the retrieval and ingestion pipelines operate on: a shared
// core plus a flavor-specific extension block, per the tagged-variant
// design used for content parts in ai/model/chat/request.
package record

import (
	"strings"
	"time"
)

// Flavor distinguishes the two record shapes that share a Core.
type Flavor string

const (
	FlavorMethod   Flavor = "method"
	FlavorTestCase Flavor = "testcase"
)

// Doc is the structured documentation block attached to every record.
type Doc struct {
	Summary     string            `json:"summary"`
	Keywords    []string          `json:"keywords"`
	Params      map[string]string `json:"params"`
	Intent      string            `json:"intent"`
	Owner       string            `json:"owner"`
	Reusable    bool              `json:"reusable"`
	Created     time.Time         `json:"created"`
	LastUpdated time.Time         `json:"last_updated"`
}

// Vectors holds the four embedding fields that exist together or not at
// all, per the record invariant: identical non-zero dimensionality,
// L2-normalized.
type Vectors struct {
	Summary []float64 `json:"-"`
	Body    []float64 `json:"-"`
	Doc     []float64 `json:"-"`
	Main    []float64 `json:"-"`
}

// Empty reports whether no vectors have been computed yet.
func (v Vectors) Empty() bool {
	return len(v.Main) == 0
}

// Dim returns the shared dimensionality of the four vectors, or 0 if empty.
func (v Vectors) Dim() int {
	return len(v.Main)
}

// Consistent reports whether all four vectors exist and share one
// dimensionality, per the record invariant in the data model.
func (v Vectors) Consistent() bool {
	if v.Empty() {
		return len(v.Summary) == 0 && len(v.Body) == 0 && len(v.Doc) == 0
	}
	d := len(v.Main)
	return len(v.Summary) == d && len(v.Body) == d && len(v.Doc) == d && d > 0
}

// Core is the shared identity and content every record carries regardless
// of flavor. Scoring, reranking, and caching operate on Core alone.
type Core struct {
	ID          string
	Flavor      Flavor
	Name        string
	Description string
	Body        string // raw method source or concatenated test steps
	Doc         Doc
	Tags        []string
	Priority    string
	Platform    string
	Feature     string // present only where a feature field exists (variant B)
	Popularity  float64
	Vectors     Vectors
}

// Method is a record whose Body is the raw source of an automation method.
type Method struct {
	Core
	Signature string
	Locators  []string
}

// TestCase is a record whose Body is the concatenated steps of a test case.
type TestCase struct {
	Core
	Steps []string
}

// MainVecInput returns the text fed to encode() when computing main_vec for
// the method flavor: the concatenation of summary and body. Testcase flavor
// instead takes the mean of the three component vectors — see
// enrich.computeVectors, since that does not need a text input.
func (c *Core) MainVecInput() string {
	return strings.TrimSpace(c.Doc.Summary + " " + c.Body)
}

// DocInput returns the text serialization of the documentation block fed to
// encode() when computing doc_vec.
func (c *Core) DocInput() string {
	var b strings.Builder
	b.WriteString(c.Doc.Summary)
	b.WriteString(" ")
	b.WriteString(c.Doc.Intent)
	for _, k := range c.Doc.Keywords {
		b.WriteString(" ")
		b.WriteString(k)
	}
	return strings.TrimSpace(b.String())
}

// DiffRequiresReembed reports whether updating old into new must recompute
// all four vector fields: true whenever summary, body, params, or keywords
// changed. Params and keywords are compared order-insensitively for
// keywords (a reorder is not a semantic change) and by full map equality
// for params.
func DiffRequiresReembed(old, next *Core) bool {
	if old == nil || next == nil {
		return true
	}
	if old.Doc.Summary != next.Doc.Summary {
		return true
	}
	if old.Body != next.Body {
		return true
	}
	if !paramsEqual(old.Doc.Params, next.Doc.Params) {
		return true
	}
	if !keywordsEqual(old.Doc.Keywords, next.Doc.Keywords) {
		return true
	}
	return false
}

func paramsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func keywordsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, k := range a {
		seen[strings.ToLower(k)]++
	}
	for _, k := range b {
		k = strings.ToLower(k)
		if seen[k] == 0 {
			return false
		}
		seen[k]--
	}
	return true
}
