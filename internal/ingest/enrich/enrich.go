// Package enrich implements the ingestion enricher (C10): turns a raw
// automation method or test case into a fully documented record with its
// four embedding vectors. Grounded on pkg/json's schema-string generation
// (used here to constrain the MADL prompt) and ai/tokenizer's tiktoken
// estimator (used to trim the source blob to the prompt budget).
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/madlrag/ragcore/ai/tokenizer"
	"github.com/madlrag/ragcore/internal/encoder"
	"github.com/madlrag/ragcore/internal/llm"
	"github.com/madlrag/ragcore/internal/record"
	pkgjson "github.com/madlrag/ragcore/pkg/json"
)

// madlSchema is the shape the LLM is asked to fill in. Field order here
// drives the generated JSON Schema's property order in the prompt.
type madlSchema struct {
	MethodName   string            `json:"method_name"`
	Summary      string            `json:"summary" jsonschema:"maxLength=280"`
	Description  string            `json:"description"`
	Intent       string            `json:"intent"`
	Params       map[string]string `json:"params"`
	Applies      string            `json:"applies"`
	Returns      string            `json:"returns"`
	Keywords     []string          `json:"keywords"`
	Owner        string            `json:"owner"`
	ExampleUsage string            `json:"example_usage"`
}

const (
	maxKeywords    = 15
	promptTokenCap = 3000
)

// Enricher wires the LLM gateway and embedding encoder needed to produce
// a documented, embedded record from raw source.
type Enricher struct {
	Gateway   *llm.Gateway
	Model     llm.Model
	Encoder   *encoder.Encoder
	Tokenizer *tokenizer.Tiktoken
}

// Enrich documents and embeds a record from its raw source text. source
// is the method's raw code or the test case's concatenated steps;
// flavor selects the main_vec formula.
func (e *Enricher) Enrich(ctx context.Context, source string, flavor record.Flavor) (record.Doc, record.Vectors, error) {
	trimmed := e.trimToBudget(ctx, source)

	prompt, err := e.buildPrompt(trimmed)
	if err != nil {
		return record.Doc{}, record.Vectors{}, fmt.Errorf("enrich: build prompt: %w", err)
	}

	out, err := e.Gateway.Call(ctx, e.Model, prompt)

	var doc record.Doc
	if err != nil {
		doc = fallbackDoc(source)
	} else {
		doc = parseMADL(out, source)
	}

	vectors, err := e.computeVectors(ctx, doc, source, flavor)
	if err != nil {
		return record.Doc{}, record.Vectors{}, err
	}

	return doc, vectors, nil
}

func (e *Enricher) trimToBudget(ctx context.Context, source string) string {
	if e.Tokenizer == nil {
		return source
	}
	n, err := e.Tokenizer.EstimateText(ctx, source)
	if err != nil || n <= promptTokenCap {
		return source
	}

	// Binary-search-free linear trim: tiktoken's ratio is near-uniform for
	// source code, so a single proportional cut converges in one pass for
	// the vast majority of inputs.
	ratio := float64(promptTokenCap) / float64(n)
	cut := int(float64(len(source)) * ratio)
	if cut < 0 || cut > len(source) {
		cut = len(source)
	}
	return source[:cut]
}

func (e *Enricher) buildPrompt(source string) (string, error) {
	schema, err := pkgjson.StringDefSchemaOf(madlSchema{})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Produce a JSON object matching this schema describing the automation record below:\n")
	b.WriteString(schema)
	b.WriteString("\n\nSource:\n")
	b.WriteString(source)
	return b.String(), nil
}

// parseMADL tries a strict JSON parse of the LLM's response, then an
// outermost-`{...}` extraction via gjson, then a regex-based fallback
// over the raw source plus canned defaults. It never returns an error:
// the ingestion enricher's documentation step always produces something.
func parseMADL(response, source string) record.Doc {
	if doc, ok := strictParse(response); ok {
		return doc
	}
	if doc, ok := braceExtractParse(response); ok {
		return doc
	}
	return fallbackDoc(source)
}

func strictParse(response string) (record.Doc, bool) {
	var m madlSchema
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &m); err != nil {
		return record.Doc{}, false
	}
	return docFromSchema(m), true
}

var outermostBraces = regexp.MustCompile(`(?s)\{.*\}`)

func braceExtractParse(response string) (record.Doc, bool) {
	match := outermostBraces.FindString(response)
	if match == "" {
		return record.Doc{}, false
	}
	if !gjson.Valid(match) {
		return record.Doc{}, false
	}

	result := gjson.Parse(match)
	m := madlSchema{
		MethodName:   result.Get("method_name").String(),
		Summary:      result.Get("summary").String(),
		Description:  result.Get("description").String(),
		Intent:       result.Get("intent").String(),
		Applies:      result.Get("applies").String(),
		Returns:      result.Get("returns").String(),
		Owner:        result.Get("owner").String(),
		ExampleUsage: result.Get("example_usage").String(),
	}
	result.Get("keywords").ForEach(func(_, v gjson.Result) bool {
		m.Keywords = append(m.Keywords, v.String())
		return true
	})
	params := map[string]string{}
	result.Get("params").ForEach(func(k, v gjson.Result) bool {
		params[k.String()] = v.String()
		return true
	})
	m.Params = params

	if m.MethodName == "" && m.Summary == "" && m.Description == "" {
		return record.Doc{}, false
	}
	return docFromSchema(m), true
}

var (
	signaturePattern = regexp.MustCompile(`(?m)^\s*(?:func|def|public|private|async function)\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)`)
)

// fallbackDoc extracts a method/function signature and its parameter
// names from raw source with a regex, falling back further to canned
// defaults if no signature is found at all.
func fallbackDoc(source string) record.Doc {
	name := "unknown"
	params := map[string]string{}

	if m := signaturePattern.FindStringSubmatch(source); m != nil {
		name = m[1]
		for _, p := range strings.Split(m[2], ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			paramName := strings.Fields(p)
			if len(paramName) > 0 {
				params[paramName[0]] = "unknown"
			}
		}
	}

	return record.Doc{
		Summary:  "Automated step: " + name,
		Keywords: []string{name},
		Params:   params,
		Intent:   "unknown",
		Owner:    "unknown",
		Reusable: false,
	}
}

func docFromSchema(m madlSchema) record.Doc {
	keywords := m.Keywords
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return record.Doc{
		Summary:  m.Summary,
		Keywords: keywords,
		Params:   m.Params,
		Intent:   m.Intent,
		Owner:    m.Owner,
		Reusable: true,
	}
}

// computeVectors derives the four embedding fields for a record: the
// summary, body, and doc vectors are always encode(text); main_vec is
// encode(summary + " " + body) for methods, and the element-wise mean of
// the other three vectors for test cases.
func (e *Enricher) computeVectors(ctx context.Context, doc record.Doc, body string, flavor record.Flavor) (record.Vectors, error) {
	summaryVec, err := e.Encoder.Encode(ctx, doc.Summary)
	if err != nil {
		return record.Vectors{}, err
	}
	bodyVec, err := e.Encoder.Encode(ctx, body)
	if err != nil {
		return record.Vectors{}, err
	}

	core := record.Core{Doc: doc, Body: body}
	docVec, err := e.Encoder.Encode(ctx, core.DocInput())
	if err != nil {
		return record.Vectors{}, err
	}

	var mainVec []float64
	switch flavor {
	case record.FlavorTestCase:
		mainVec = meanVector(summaryVec, bodyVec, docVec)
	default:
		mainVec, err = e.Encoder.Encode(ctx, core.MainVecInput())
		if err != nil {
			return record.Vectors{}, err
		}
	}

	return record.Vectors{
		Summary: summaryVec,
		Body:    bodyVec,
		Doc:     docVec,
		Main:    mainVec,
	}, nil
}

func meanVector(vecs ...[]float64) []float64 {
	dim := 0
	for _, v := range vecs {
		if len(v) > dim {
			dim = len(v)
		}
	}
	if dim == 0 {
		return []float64{}
	}

	sum := make([]float64, dim)
	count := 0
	for _, v := range vecs {
		if len(v) != dim {
			continue
		}
		count++
		for i, x := range v {
			sum[i] += x
		}
	}
	if count == 0 {
		return []float64{}
	}
	for i := range sum {
		sum[i] /= float64(count)
	}
	return sum
}
