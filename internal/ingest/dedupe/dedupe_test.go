package dedupe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/madlrag/ragcore/internal/llm"
	"github.com/madlrag/ragcore/internal/vectorstore"
)

func gatewayWith(fn func(context.Context, string) (string, error)) (*llm.Gateway, llm.Model) {
	return llm.NewGateway(llm.Config{MaxConcurrency: 1}), llm.ModelFunc(fn)
}

func TestSummarizeDisabledUsesFallback(t *testing.T) {
	p := &Pipeline{Enabled: false}
	got := p.Summarize(context.Background(), "Click the login button", "step one step two")
	assert.Equal(t, "Click the login button step one step two", got)
}

func TestSummarizeFallsBackWhenTooFewWords(t *testing.T) {
	gw, model := gatewayWith(func(context.Context, string) (string, error) { return "too short", nil })
	p := &Pipeline{Enabled: true, APIKey: "k", Gateway: gw, Model: model}
	got := p.Summarize(context.Background(), "description text here", "steps text here")
	assert.Equal(t, "description text here steps text here", got)
}

func TestSummarizeTakesFirstTwelveWordsOnSuccess(t *testing.T) {
	long := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen"
	gw, model := gatewayWith(func(context.Context, string) (string, error) { return long, nil })
	p := &Pipeline{Enabled: true, APIKey: "k", Gateway: gw, Model: model}
	got := p.Summarize(context.Background(), "d", "s")
	assert.Equal(t, "one two three four five six seven eight nine ten eleven twelve", got)
}

func TestSummarizeFallsBackOnLLMError(t *testing.T) {
	gw, model := gatewayWith(func(context.Context, string) (string, error) { return "", errors.New("boom") })
	p := &Pipeline{Enabled: true, APIKey: "k", Gateway: gw, Model: model}
	got := p.Summarize(context.Background(), "abc", "def")
	assert.Equal(t, "abc def", got)
}

func TestVerifyFailsOpenWhenDisabled(t *testing.T) {
	p := &Pipeline{Enabled: false}
	v := p.Verify(context.Background(), "summary", &Match{ID: "x"})
	assert.False(t, v.Duplicate)
}

func TestVerifyFailsOpenWhenNoMatch(t *testing.T) {
	gw, model := gatewayWith(func(context.Context, string) (string, error) { return "DUPLICATE", nil })
	p := &Pipeline{Enabled: true, APIKey: "k", Gateway: gw, Model: model, MaxRetries: 1}
	v := p.Verify(context.Background(), "summary", nil)
	assert.False(t, v.Duplicate)
}

func TestVerifyDetectsDuplicateToken(t *testing.T) {
	gw, model := gatewayWith(func(context.Context, string) (string, error) { return "This is a DUPLICATE of an existing test.", nil })
	p := &Pipeline{Enabled: true, APIKey: "k", Gateway: gw, Model: model, MaxRetries: 1}
	v := p.Verify(context.Background(), "summary", &Match{ID: "m1"})
	assert.True(t, v.Duplicate)
	assert.Equal(t, "m1", v.MatchID)
}

func TestVerifyDetectsUniqueToken(t *testing.T) {
	gw, model := gatewayWith(func(context.Context, string) (string, error) { return "unique test case", nil })
	p := &Pipeline{Enabled: true, APIKey: "k", Gateway: gw, Model: model, MaxRetries: 1}
	v := p.Verify(context.Background(), "summary", &Match{ID: "m1"})
	assert.False(t, v.Duplicate)
}

func TestVerifyFailsOpenOnAmbiguousResponse(t *testing.T) {
	gw, model := gatewayWith(func(context.Context, string) (string, error) { return "not sure", nil })
	p := &Pipeline{Enabled: true, APIKey: "k", Gateway: gw, Model: model, MaxRetries: 2}
	v := p.Verify(context.Background(), "summary", &Match{ID: "m1"})
	assert.False(t, v.Duplicate)
}

func TestVerifyFailsOpenWhenRetriesExhausted(t *testing.T) {
	gw, model := gatewayWith(func(context.Context, string) (string, error) { return "", errors.New("down") })
	p := &Pipeline{Enabled: true, APIKey: "k", Gateway: gw, Model: model, MaxRetries: 2}
	v := p.Verify(context.Background(), "summary", &Match{ID: "m1"})
	assert.False(t, v.Duplicate)
}

func TestClosestMatchPicksTopHit(t *testing.T) {
	hits := []vectorstore.Hit{
		{ID: "a", Score: 0.9, Document: map[string]any{"name": "Login test"}},
		{ID: "b", Score: 0.5, Document: map[string]any{"name": "Other test"}},
	}
	m := ClosestMatch(hits)
	assert.Equal(t, "a", m.ID)
	assert.Equal(t, "Login test", m.Name)
}

func TestClosestMatchNilOnEmpty(t *testing.T) {
	assert.Nil(t, ClosestMatch(nil))
}
