package content

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed byte) *rand.Rand {
	var key [32]byte
	key[0] = seed
	return rand.New(rand.NewChaCha8(key))
}

func TestExpandFillsPlaceholders(t *testing.T) {
	r := newRand(1)
	pools := map[string][]string{"component": {"dashboard"}, "tech": {"React"}}
	got := Expand(r, "Migrate {component} to {tech}", pools)
	assert.Equal(t, "Migrate dashboard to React", got)
}

func TestExpandLeavesUnknownPlaceholders(t *testing.T) {
	r := newRand(2)
	got := Expand(r, "Fix {mystery} soon", map[string][]string{"component": {"API"}})
	assert.Equal(t, "Fix {mystery} soon", got)
}

func TestExpandRepeatedSlot(t *testing.T) {
	r := newRand(3)
	got := Expand(r, "{word} and {word}", map[string][]string{"word": {"x"}})
	assert.Equal(t, "x and x", got)
}

func TestTemplateDeterminism(t *testing.T) {
	req := Request{Kind: TaskName, WorkflowType: "Engineering"}
	a := NewTemplate(newRand(4))
	b := NewTemplate(newRand(4))
	for i := 0; i < 200; i++ {
		sa, err := a.GenerateText(context.Background(), req)
		require.NoError(t, err)
		sb, err := b.GenerateText(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, sa, sb, "draw %d", i)
		require.NotContains(t, sa, "{", "unexpanded placeholder in %q", sa)
	}
}

func TestTemplateUnknownWorkflowFallsBack(t *testing.T) {
	tpl := NewTemplate(newRand(5))
	s, err := tpl.GenerateText(context.Background(), Request{Kind: TaskName, WorkflowType: "Legal"})
	require.NoError(t, err)
	assert.NotEmpty(t, s)
}

func TestTemplateDescriptionShapes(t *testing.T) {
	tpl := NewTemplate(newRand(6))
	req := Request{Kind: TaskDescription, ParentTaskName: "Fix API timeout"}
	empty, short, detailed := 0, 0, 0
	for i := 0; i < 2000; i++ {
		s, err := tpl.GenerateText(context.Background(), req)
		require.NoError(t, err)
		switch {
		case s == "":
			empty++
		case strings.HasPrefix(s, "Work on:"):
			short++
		default:
			detailed++
		}
	}
	assert.InDelta(t, 0.2, float64(empty)/2000, 0.05)
	assert.InDelta(t, 0.5, float64(short)/2000, 0.05)
	assert.InDelta(t, 0.3, float64(detailed)/2000, 0.05)
}

type failingProvider struct {
	calls int
	err   error
}

func (p *failingProvider) GenerateText(ctx context.Context, req Request) (string, error) {
	p.calls++
	return "", p.err
}

type fixedProvider struct{ s string }

func (p fixedProvider) GenerateText(ctx context.Context, req Request) (string, error) {
	return p.s, nil
}

func TestRetryingFallsBackAfterExhaustion(t *testing.T) {
	primary := &failingProvider{err: errors.New("upstream down")}
	var reported *UnavailableError
	p := &Retrying{
		Primary:       primary,
		Fallback:      fixedProvider{s: "fallback text"},
		Attempts:      3,
		Backoff:       time.Millisecond,
		OnUnavailable: func(err *UnavailableError) { reported = err },
	}
	s, err := p.GenerateText(context.Background(), Request{Kind: CommentBody})
	require.NoError(t, err, "provider failure must never fail the run")
	assert.Equal(t, "fallback text", s)
	assert.Equal(t, 3, primary.calls)
	require.NotNil(t, reported)
	assert.Equal(t, 3, reported.Attempts)
	assert.ErrorIs(t, reported, primary.err)
}

func TestRetryingStopsAfterFirstSuccess(t *testing.T) {
	p := &Retrying{
		Primary:  fixedProvider{s: "primary text"},
		Fallback: fixedProvider{s: "fallback text"},
		Attempts: 3,
	}
	s, err := p.GenerateText(context.Background(), Request{Kind: CommentBody})
	require.NoError(t, err)
	assert.Equal(t, "primary text", s)
}

func TestRetryingHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	primary := &failingProvider{err: errors.New("slow")}
	p := &Retrying{
		Primary:  primary,
		Fallback: fixedProvider{s: "fallback text"},
		Attempts: 5,
		Backoff:  time.Hour,
	}
	s, err := p.GenerateText(ctx, Request{Kind: CommentBody})
	require.NoError(t, err)
	assert.Equal(t, "fallback text", s)
	assert.Equal(t, 1, primary.calls, "cancelled context must cut the retry loop")
}
