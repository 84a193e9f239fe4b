// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the assist pipeline

package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCapability scripts responses for pipeline tests.
type fakeCapability struct {
	enhancement *QuestionEnhancement
	answer      string
	suggestion  string
	analysis    string
	err         error
}

func (f *fakeCapability) EnhanceQuestion(_ context.Context, _, _ string) (*QuestionEnhancement, error) {
	return f.enhancement, f.err
}

func (f *fakeCapability) EnhanceAnswer(_ context.Context, _ string) (string, error) {
	return f.answer, f.err
}

func (f *fakeCapability) SuggestAnswer(_ context.Context, _, _ string) (string, error) {
	return f.suggestion, f.err
}

func (f *fakeCapability) AnalyzeCode(_ context.Context, _, _ string) (string, error) {
	return f.analysis, f.err
}

// =============================================================================
// Availability Tests
// =============================================================================

func TestPipeline_Unavailable(t *testing.T) {
	p := NewPipeline(nil, nil)
	assert.False(t, p.Available())

	_, err := p.EnhanceQuestion(context.Background(), "t", "d")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = p.EnhanceAnswer(context.Background(), "c")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = p.SuggestAnswer(context.Background(), "t", "d")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = p.AnalyzeCode(context.Background(), "code", "go")
	assert.ErrorIs(t, err, ErrUnavailable)

	features := p.Features()
	assert.False(t, features.QuestionEnhancement)
	assert.False(t, features.CodeAnalysis)
}

func TestPipeline_Available(t *testing.T) {
	p := NewPipeline(&fakeCapability{analysis: "looks fine"}, nil)
	assert.True(t, p.Available())

	features := p.Features()
	assert.True(t, features.QuestionEnhancement)
	assert.True(t, features.AnswerSuggestions)

	analysis, err := p.AnalyzeCode(context.Background(), "package main", "go")
	require.NoError(t, err)
	assert.Equal(t, "looks fine", analysis)
}

// =============================================================================
// Strict Operation Tests
// =============================================================================

func TestPipeline_WrapsUpstreamFailure(t *testing.T) {
	p := NewPipeline(&fakeCapability{err: errors.New("rate limited")}, nil)

	_, err := p.EnhanceQuestion(context.Background(), "t", "d")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "rate limited")

	_, err = p.SuggestAnswer(context.Background(), "t", "d")
	assert.ErrorIs(t, err, ErrUpstream)
}

// =============================================================================
// Best-effort Draft Tests
// =============================================================================

func TestEnhanceQuestionDraft_Success(t *testing.T) {
	p := NewPipeline(&fakeCapability{enhancement: &QuestionEnhancement{
		Title:       "Clearer title",
		Description: "Clearer description",
		Tags:        []string{"go", "concurrency"},
	}}, nil)

	draft := p.EnhanceQuestionDraft(context.Background(), QuestionDraft{
		Title:       "orig title",
		Description: "orig description",
	})
	assert.True(t, draft.Enhanced)
	assert.Equal(t, "Clearer title", draft.Title)
	assert.Equal(t, []string{"go", "concurrency"}, draft.Tags)
}

func TestEnhanceQuestionDraft_KeepsAuthorTags(t *testing.T) {
	p := NewPipeline(&fakeCapability{enhancement: &QuestionEnhancement{
		Tags: []string{"suggested"},
	}}, nil)

	draft := p.EnhanceQuestionDraft(context.Background(), QuestionDraft{
		Title:       "orig title",
		Description: "orig description",
		Tags:        []string{"authored"},
	})
	assert.True(t, draft.Enhanced)
	// Empty enhancement fields leave the original content alone.
	assert.Equal(t, "orig title", draft.Title)
	assert.Equal(t, []string{"authored"}, draft.Tags)
}

func TestEnhanceQuestionDraft_FailureFallsBack(t *testing.T) {
	p := NewPipeline(&fakeCapability{err: errors.New("timeout")}, nil)

	original := QuestionDraft{Title: "orig title", Description: "orig description"}
	draft := p.EnhanceQuestionDraft(context.Background(), original)
	assert.Equal(t, original, draft)
	assert.False(t, draft.Enhanced)
}

func TestEnhanceAnswerDraft(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := NewPipeline(&fakeCapability{answer: "much better answer"}, nil)
		draft := p.EnhanceAnswerDraft(context.Background(), AnswerDraft{Content: "ok answer"})
		assert.True(t, draft.Enhanced)
		assert.Equal(t, "much better answer", draft.Content)
	})

	t.Run("empty result falls back", func(t *testing.T) {
		p := NewPipeline(&fakeCapability{answer: ""}, nil)
		draft := p.EnhanceAnswerDraft(context.Background(), AnswerDraft{Content: "ok answer"})
		assert.False(t, draft.Enhanced)
		assert.Equal(t, "ok answer", draft.Content)
	})

	t.Run("unavailable passes through", func(t *testing.T) {
		p := NewPipeline(nil, nil)
		draft := p.EnhanceAnswerDraft(context.Background(), AnswerDraft{Content: "ok answer"})
		assert.False(t, draft.Enhanced)
		assert.Equal(t, "ok answer", draft.Content)
	})
}
