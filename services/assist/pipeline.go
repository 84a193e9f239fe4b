// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package assist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AleutianAI/AleutianExchange/services/exchange/observability"
)

// defaultTimeout bounds one upstream model call. Model latencies vary
// wildly; 20s covers the slow tail without pinning workers forever.
const defaultTimeout = 20 * time.Second

// Pipeline fronts a Capability with availability checks, per-call
// timeouts and metrics. The strict methods surface failures to the
// caller; the Draft methods never fail.
type Pipeline struct {
	capability Capability
	logger     *slog.Logger
	timeout    time.Duration
}

// NewPipeline wires the pipeline. capability may be nil, which makes
// the pipeline permanently unavailable.
func NewPipeline(capability Capability, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		capability: capability,
		logger:     logger,
		timeout:    defaultTimeout,
	}
}

// Available reports whether a model backend is configured.
func (p *Pipeline) Available() bool {
	return p != nil && p.capability != nil
}

// Features reports per-operation availability for the status endpoint.
func (p *Pipeline) Features() Features {
	ok := p.Available()
	return Features{
		QuestionEnhancement: ok,
		AnswerEnhancement:   ok,
		AnswerSuggestions:   ok,
		CodeAnalysis:        ok,
	}
}

// EnhanceQuestion polishes question content, failing loudly when the
// backend is missing or broken.
func (p *Pipeline) EnhanceQuestion(ctx context.Context, title, description string) (*QuestionEnhancement, error) {
	const op = "enhance_question"
	if !p.Available() {
		observability.RecordAssistRequest(op, "unavailable")
		return nil, ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	enhancement, err := p.capability.EnhanceQuestion(ctx, title, description)
	p.finish(ctx, op, start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return enhancement, nil
}

// EnhanceAnswer polishes answer content.
func (p *Pipeline) EnhanceAnswer(ctx context.Context, content string) (string, error) {
	const op = "enhance_answer"
	if !p.Available() {
		observability.RecordAssistRequest(op, "unavailable")
		return "", ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	enhanced, err := p.capability.EnhanceAnswer(ctx, content)
	p.finish(ctx, op, start, err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return enhanced, nil
}

// SuggestAnswer drafts an answer to the given question.
func (p *Pipeline) SuggestAnswer(ctx context.Context, title, description string) (string, error) {
	const op = "suggest_answer"
	if !p.Available() {
		observability.RecordAssistRequest(op, "unavailable")
		return "", ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	suggestion, err := p.capability.SuggestAnswer(ctx, title, description)
	p.finish(ctx, op, start, err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return suggestion, nil
}

// AnalyzeCode reviews a code snippet.
func (p *Pipeline) AnalyzeCode(ctx context.Context, code, language string) (string, error) {
	const op = "analyze_code"
	if !p.Available() {
		observability.RecordAssistRequest(op, "unavailable")
		return "", ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	analysis, err := p.capability.AnalyzeCode(ctx, code, language)
	p.finish(ctx, op, start, err)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return analysis, nil
}

// EnhanceQuestionDraft is the best-effort path used during question
// creation: any failure returns the draft unchanged. Suggested tags are
// adopted only when the author supplied none; an author's tags are
// their own.
func (p *Pipeline) EnhanceQuestionDraft(ctx context.Context, draft QuestionDraft) QuestionDraft {
	if !p.Available() {
		return draft
	}
	enhancement, err := p.EnhanceQuestion(ctx, draft.Title, draft.Description)
	if err != nil {
		p.logger.WarnContext(ctx, "question enhancement skipped", "error", err)
		return draft
	}
	if enhancement.Title != "" {
		draft.Title = enhancement.Title
	}
	if enhancement.Description != "" {
		draft.Description = enhancement.Description
	}
	if len(draft.Tags) == 0 {
		draft.Tags = enhancement.Tags
	}
	draft.Enhanced = true
	return draft
}

// EnhanceAnswerDraft is the best-effort path used during answer
// creation.
func (p *Pipeline) EnhanceAnswerDraft(ctx context.Context, draft AnswerDraft) AnswerDraft {
	if !p.Available() {
		return draft
	}
	enhanced, err := p.EnhanceAnswer(ctx, draft.Content)
	if err != nil || enhanced == "" {
		if err != nil {
			p.logger.WarnContext(ctx, "answer enhancement skipped", "error", err)
		}
		return draft
	}
	draft.Content = enhanced
	draft.Enhanced = true
	return draft
}

func (p *Pipeline) finish(ctx context.Context, op string, start time.Time, err error) {
	observability.ObserveAssistDuration(op, time.Since(start))
	if err != nil {
		observability.RecordAssistRequest(op, "failure")
		p.logger.ErrorContext(ctx, "assist request failed", "operation", op, "error", err)
		return
	}
	observability.RecordAssistRequest(op, "success")
}
