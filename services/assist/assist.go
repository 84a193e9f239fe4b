// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package assist is the AI enhancement pipeline. A Capability wraps one
// model backend; the Pipeline adds availability checks, timeouts,
// metrics, and the best-effort draft path used during question and
// answer creation. The service runs fine with no capability configured:
// strict operations report ErrUnavailable and drafts pass through
// unchanged.
package assist

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable reports that no model backend is configured.
	ErrUnavailable = errors.New("assist capability not available")

	// ErrUpstream reports that the model backend was reached but failed.
	ErrUpstream = errors.New("assist upstream request failed")
)

// QuestionEnhancement is the polished form of a question draft.
// Empty fields mean the model had no improvement to offer.
type QuestionEnhancement struct {
	Title       string   `json:"enhanced_title"`
	Description string   `json:"enhanced_description"`
	Tags        []string `json:"suggested_tags"`
}

// Capability is one model backend. Implementations own prompt
// construction and response parsing; they must honor ctx cancellation.
type Capability interface {
	EnhanceQuestion(ctx context.Context, title, description string) (*QuestionEnhancement, error)
	EnhanceAnswer(ctx context.Context, content string) (string, error)
	SuggestAnswer(ctx context.Context, title, description string) (string, error)
	AnalyzeCode(ctx context.Context, code, language string) (string, error)
}

// QuestionDraft is question content on its way into the store. Enhanced
// reports whether the pipeline rewrote it.
type QuestionDraft struct {
	Title       string
	Description string
	Tags        []string
	Enhanced    bool
}

// AnswerDraft is answer content on its way into the store.
type AnswerDraft struct {
	Content  string
	Enhanced bool
}

// Features reports which assist operations are currently usable. All
// flags track a single backend today, but the status endpoint exposes
// them individually so clients need not change when that stops holding.
type Features struct {
	QuestionEnhancement bool `json:"question_enhancement"`
	AnswerEnhancement   bool `json:"answer_enhancement"`
	AnswerSuggestions   bool `json:"answer_suggestions"`
	CodeAnalysis        bool `json:"code_analysis"`
}
