// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"

	"github.com/AleutianAI/AleutianExchange/services/assist"
)

// DraftEnhancer polishes drafts before they are stored. Implementations
// must be best-effort: on any failure they return the draft unchanged
// with Enhanced false, never an error. Satisfied by *assist.Pipeline;
// a nil enhancer disables enhancement entirely.
type DraftEnhancer interface {
	EnhanceQuestionDraft(ctx context.Context, draft assist.QuestionDraft) assist.QuestionDraft
	EnhanceAnswerDraft(ctx context.Context, draft assist.AnswerDraft) assist.AnswerDraft
}
