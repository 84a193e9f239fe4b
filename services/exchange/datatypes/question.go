// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the core entities of the exchange service:
// questions, answers, notifications and the read-only user reference.
//
// The Question/Answer relationship is bidirectional: a Question carries the
// ordered list of its answer ids, and every Answer carries the id of its
// Question. The workflow engine in services/exchange/engine is the only
// writer of the linkage fields, the vote counters and the acceptance flags.
package datatypes

import "time"

// MaxTags is the maximum number of tags a question may carry.
const MaxTags = 10

// Question is a user-authored question. AuthorID is immutable after
// creation. AnswerIDs preserves insertion order. AcceptedAnswerID, when
// set, must name an answer whose QuestionID equals this question's ID.
type Question struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Tags             []string  `json:"tags"`
	AuthorID         string    `json:"author_id"`
	Author           *User     `json:"author,omitempty"`
	AnswerIDs        []string  `json:"answer_ids"`
	AcceptedAnswerID string    `json:"accepted_answer_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasAnswer reports whether id is in the question's answer list.
func (q *Question) HasAnswer(id string) bool {
	for _, a := range q.AnswerIDs {
		if a == id {
			return true
		}
	}
	return false
}

// RemoveAnswer deletes id from the answer list, preserving order.
// It reports whether the id was present.
func (q *Question) RemoveAnswer(id string) bool {
	for i, a := range q.AnswerIDs {
		if a == id {
			q.AnswerIDs = append(q.AnswerIDs[:i], q.AnswerIDs[i+1:]...)
			return true
		}
	}
	return false
}
