// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import "time"

// VoteType selects which counter a vote increments.
type VoteType string

const (
	VoteUpvote   VoteType = "upvote"
	VoteDownvote VoteType = "downvote"
)

// Valid reports whether v is one of the two recognized vote types.
func (v VoteType) Valid() bool {
	return v == VoteUpvote || v == VoteDownvote
}

// Answer is a user-authored answer to a question. AuthorID and QuestionID
// are immutable after creation. Upvotes and Downvotes only ever increase;
// there is no per-user vote ledger, so repeat votes from the same user
// each count (a deliberate carry-over from the source system).
type Answer struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	Author     *User     `json:"author,omitempty"`
	QuestionID string    `json:"question_id"`
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
