// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine implements the question/answer workflow: listing and
// search, ownership-checked mutation, answer linkage and cascades, voting
// and accepted-answer state, and notification fan-out. It talks to the
// store ports and is transport-agnostic; handlers translate its sentinel
// errors into HTTP status codes.
package engine

import "errors"

var (
	// ErrNotFound reports that the addressed entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrForbidden reports that the requester is authenticated but not
	// permitted: mutating someone else's content, or voting on their own
	// answer.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidVote reports a vote type other than upvote or downvote.
	ErrInvalidVote = errors.New("invalid vote type")
)
