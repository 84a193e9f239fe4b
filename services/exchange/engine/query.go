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

import "github.com/AleutianAI/AleutianExchange/services/exchange/store"

// Paging defaults and bounds applied to every list operation.
const (
	DefaultPageSize             = 10
	DefaultNotificationPageSize = 20
	MaxPageSize                 = 100
)

// ListParams is the page/limit pair accepted by list operations before
// normalization.
type ListParams struct {
	Page  int
	Limit int
}

// normalize clamps paging to sane bounds. Zero or negative values take
// the defaults; limits above MaxPageSize are capped rather than rejected.
func (p ListParams) normalize(defaultLimit int) ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// offset converts the 1-based page to a row offset.
func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// Named sort policies accepted on list endpoints.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortVotes  = "votes"
)

// questionSort maps a policy name to store ordering. Unknown names fall
// back to newest-first rather than erroring.
func questionSort(policy string) []store.SortField {
	switch policy {
	case SortOldest:
		return []store.SortField{{Field: store.FieldCreatedAt}}
	default:
		return []store.SortField{{Field: store.FieldCreatedAt, Desc: true}}
	}
}

// answerSort maps a policy name to store ordering. The default keeps the
// accepted answer on top, then ranks by upvotes with older answers
// breaking ties. "votes" ranks purely by score and ignores acceptance.
func answerSort(policy string) []store.SortField {
	switch policy {
	case SortVotes:
		return []store.SortField{
			{Field: store.FieldUpvotes, Desc: true},
			{Field: store.FieldDownvotes},
			{Field: store.FieldCreatedAt},
		}
	case SortNewest:
		return []store.SortField{{Field: store.FieldCreatedAt, Desc: true}}
	default:
		return []store.SortField{
			{Field: store.FieldIsAccepted, Desc: true},
			{Field: store.FieldUpvotes, Desc: true},
			{Field: store.FieldCreatedAt},
		}
	}
}
