// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AleutianAI/AleutianExchange/services/exchange/datatypes"
)

// Memory is a mutex-guarded in-memory Store. It backs the test suite and
// lightweight mode (no POSTGRES_DSN). Because every operation holds the
// lock, the two-step cross-entity mutations performed by the engine are
// serialized here and the documented inconsistency window does not exist.
type Memory struct {
	mu            sync.RWMutex
	questions     map[string]datatypes.Question
	answers       map[string]datatypes.Answer
	notifications map[string]datatypes.Notification
	users         map[string]datatypes.User
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		questions:     make(map[string]datatypes.Question),
		answers:       make(map[string]datatypes.Answer),
		notifications: make(map[string]datatypes.Notification),
		users:         make(map[string]datatypes.User),
	}
}

// PutUser seeds a user record. Users are owned by the auth collaborator,
// so this exists for tests and bootstrap only.
func (m *Memory) PutUser(u datatypes.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// --- QuestionStore ---

func (m *Memory) CreateQuestion(_ context.Context, q *datatypes.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[q.ID] = cloneQuestion(*q)
	return nil
}

func (m *Memory) GetQuestion(_ context.Context, id string) (*datatypes.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneQuestion(q)
	return &out, nil
}

func (m *Memory) ListQuestions(_ context.Context, query QuestionQuery) ([]datatypes.Question, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]datatypes.Question, 0, len(m.questions))
	for _, q := range m.questions {
		if query.AuthorID != "" && q.AuthorID != query.AuthorID {
			continue
		}
		if query.Search != "" && !matchesSearch(query.Search, q.Title, q.Description) {
			continue
		}
		if len(query.Tags) > 0 && !hasAnyTag(q.Tags, query.Tags) {
			continue
		}
		matched = append(matched, cloneQuestion(q))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return lessQuestion(matched[i], matched[j], query.Sort)
	})
	total := int64(len(matched))
	return window(matched, query.Offset, query.Limit), total, nil
}

func (m *Memory) UpdateQuestion(_ context.Context, q *datatypes.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[q.ID]; !ok {
		return ErrNotFound
	}
	m.questions[q.ID] = cloneQuestion(*q)
	return nil
}

func (m *Memory) DeleteQuestion(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[id]; !ok {
		return ErrNotFound
	}
	delete(m.questions, id)
	return nil
}

// --- AnswerStore ---

func (m *Memory) CreateAnswer(_ context.Context, a *datatypes.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[a.ID] = cloneAnswer(*a)
	return nil
}

func (m *Memory) GetAnswer(_ context.Context, id string) (*datatypes.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.answers[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneAnswer(a)
	return &out, nil
}

func (m *Memory) ListAnswers(_ context.Context, query AnswerQuery) ([]datatypes.Answer, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]datatypes.Answer, 0, len(m.answers))
	for _, a := range m.answers {
		if query.QuestionID != "" && a.QuestionID != query.QuestionID {
			continue
		}
		if query.AuthorID != "" && a.AuthorID != query.AuthorID {
			continue
		}
		matched = append(matched, cloneAnswer(a))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return lessAnswer(matched[i], matched[j], query.Sort)
	})
	total := int64(len(matched))
	return window(matched, query.Offset, query.Limit), total, nil
}

func (m *Memory) UpdateAnswer(_ context.Context, a *datatypes.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.answers[a.ID]; !ok {
		return ErrNotFound
	}
	m.answers[a.ID] = cloneAnswer(*a)
	return nil
}

func (m *Memory) DeleteAnswer(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.answers[id]; !ok {
		return ErrNotFound
	}
	delete(m.answers, id)
	return nil
}

func (m *Memory) DeleteAnswersByQuestion(_ context.Context, questionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.answers {
		if a.QuestionID == questionID {
			delete(m.answers, id)
		}
	}
	return nil
}

func (m *Memory) AddVote(_ context.Context, id string, vote datatypes.VoteType) (*datatypes.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.answers[id]
	if !ok {
		return nil, ErrNotFound
	}
	if vote == datatypes.VoteUpvote {
		a.Upvotes++
	} else {
		a.Downvotes++
	}
	m.answers[id] = a
	out := cloneAnswer(a)
	return &out, nil
}

// --- NotificationStore ---

func (m *Memory) CreateNotification(_ context.Context, n *datatypes.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.ID] = *n
	return nil
}

func (m *Memory) ListNotifications(_ context.Context, query NotificationQuery) ([]datatypes.Notification, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]datatypes.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID != query.UserID {
			continue
		}
		if query.UnreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	return window(matched, query.Offset, query.Limit), total, nil
}

func (m *Memory) MarkNotificationRead(_ context.Context, id, userID string) (*datatypes.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return nil, ErrNotFound
	}
	n.IsRead = true
	m.notifications[id] = n
	return &n, nil
}

func (m *Memory) MarkAllNotificationsRead(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			m.notifications[id] = n
		}
	}
	return nil
}

func (m *Memory) DeleteNotification(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	delete(m.notifications, id)
	return nil
}

func (m *Memory) DeleteAllNotifications(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.notifications {
		if n.UserID == userID {
			delete(m.notifications, id)
		}
	}
	return nil
}

func (m *Memory) CountUnreadNotifications(_ context.Context, userID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// --- UserStore ---

func (m *Memory) GetUser(_ context.Context, id string) (*datatypes.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// --- helpers ---

func cloneQuestion(q datatypes.Question) datatypes.Question {
	q.Tags = append([]string(nil), q.Tags...)
	q.AnswerIDs = append([]string(nil), q.AnswerIDs...)
	q.Author = nil
	return q
}

func cloneAnswer(a datatypes.Answer) datatypes.Answer {
	a.Author = nil
	return a
}

func matchesSearch(search string, title, description string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(title), needle) ||
		strings.Contains(strings.ToLower(description), needle)
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func lessQuestion(a, b datatypes.Question, fields []SortField) bool {
	for _, f := range fields {
		var cmp int
		switch f.Field {
		case FieldCreatedAt:
			cmp = compareTimes(a.CreatedAt, b.CreatedAt)
		default:
			continue
		}
		if cmp == 0 {
			continue
		}
		if f.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func lessAnswer(a, b datatypes.Answer, fields []SortField) bool {
	for _, f := range fields {
		var cmp int
		switch f.Field {
		case FieldCreatedAt:
			cmp = compareTimes(a.CreatedAt, b.CreatedAt)
		case FieldUpvotes:
			cmp = compareInts(a.Upvotes, b.Upvotes)
		case FieldDownvotes:
			cmp = compareInts(a.Downvotes, b.Downvotes)
		case FieldIsAccepted:
			cmp = compareBools(a.IsAccepted, b.IsAccepted)
		default:
			continue
		}
		if cmp == 0 {
			continue
		}
		if f.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
