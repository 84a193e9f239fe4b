// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store defines the persistence ports of the exchange service and
// two adapters: a Postgres adapter (gorm) for real deployments and an
// in-memory adapter used for tests and for lightweight mode when no
// database is configured.
//
// The workflow engine talks only to these interfaces. Cross-entity
// consistency (question/answer linkage, cascades) is the engine's job;
// the store provides per-entity mutations plus an atomic vote increment
// so concurrent votes never lose updates.
package store

import (
	"context"
	"errors"

	"github.com/AleutianAI/AleutianExchange/services/exchange/datatypes"
)

// ErrNotFound is returned by every lookup that does not resolve. Scoped
// operations (notifications) also return it when the record exists but
// belongs to another user, so ownership is never leaked.
var ErrNotFound = errors.New("record not found")

// Sort field names understood by both adapters.
const (
	FieldCreatedAt  = "created_at"
	FieldUpvotes    = "upvotes"
	FieldDownvotes  = "downvotes"
	FieldIsAccepted = "is_accepted"
)

// SortField is one key of a multi-key ordering.
type SortField struct {
	Field string
	Desc  bool
}

// QuestionQuery selects and orders questions. Search is a case-insensitive
// substring match over title OR description. Tags matches questions
// carrying at least one of the given tags. Offset/Limit window the result;
// Limit <= 0 means no limit.
type QuestionQuery struct {
	Search   string
	Tags     []string
	AuthorID string
	Sort     []SortField
	Offset   int
	Limit    int
}

// AnswerQuery selects and orders answers by question or by author.
type AnswerQuery struct {
	QuestionID string
	AuthorID   string
	Sort       []SortField
	Offset     int
	Limit      int
}

// NotificationQuery selects a user's notifications, newest first.
type NotificationQuery struct {
	UserID     string
	UnreadOnly bool
	Offset     int
	Limit      int
}

// QuestionStore persists questions.
type QuestionStore interface {
	CreateQuestion(ctx context.Context, q *datatypes.Question) error
	GetQuestion(ctx context.Context, id string) (*datatypes.Question, error)
	ListQuestions(ctx context.Context, query QuestionQuery) ([]datatypes.Question, int64, error)
	UpdateQuestion(ctx context.Context, q *datatypes.Question) error
	DeleteQuestion(ctx context.Context, id string) error
}

// AnswerStore persists answers. AddVote increments exactly one counter
// atomically at the storage layer and returns the updated answer.
type AnswerStore interface {
	CreateAnswer(ctx context.Context, a *datatypes.Answer) error
	GetAnswer(ctx context.Context, id string) (*datatypes.Answer, error)
	ListAnswers(ctx context.Context, query AnswerQuery) ([]datatypes.Answer, int64, error)
	UpdateAnswer(ctx context.Context, a *datatypes.Answer) error
	DeleteAnswer(ctx context.Context, id string) error
	DeleteAnswersByQuestion(ctx context.Context, questionID string) error
	AddVote(ctx context.Context, id string, vote datatypes.VoteType) (*datatypes.Answer, error)
}

// NotificationStore persists notifications. All single-record mutations
// are scoped by userID and return ErrNotFound on a scope mismatch.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *datatypes.Notification) error
	ListNotifications(ctx context.Context, query NotificationQuery) ([]datatypes.Notification, int64, error)
	MarkNotificationRead(ctx context.Context, id, userID string) (*datatypes.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id, userID string) error
	DeleteAllNotifications(ctx context.Context, userID string) error
	CountUnreadNotifications(ctx context.Context, userID string) (int64, error)
}

// UserStore reads user records owned by the auth collaborator.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*datatypes.User, error)
}

// Store is the full persistence surface consumed by the engine.
type Store interface {
	QuestionStore
	AnswerStore
	NotificationStore
	UserStore
}
