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
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/AleutianExchange/services/exchange/datatypes"
	"github.com/AleutianAI/AleutianExchange/services/exchange/observability"
	"github.com/AleutianAI/AleutianExchange/services/exchange/store"
)

// NotificationService records and serves per-user notifications. Every
// operation is scoped to the requesting user; addressing another user's
// notification behaves as if it does not exist.
type NotificationService struct {
	store  store.Store
	logger *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewNotificationService wires the service.
func NewNotificationService(st store.Store, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{
		store:  st,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// AnswerCreated records a new-answer notification for the question
// author. Failures are logged, never returned: a broken notification
// write must not fail the answer that triggered it.
func (s *NotificationService) AnswerCreated(ctx context.Context, q *datatypes.Question, a *datatypes.Answer) {
	n := &datatypes.Notification{
		ID:         s.newID(),
		UserID:     q.AuthorID,
		Type:       datatypes.NotificationNewAnswer,
		Message:    fmt.Sprintf("Your question %q received a new answer!", q.Title),
		QuestionID: q.ID,
		AnswerID:   a.ID,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "notification write failed",
			"user_id", q.AuthorID, "question_id", q.ID, "answer_id", a.ID, "error", err)
		return
	}
	observability.RecordNotification(string(datatypes.NotificationNewAnswer))
}

// List returns one page of the user's notifications, newest first, along
// with the user's total unread count.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, p ListParams) ([]datatypes.Notification, datatypes.Pagination, int64, error) {
	params := p.normalize(DefaultNotificationPageSize)
	notifications, total, err := s.store.ListNotifications(ctx, store.NotificationQuery{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Offset:     params.offset(),
		Limit:      params.Limit,
	})
	if err != nil {
		return nil, datatypes.Pagination{}, 0, err
	}
	unread, err := s.store.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, datatypes.Pagination{}, 0, err
	}
	return notifications, datatypes.NewPagination(params.Page, params.Limit, total), unread, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (*datatypes.Notification, error) {
	n, err := s.store.MarkNotificationRead(ctx, id, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return n, nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	return mapStoreErr(s.store.DeleteNotification(ctx, id, userID))
}

// DeleteAll removes every notification of the user.
func (s *NotificationService) DeleteAll(ctx context.Context, userID string) error {
	return s.store.DeleteAllNotifications(ctx, userID)
}

// UnreadCount returns the user's number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}
