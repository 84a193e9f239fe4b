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
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AleutianAI/AleutianExchange/services/exchange/datatypes"
)

// stringList stores a []string as a JSON column. Tag membership filters
// rely on the exact `"tag"` token appearing in the serialized value.
type stringList []string

func (l stringList) Value() (driver.Value, error) {
	if l == nil {
		l = stringList{}
	}
	return json.Marshal(l)
}

func (l *stringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = stringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported column type %T for string list", src)
	}
}

type questionRow struct {
	ID               string `gorm:"primaryKey"`
	Title            string
	Description      string
	Tags             stringList `gorm:"type:jsonb"`
	AuthorID         string     `gorm:"index"`
	AnswerIDs        stringList `gorm:"type:jsonb"`
	AcceptedAnswerID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (questionRow) TableName() string { return "questions" }

type answerRow struct {
	ID         string `gorm:"primaryKey"`
	Content    string
	AuthorID   string `gorm:"index"`
	QuestionID string `gorm:"index"`
	Upvotes    int
	Downvotes  int
	IsAccepted bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (answerRow) TableName() string { return "answers" }

type notificationRow struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index"`
	Type       string
	Message    string
	QuestionID string
	AnswerID   string
	IsRead     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (notificationRow) TableName() string { return "notifications" }

type userRow struct {
	ID       string `gorm:"primaryKey"`
	Username string
	Email    string
}

func (userRow) TableName() string { return "users" }

// Postgres is the gorm-backed Store adapter.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres opens a connection and migrates the exchange-owned tables.
// The users table is owned by the auth service; it is migrated here only
// so a fresh single-service deployment comes up without manual DDL.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&questionRow{}, &answerRow{}, &notificationRow{}, &userRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

// NewPostgresFromDB wraps an existing gorm handle (used by tests).
func NewPostgresFromDB(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

// --- QuestionStore ---

func (p *Postgres) CreateQuestion(ctx context.Context, q *datatypes.Question) error {
	return p.db.WithContext(ctx).Create(questionRowFrom(q)).Error
}

func (p *Postgres) GetQuestion(ctx context.Context, id string) (*datatypes.Question, error) {
	var row questionRow
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toEntity(), nil
}

func (p *Postgres) ListQuestions(ctx context.Context, query QuestionQuery) ([]datatypes.Question, int64, error) {
	tx := p.db.WithContext(ctx).Model(&questionRow{})
	if query.AuthorID != "" {
		tx = tx.Where("author_id = ?", query.AuthorID)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if len(query.Tags) > 0 {
		cond := p.db.Where("tags::text LIKE ?", jsonTokenPattern(query.Tags[0]))
		for _, tag := range query.Tags[1:] {
			cond = cond.Or("tags::text LIKE ?", jsonTokenPattern(tag))
		}
		tx = tx.Where(cond)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = applySort(tx, query.Sort)
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var rows []questionRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]datatypes.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.toEntity())
	}
	return out, total, nil
}

func (p *Postgres) UpdateQuestion(ctx context.Context, q *datatypes.Question) error {
	res := p.db.WithContext(ctx).
		Model(&questionRow{}).
		Where("id = ?", q.ID).
		Updates(map[string]any{
			"title":              q.Title,
			"description":        q.Description,
			"tags":               stringList(q.Tags),
			"answer_ids":         stringList(q.AnswerIDs),
			"accepted_answer_id": q.AcceptedAnswerID,
			"updated_at":         q.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteQuestion(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&questionRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- AnswerStore ---

func (p *Postgres) CreateAnswer(ctx context.Context, a *datatypes.Answer) error {
	return p.db.WithContext(ctx).Create(answerRowFrom(a)).Error
}

func (p *Postgres) GetAnswer(ctx context.Context, id string) (*datatypes.Answer, error) {
	var row answerRow
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toEntity(), nil
}

func (p *Postgres) ListAnswers(ctx context.Context, query AnswerQuery) ([]datatypes.Answer, int64, error) {
	tx := p.db.WithContext(ctx).Model(&answerRow{})
	if query.QuestionID != "" {
		tx = tx.Where("question_id = ?", query.QuestionID)
	}
	if query.AuthorID != "" {
		tx = tx.Where("author_id = ?", query.AuthorID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = applySort(tx, query.Sort)
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var rows []answerRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]datatypes.Answer, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.toEntity())
	}
	return out, total, nil
}

func (p *Postgres) UpdateAnswer(ctx context.Context, a *datatypes.Answer) error {
	res := p.db.WithContext(ctx).
		Model(&answerRow{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"content":     a.Content,
			"is_accepted": a.IsAccepted,
			"updated_at":  a.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteAnswer(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).Where("id = ?", id).Delete(&answerRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteAnswersByQuestion(ctx context.Context, questionID string) error {
	return p.db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&answerRow{}).Error
}

// AddVote increments exactly one counter with a single UPDATE so two
// concurrent votes never lose an increment.
func (p *Postgres) AddVote(ctx context.Context, id string, vote datatypes.VoteType) (*datatypes.Answer, error) {
	column := "upvotes"
	if vote == datatypes.VoteDownvote {
		column = "downvotes"
	}
	res := p.db.WithContext(ctx).
		Model(&answerRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			column:       gorm.Expr(column+" + ?", 1),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return p.GetAnswer(ctx, id)
}

// --- NotificationStore ---

func (p *Postgres) CreateNotification(ctx context.Context, n *datatypes.Notification) error {
	return p.db.WithContext(ctx).Create(notificationRowFrom(n)).Error
}

func (p *Postgres) ListNotifications(ctx context.Context, query NotificationQuery) ([]datatypes.Notification, int64, error) {
	tx := p.db.WithContext(ctx).Model(&notificationRow{}).Where("user_id = ?", query.UserID)
	if query.UnreadOnly {
		tx = tx.Where("is_read = ?", false)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = tx.Order("created_at DESC")
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var rows []notificationRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]datatypes.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.toEntity())
	}
	return out, total, nil
}

func (p *Postgres) MarkNotificationRead(ctx context.Context, id, userID string) (*datatypes.Notification, error) {
	res := p.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var row notificationRow
	if err := p.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (p *Postgres) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	return p.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "updated_at": time.Now().UTC()}).Error
}

func (p *Postgres) DeleteNotification(ctx context.Context, id, userID string) error {
	res := p.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&notificationRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteAllNotifications(ctx context.Context, userID string) error {
	return p.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&notificationRow{}).Error
}

func (p *Postgres) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// --- UserStore ---

func (p *Postgres) GetUser(ctx context.Context, id string) (*datatypes.User, error) {
	var row userRow
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &datatypes.User{ID: row.ID, Username: row.Username, Email: row.Email}, nil
}

// --- mapping helpers ---

func questionRowFrom(q *datatypes.Question) *questionRow {
	return &questionRow{
		ID:               q.ID,
		Title:            q.Title,
		Description:      q.Description,
		Tags:             stringList(q.Tags),
		AuthorID:         q.AuthorID,
		AnswerIDs:        stringList(q.AnswerIDs),
		AcceptedAnswerID: q.AcceptedAnswerID,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

func (r questionRow) toEntity() *datatypes.Question {
	return &datatypes.Question{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Tags:             []string(r.Tags),
		AuthorID:         r.AuthorID,
		AnswerIDs:        []string(r.AnswerIDs),
		AcceptedAnswerID: r.AcceptedAnswerID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func answerRowFrom(a *datatypes.Answer) *answerRow {
	return &answerRow{
		ID:         a.ID,
		Content:    a.Content,
		AuthorID:   a.AuthorID,
		QuestionID: a.QuestionID,
		Upvotes:    a.Upvotes,
		Downvotes:  a.Downvotes,
		IsAccepted: a.IsAccepted,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (r answerRow) toEntity() *datatypes.Answer {
	return &datatypes.Answer{
		ID:         r.ID,
		Content:    r.Content,
		AuthorID:   r.AuthorID,
		QuestionID: r.QuestionID,
		Upvotes:    r.Upvotes,
		Downvotes:  r.Downvotes,
		IsAccepted: r.IsAccepted,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func notificationRowFrom(n *datatypes.Notification) *notificationRow {
	return &notificationRow{
		ID:         n.ID,
		UserID:     n.UserID,
		Type:       string(n.Type),
		Message:    n.Message,
		QuestionID: n.QuestionID,
		AnswerID:   n.AnswerID,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func (r notificationRow) toEntity() *datatypes.Notification {
	return &datatypes.Notification{
		ID:         r.ID,
		UserID:     r.UserID,
		Type:       datatypes.NotificationType(r.Type),
		Message:    r.Message,
		QuestionID: r.QuestionID,
		AnswerID:   r.AnswerID,
		IsRead:     r.IsRead,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// jsonTokenPattern matches the exact JSON string token for a tag inside
// the serialized tags column.
func jsonTokenPattern(tag string) string {
	encoded, _ := json.Marshal(tag)
	return "%" + string(encoded) + "%"
}

var sortColumns = map[string]string{
	FieldCreatedAt:  "created_at",
	FieldUpvotes:    "upvotes",
	FieldDownvotes:  "downvotes",
	FieldIsAccepted: "is_accepted",
}

func applySort(tx *gorm.DB, fields []SortField) *gorm.DB {
	for _, f := range fields {
		column, ok := sortColumns[f.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if f.Desc {
			direction = "DESC"
		}
		tx = tx.Order(column + " " + direction)
	}
	return tx
}
