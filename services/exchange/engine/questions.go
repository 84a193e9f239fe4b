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
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/AleutianExchange/services/assist"
	"github.com/AleutianAI/AleutianExchange/services/exchange/datatypes"
	"github.com/AleutianAI/AleutianExchange/services/exchange/observability"
	"github.com/AleutianAI/AleutianExchange/services/exchange/store"
)

// QuestionService owns the question lifecycle: browse and search,
// authoring, cascade deletion and accepted-answer state.
type QuestionService struct {
	store    store.Store
	enhancer DraftEnhancer
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewQuestionService wires the service. enhancer may be nil, which
// disables draft enhancement.
func NewQuestionService(st store.Store, enhancer DraftEnhancer, logger *slog.Logger) *QuestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionService{
		store:    st,
		enhancer: enhancer,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// QuestionListOptions filters and orders a question listing. Search is a
// case-insensitive substring over title and description; Tags matches
// questions carrying any of the given tags.
type QuestionListOptions struct {
	Search string
	Tags   []string
	Sort   string
	ListParams
}

// QuestionInput is the author-provided content of a question.
type QuestionInput struct {
	Title       string
	Description string
	Tags        []string
}

// List returns one page of questions with authors attached.
func (s *QuestionService) List(ctx context.Context, opts QuestionListOptions) ([]datatypes.Question, datatypes.Pagination, error) {
	params := opts.normalize(DefaultPageSize)
	questions, total, err := s.store.ListQuestions(ctx, store.QuestionQuery{
		Search: opts.Search,
		Tags:   opts.Tags,
		Sort:   questionSort(opts.Sort),
		Offset: params.offset(),
		Limit:  params.Limit,
	})
	if err != nil {
		return nil, datatypes.Pagination{}, err
	}
	s.attachQuestionAuthors(ctx, questions)
	return questions, datatypes.NewPagination(params.Page, params.Limit, total), nil
}

// ListByAuthor returns one page of the given user's questions, newest
// first.
func (s *QuestionService) ListByAuthor(ctx context.Context, authorID string, p ListParams) ([]datatypes.Question, datatypes.Pagination, error) {
	params := p.normalize(DefaultPageSize)
	questions, total, err := s.store.ListQuestions(ctx, store.QuestionQuery{
		AuthorID: authorID,
		Sort:     questionSort(SortNewest),
		Offset:   params.offset(),
		Limit:    params.Limit,
	})
	if err != nil {
		return nil, datatypes.Pagination{}, err
	}
	s.attachQuestionAuthors(ctx, questions)
	return questions, datatypes.NewPagination(params.Page, params.Limit, total), nil
}

// Get returns a question together with all of its answers ordered by the
// given policy. Authors are attached to both.
func (s *QuestionService) Get(ctx context.Context, id, answerPolicy string) (*datatypes.Question, []datatypes.Answer, error) {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, nil, mapStoreErr(err)
	}
	answers, _, err := s.store.ListAnswers(ctx, store.AnswerQuery{
		QuestionID: id,
		Sort:       answerSort(answerPolicy),
	})
	if err != nil {
		return nil, nil, err
	}
	q.Author = s.resolveAuthor(ctx, q.AuthorID)
	s.attachAnswerAuthors(ctx, answers)
	return q, answers, nil
}

// Create stores a new question. When an enhancer is configured the draft
// is polished first; enhancement failures fall back to the original text
// and are never surfaced to the author. The returned bool reports
// whether enhancement was applied.
func (s *QuestionService) Create(ctx context.Context, authorID string, in QuestionInput) (*datatypes.Question, bool, error) {
	draft := assist.QuestionDraft{
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
	}
	if s.enhancer != nil {
		draft = s.enhancer.EnhanceQuestionDraft(ctx, draft)
	}

	now := s.now().UTC()
	q := &datatypes.Question{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Tags:        draft.Tags,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateQuestion(ctx, q); err != nil {
		return nil, false, err
	}
	observability.RecordQuestionCreated()
	s.logger.InfoContext(ctx, "question created",
		"question_id", q.ID, "author_id", authorID, "enhanced", draft.Enhanced)
	q.Author = s.resolveAuthor(ctx, authorID)
	return q, draft.Enhanced, nil
}

// Update replaces the content fields of the requester's own question.
// Linkage fields (answers, accepted answer) are untouched.
func (s *QuestionService) Update(ctx context.Context, id, requesterID string, in QuestionInput) (*datatypes.Question, error) {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if q.AuthorID != requesterID {
		return nil, ErrForbidden
	}
	q.Title = in.Title
	q.Description = in.Description
	q.Tags = in.Tags
	q.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateQuestion(ctx, q); err != nil {
		return nil, mapStoreErr(err)
	}
	q.Author = s.resolveAuthor(ctx, requesterID)
	return q, nil
}

// Delete removes the requester's own question and all of its answers.
// Answers go first so a failure mid-cascade leaves the question visible
// rather than orphaning answers.
func (s *QuestionService) Delete(ctx context.Context, id, requesterID string) error {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if q.AuthorID != requesterID {
		return ErrForbidden
	}
	if err := s.store.DeleteAnswersByQuestion(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	s.logger.InfoContext(ctx, "question deleted", "question_id", id, "answers_removed", len(q.AnswerIDs))
	return nil
}

// AcceptAnswer marks the given answer as the question's accepted one.
// Only the question author may accept, and re-accepting moves the mark:
// the previously accepted answer is cleared first so at most one answer
// per question carries the flag.
func (s *QuestionService) AcceptAnswer(ctx context.Context, questionID, answerID, requesterID string) (*datatypes.Question, error) {
	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if q.AuthorID != requesterID {
		return nil, ErrForbidden
	}
	a, err := s.store.GetAnswer(ctx, answerID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if a.QuestionID != questionID {
		return nil, ErrNotFound
	}

	now := s.now().UTC()
	if q.AcceptedAnswerID != "" && q.AcceptedAnswerID != answerID {
		prev, err := s.store.GetAnswer(ctx, q.AcceptedAnswerID)
		if err == nil {
			prev.IsAccepted = false
			prev.UpdatedAt = now
			if err := s.store.UpdateAnswer(ctx, prev); err != nil {
				return nil, err
			}
		}
	}

	a.IsAccepted = true
	a.UpdatedAt = now
	if err := s.store.UpdateAnswer(ctx, a); err != nil {
		return nil, mapStoreErr(err)
	}
	q.AcceptedAnswerID = answerID
	q.UpdatedAt = now
	if err := s.store.UpdateQuestion(ctx, q); err != nil {
		return nil, mapStoreErr(err)
	}
	s.logger.InfoContext(ctx, "answer accepted", "question_id", questionID, "answer_id", answerID)
	q.Author = s.resolveAuthor(ctx, q.AuthorID)
	return q, nil
}

// resolveAuthor looks up the author for display. A missing user record is
// not an error; the entity is returned without an author.
func (s *QuestionService) resolveAuthor(ctx context.Context, userID string) *datatypes.User {
	return resolveAuthor(ctx, s.store, userID)
}

func (s *QuestionService) attachQuestionAuthors(ctx context.Context, questions []datatypes.Question) {
	for i := range questions {
		questions[i].Author = resolveAuthor(ctx, s.store, questions[i].AuthorID)
	}
}

func (s *QuestionService) attachAnswerAuthors(ctx context.Context, answers []datatypes.Answer) {
	for i := range answers {
		answers[i].Author = resolveAuthor(ctx, s.store, answers[i].AuthorID)
	}
}

func resolveAuthor(ctx context.Context, users store.UserStore, userID string) *datatypes.User {
	u, err := users.GetUser(ctx, userID)
	if err != nil {
		return nil
	}
	return u
}

// mapStoreErr translates storage sentinels into engine sentinels.
func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
