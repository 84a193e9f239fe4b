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
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/AleutianExchange/services/assist"
	"github.com/AleutianAI/AleutianExchange/services/exchange/datatypes"
	"github.com/AleutianAI/AleutianExchange/services/exchange/observability"
	"github.com/AleutianAI/AleutianExchange/services/exchange/store"
)

// AnswerService owns the answer lifecycle: authoring with question
// linkage, voting, and the unlink-then-delete removal sequence.
type AnswerService struct {
	store         store.Store
	notifications *NotificationService
	enhancer      DraftEnhancer
	logger        *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewAnswerService wires the service. notifications and enhancer may be
// nil to disable the respective side effects.
func NewAnswerService(st store.Store, notifications *NotificationService, enhancer DraftEnhancer, logger *slog.Logger) *AnswerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnswerService{
		store:         st,
		notifications: notifications,
		enhancer:      enhancer,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// List returns one page of a question's answers ordered by the given
// policy. The question must exist.
func (s *AnswerService) List(ctx context.Context, questionID, policy string, p ListParams) ([]datatypes.Answer, datatypes.Pagination, error) {
	if _, err := s.store.GetQuestion(ctx, questionID); err != nil {
		return nil, datatypes.Pagination{}, mapStoreErr(err)
	}
	params := p.normalize(DefaultPageSize)
	answers, total, err := s.store.ListAnswers(ctx, store.AnswerQuery{
		QuestionID: questionID,
		Sort:       answerSort(policy),
		Offset:     params.offset(),
		Limit:      params.Limit,
	})
	if err != nil {
		return nil, datatypes.Pagination{}, err
	}
	s.attachAuthors(ctx, answers)
	return answers, datatypes.NewPagination(params.Page, params.Limit, total), nil
}

// ListByAuthor returns one page of the given user's answers, newest
// first.
func (s *AnswerService) ListByAuthor(ctx context.Context, authorID string, p ListParams) ([]datatypes.Answer, datatypes.Pagination, error) {
	params := p.normalize(DefaultPageSize)
	answers, total, err := s.store.ListAnswers(ctx, store.AnswerQuery{
		AuthorID: authorID,
		Sort:     answerSort(SortNewest),
		Offset:   params.offset(),
		Limit:    params.Limit,
	})
	if err != nil {
		return nil, datatypes.Pagination{}, err
	}
	s.attachAuthors(ctx, answers)
	return answers, datatypes.NewPagination(params.Page, params.Limit, total), nil
}

// Create stores a new answer on the question, links it into the
// question's answer list, and notifies the question author. The
// notification is fire-and-forget: a failure is logged and never blocks
// the answer. The returned bool reports whether enhancement was applied.
func (s *AnswerService) Create(ctx context.Context, questionID, authorID, content string) (*datatypes.Answer, bool, error) {
	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, false, mapStoreErr(err)
	}

	draft := assist.AnswerDraft{Content: content}
	if s.enhancer != nil {
		draft = s.enhancer.EnhanceAnswerDraft(ctx, draft)
	}

	now := s.now().UTC()
	a := &datatypes.Answer{
		ID:         s.newID(),
		Content:    draft.Content,
		AuthorID:   authorID,
		QuestionID: questionID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateAnswer(ctx, a); err != nil {
		return nil, false, err
	}

	q.AnswerIDs = append(q.AnswerIDs, a.ID)
	q.UpdatedAt = now
	if err := s.store.UpdateQuestion(ctx, q); err != nil {
		return nil, false, mapStoreErr(err)
	}

	observability.RecordAnswerCreated()
	s.logger.InfoContext(ctx, "answer created",
		"answer_id", a.ID, "question_id", questionID, "author_id", authorID, "enhanced", draft.Enhanced)

	if s.notifications != nil && q.AuthorID != authorID {
		s.notifications.AnswerCreated(ctx, q, a)
	}

	a.Author = resolveAuthor(ctx, s.store, authorID)
	return a, draft.Enhanced, nil
}

// Update replaces the content of the requester's own answer. Vote counts
// and acceptance state are untouched.
func (s *AnswerService) Update(ctx context.Context, id, requesterID, content string) (*datatypes.Answer, error) {
	a, err := s.store.GetAnswer(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if a.AuthorID != requesterID {
		return nil, ErrForbidden
	}
	a.Content = content
	a.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateAnswer(ctx, a); err != nil {
		return nil, mapStoreErr(err)
	}
	a.Author = resolveAuthor(ctx, s.store, requesterID)
	return a, nil
}

// Delete removes the requester's own answer. The answer is unlinked from
// its question first so a failure mid-sequence leaves an unreferenced
// answer rather than a dangling reference. Deleting the accepted answer
// also clears the question's accepted mark.
func (s *AnswerService) Delete(ctx context.Context, id, requesterID string) error {
	a, err := s.store.GetAnswer(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if a.AuthorID != requesterID {
		return ErrForbidden
	}

	q, err := s.store.GetQuestion(ctx, a.QuestionID)
	if err == nil {
		q.RemoveAnswer(id)
		if q.AcceptedAnswerID == id {
			q.AcceptedAnswerID = ""
		}
		q.UpdatedAt = s.now().UTC()
		if err := s.store.UpdateQuestion(ctx, q); err != nil {
			return mapStoreErr(err)
		}
	}

	if err := s.store.DeleteAnswer(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	s.logger.InfoContext(ctx, "answer deleted", "answer_id", id, "question_id", a.QuestionID)
	return nil
}

// Vote applies one upvote or downvote to an answer. Authors may not vote
// on their own answers. Repeat votes by the same user are counted again;
// there is no per-user vote ledger.
func (s *AnswerService) Vote(ctx context.Context, id, voterID string, vote datatypes.VoteType) (*datatypes.Answer, error) {
	if !vote.Valid() {
		return nil, ErrInvalidVote
	}
	a, err := s.store.GetAnswer(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if a.AuthorID == voterID {
		return nil, ErrForbidden
	}
	updated, err := s.store.AddVote(ctx, id, vote)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	observability.RecordVote(string(vote))
	updated.Author = resolveAuthor(ctx, s.store, updated.AuthorID)
	return updated, nil
}

func (s *AnswerService) attachAuthors(ctx context.Context, answers []datatypes.Answer) {
	for i := range answers {
		answers[i].Author = resolveAuthor(ctx, s.store, answers[i].AuthorID)
	}
}
