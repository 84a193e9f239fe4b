// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianExchange/services/exchange/engine"
	"github.com/AleutianAI/AleutianExchange/services/exchange/middleware"
)

// listQuery is the paging portion of list endpoints.
type listQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q listQuery) params() engine.ListParams {
	return engine.ListParams{Page: q.Page, Limit: q.Limit}
}

type questionListQuery struct {
	listQuery
	Search string `form:"search"`
	Tags   string `form:"tags"`
	Sort   string `form:"sort"`
}

// questionRequest carries author-editable question content. The same
// shape serves create and update.
type questionRequest struct {
	Title       string   `json:"title" binding:"required,min=10,max=200"`
	Description string   `json:"description" binding:"required,min=20"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,max=30"`
}

// ListQuestions serves GET /v1/questions with search, tag filtering and
// paging. Tags arrive comma-separated: ?tags=go,postgres.
func ListQuestions(questions *engine.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q questionListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondBindingError(c, err)
			return
		}
		items, pagination, err := questions.List(c.Request.Context(), engine.QuestionListOptions{
			Search:     q.Search,
			Tags:       splitTags(q.Tags),
			Sort:       q.Sort,
			ListParams: q.params(),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"questions": items, "pagination": pagination})
	}
}

// GetQuestion serves GET /v1/questions/:questionId. The question's
// answers are included, ordered by the ?sort= policy.
func GetQuestion(questions *engine.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		question, answers, err := questions.Get(c.Request.Context(), c.Param("questionId"), c.Query("sort"))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"question": question, "answers": answers})
	}
}

// CreateQuestion serves POST /v1/questions.
func CreateQuestion(questions *engine.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req questionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		user := middleware.CurrentUser(c)
		question, enhanced, err := questions.Create(c.Request.Context(), user.UserID, engine.QuestionInput{
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Question created successfully",
			gin.H{"question": question, "ai_enhanced": enhanced})
	}
}

// UpdateQuestion serves PUT /v1/questions/:questionId.
func UpdateQuestion(questions *engine.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req questionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		user := middleware.CurrentUser(c)
		question, err := questions.Update(c.Request.Context(), c.Param("questionId"), user.UserID, engine.QuestionInput{
			Title:       req.Title,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Question updated successfully", gin.H{"question": question})
	}
}

// DeleteQuestion serves DELETE /v1/questions/:questionId. All answers of
// the question are removed with it.
func DeleteQuestion(questions *engine.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := questions.Delete(c.Request.Context(), c.Param("questionId"), user.UserID); err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Question deleted successfully", nil)
	}
}

// AcceptAnswer serves POST /v1/questions/:questionId/answers/:answerId/accept.
func AcceptAnswer(questions *engine.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		question, err := questions.AcceptAnswer(c.Request.Context(),
			c.Param("questionId"), c.Param("answerId"), user.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Answer accepted", gin.H{"question": question})
	}
}

// ListQuestionsByAuthor serves GET /v1/users/:userId/questions.
func ListQuestionsByAuthor(questions *engine.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondBindingError(c, err)
			return
		}
		items, pagination, err := questions.ListByAuthor(c.Request.Context(), c.Param("userId"), q.params())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"questions": items, "pagination": pagination})
	}
}

// splitTags turns a comma-separated tag parameter into a clean slice.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
