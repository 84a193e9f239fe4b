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

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianExchange/services/exchange/datatypes"
	"github.com/AleutianAI/AleutianExchange/services/exchange/engine"
	"github.com/AleutianAI/AleutianExchange/services/exchange/middleware"
)

type answerRequest struct {
	Content string `json:"content" binding:"required,min=10"`
}

type voteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}

// ListAnswers serves GET /v1/questions/:questionId/answers. The ?sort=
// policy defaults to accepted-first, then score.
func ListAnswers(answers *engine.AnswerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondBindingError(c, err)
			return
		}
		items, pagination, err := answers.List(c.Request.Context(),
			c.Param("questionId"), c.Query("sort"), q.params())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"answers": items, "pagination": pagination})
	}
}

// CreateAnswer serves POST /v1/questions/:questionId/answers. The
// question author is notified as a side effect.
func CreateAnswer(answers *engine.AnswerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req answerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		user := middleware.CurrentUser(c)
		answer, enhanced, err := answers.Create(c.Request.Context(),
			c.Param("questionId"), user.UserID, req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Answer posted successfully",
			gin.H{"answer": answer, "ai_enhanced": enhanced})
	}
}

// UpdateAnswer serves PUT /v1/answers/:answerId.
func UpdateAnswer(answers *engine.AnswerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req answerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		user := middleware.CurrentUser(c)
		answer, err := answers.Update(c.Request.Context(), c.Param("answerId"), user.UserID, req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Answer updated successfully", gin.H{"answer": answer})
	}
}

// DeleteAnswer serves DELETE /v1/answers/:answerId.
func DeleteAnswer(answers *engine.AnswerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := answers.Delete(c.Request.Context(), c.Param("answerId"), user.UserID); err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Answer deleted successfully", nil)
	}
}

// VoteAnswer serves POST /v1/answers/:answerId/vote.
func VoteAnswer(answers *engine.AnswerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req voteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		user := middleware.CurrentUser(c)
		answer, err := answers.Vote(c.Request.Context(), c.Param("answerId"),
			user.UserID, datatypes.VoteType(req.VoteType))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Vote recorded", gin.H{"answer": answer})
	}
}

// ListAnswersByAuthor serves GET /v1/users/:userId/answers.
func ListAnswersByAuthor(answers *engine.AnswerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondBindingError(c, err)
			return
		}
		items, pagination, err := answers.ListByAuthor(c.Request.Context(), c.Param("userId"), q.params())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"answers": items, "pagination": pagination})
	}
}
