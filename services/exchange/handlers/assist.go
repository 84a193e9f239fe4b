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

	"github.com/AleutianAI/AleutianExchange/services/assist"
)

type enhanceQuestionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type enhanceAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

type suggestAnswerRequest struct {
	QuestionTitle       string `json:"question_title" binding:"required"`
	QuestionDescription string `json:"question_description" binding:"required"`
}

type analyzeCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
}

// AssistStatus serves GET /v1/assist/status so clients can hide AI
// features when no backend is configured.
func AssistStatus(pipeline *assist.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, "", gin.H{
			"available": pipeline.Available(),
			"features":  pipeline.Features(),
		})
	}
}

// EnhanceQuestion serves POST /v1/assist/enhance-question. The original
// content is echoed next to the enhancement so clients can offer a diff.
func EnhanceQuestion(pipeline *assist.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req enhanceQuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		enhancement, err := pipeline.EnhanceQuestion(c.Request.Context(), req.Title, req.Description)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{
			"original": gin.H{"title": req.Title, "description": req.Description},
			"enhanced": enhancement,
		})
	}
}

// EnhanceAnswer serves POST /v1/assist/enhance-answer.
func EnhanceAnswer(pipeline *assist.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req enhanceAnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		enhanced, err := pipeline.EnhanceAnswer(c.Request.Context(), req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{
			"original": req.Content,
			"enhanced": enhanced,
		})
	}
}

// SuggestAnswer serves POST /v1/assist/suggest-answer.
func SuggestAnswer(pipeline *assist.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req suggestAnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		suggestion, err := pipeline.SuggestAnswer(c.Request.Context(),
			req.QuestionTitle, req.QuestionDescription)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"suggestion": suggestion})
	}
}

// AnalyzeCode serves POST /v1/assist/analyze-code.
func AnalyzeCode(pipeline *assist.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req analyzeCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		analysis, err := pipeline.AnalyzeCode(c.Request.Context(), req.Code, req.Language)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{
			"code":     req.Code,
			"language": req.Language,
			"analysis": analysis,
		})
	}
}
