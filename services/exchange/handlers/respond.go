// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the HTTP surface of the exchange service.
// Every response uses the same envelope:
//
//	{"success": bool, "message": string, "data": ..., "errors": [...]}
//
// Handlers are thin: they bind and validate input, call into the engine
// or the assist pipeline, and translate sentinel errors into statuses.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/AleutianExchange/services/assist"
	"github.com/AleutianAI/AleutianExchange/services/exchange/engine"
)

// response is the wire envelope shared by every endpoint.
type response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []fieldError `json:"errors,omitempty"`
}

// fieldError reports one rejected input field.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, response{Success: true, Message: message, Data: data})
}

// respondError maps sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged; sentinel cases are expected
// traffic and are not.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, response{Success: false, Message: "Resource not found"})
	case errors.Is(err, engine.ErrForbidden):
		c.JSON(http.StatusForbidden, response{Success: false, Message: "You are not allowed to perform this action"})
	case errors.Is(err, engine.ErrInvalidVote):
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "Vote type must be 'upvote' or 'downvote'"})
	case errors.Is(err, assist.ErrUnavailable):
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "AI enhancement is not available."})
	case errors.Is(err, assist.ErrUpstream):
		c.JSON(http.StatusBadGateway, response{Success: false, Message: "AI service request failed"})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, response{Success: false, Message: "Internal server error"})
	}
}

// respondBindingError turns gin binding failures into a 400 with
// per-field detail when the failure came from validation tags.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "Validation error", Errors: fields})
		return
	}
	c.JSON(http.StatusBadRequest, response{Success: false, Message: "Invalid request body"})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "is too short (minimum " + fe.Param() + ")"
	case "max":
		return "is too long (maximum " + fe.Param() + ")"
	default:
		return "is invalid"
	}
}
