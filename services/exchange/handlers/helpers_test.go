// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Shared fixtures for handler tests

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianExchange/pkg/extensions"
	"github.com/AleutianAI/AleutianExchange/services/assist"
	"github.com/AleutianAI/AleutianExchange/services/exchange/engine"
	"github.com/AleutianAI/AleutianExchange/services/exchange/middleware"
	"github.com/AleutianAI/AleutianExchange/services/exchange/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// headerAuthProvider treats the bearer token as the user id so tests can
// act as different users without minting real tokens.
type headerAuthProvider struct{}

func (headerAuthProvider) Validate(_ context.Context, token string) (*extensions.AuthInfo, error) {
	if token == "" {
		return &extensions.AuthInfo{UserID: "local-user", Username: "local-user"}, nil
	}
	return &extensions.AuthInfo{UserID: token, Username: token}, nil
}

// newTestRouter wires the full route surface against an in-memory store
// with the assist pipeline unavailable.
func newTestRouter(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	notifications := engine.NewNotificationService(m, nil)
	questions := engine.NewQuestionService(m, nil, nil)
	answers := engine.NewAnswerService(m, notifications, nil, nil)
	pipeline := assist.NewPipeline(nil, nil)
	requireAuth := middleware.RequireAuth(headerAuthProvider{})

	router := gin.New()
	router.GET("/health", HealthCheck)

	v1 := router.Group("/v1")
	{
		v1.GET("/questions", ListQuestions(questions))
		v1.GET("/questions/:questionId", GetQuestion(questions))
		v1.POST("/questions", requireAuth, CreateQuestion(questions))
		v1.PUT("/questions/:questionId", requireAuth, UpdateQuestion(questions))
		v1.DELETE("/questions/:questionId", requireAuth, DeleteQuestion(questions))
		v1.GET("/questions/:questionId/answers", ListAnswers(answers))
		v1.POST("/questions/:questionId/answers", requireAuth, CreateAnswer(answers))
		v1.POST("/questions/:questionId/answers/:answerId/accept", requireAuth, AcceptAnswer(questions))

		v1.PUT("/answers/:answerId", requireAuth, UpdateAnswer(answers))
		v1.DELETE("/answers/:answerId", requireAuth, DeleteAnswer(answers))
		v1.POST("/answers/:answerId/vote", requireAuth, VoteAnswer(answers))

		v1.GET("/users/:userId/questions", ListQuestionsByAuthor(questions))
		v1.GET("/users/:userId/answers", ListAnswersByAuthor(answers))

		v1.GET("/notifications", requireAuth, ListNotifications(notifications))
		v1.GET("/notifications/unread-count", requireAuth, UnreadCount(notifications))
		v1.PATCH("/notifications/read-all", requireAuth, MarkAllNotificationsRead(notifications))
		v1.PATCH("/notifications/:notificationId/read", requireAuth, MarkNotificationRead(notifications))
		v1.DELETE("/notifications/:notificationId", requireAuth, DeleteNotification(notifications))
		v1.DELETE("/notifications", requireAuth, DeleteAllNotifications(notifications))

		v1.GET("/assist/status", AssistStatus(pipeline))
		v1.POST("/assist/enhance-question", requireAuth, EnhanceQuestion(pipeline))
		v1.POST("/assist/enhance-answer", requireAuth, EnhanceAnswer(pipeline))
		v1.POST("/assist/suggest-answer", requireAuth, SuggestAnswer(pipeline))
		v1.POST("/assist/analyze-code", requireAuth, AnalyzeCode(pipeline))
	}
	return router, m
}

// doJSON performs a request as the given user and decodes the envelope.
func doJSON(t *testing.T, router *gin.Engine, method, path, user string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+user)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

// data extracts the envelope's data object.
func data(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	d, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "envelope has no data object: %v", envelope)
	return d
}

func validQuestionBody() map[string]any {
	return map[string]any{
		"title":       "How do I use context cancellation?",
		"description": "My worker goroutines never stop when the request ends.",
		"tags":        []string{"go", "concurrency"},
	}
}
