// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for question handlers

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Validation Tests
// =============================================================================

func TestCreateQuestion_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"title too short", map[string]any{
			"title": "short", "description": "a description that is long enough",
		}},
		{"description too short", map[string]any{
			"title": "a title that is long enough", "description": "nope",
		}},
		{"missing fields", map[string]any{}},
		{"too many tags", map[string]any{
			"title":       "a title that is long enough",
			"description": "a description that is long enough",
			"tags":        []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := doJSON(t, router, "POST", "/v1/questions", "u1", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, envelope["success"])
			assert.NotEmpty(t, envelope["errors"])
		})
	}
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestQuestionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	// Create
	w, envelope := doJSON(t, router, "POST", "/v1/questions", "u1", validQuestionBody())
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Question created successfully", envelope["message"])
	question := data(t, envelope)["question"].(map[string]any)
	questionID := question["id"].(string)
	assert.Equal(t, "u1", question["author_id"])
	assert.Equal(t, false, data(t, envelope)["ai_enhanced"])

	// Read
	w, envelope = doJSON(t, router, "GET", "/v1/questions/"+questionID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := data(t, envelope)["question"].(map[string]any)
	assert.Equal(t, "How do I use context cancellation?", got["title"])

	// Update by a stranger is forbidden
	update := validQuestionBody()
	update["title"] = "A hijacked title for this question"
	w, _ = doJSON(t, router, "PUT", "/v1/questions/"+questionID, "intruder", update)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Update by the owner succeeds
	update["title"] = "A corrected title for this question"
	w, envelope = doJSON(t, router, "PUT", "/v1/questions/"+questionID, "u1", update)
	require.Equal(t, http.StatusOK, w.Code)
	got = data(t, envelope)["question"].(map[string]any)
	assert.Equal(t, "A corrected title for this question", got["title"])

	// Delete
	w, _ = doJSON(t, router, "DELETE", "/v1/questions/"+questionID, "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, "GET", "/v1/questions/"+questionID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQuestion_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	w, envelope := doJSON(t, router, "GET", "/v1/questions/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Resource not found", envelope["message"])
}

// =============================================================================
// Listing Tests
// =============================================================================

func TestListQuestions_Pagination(t *testing.T) {
	router, _ := newTestRouter(t)

	for i := 0; i < 5; i++ {
		body := validQuestionBody()
		body["title"] = fmt.Sprintf("Question number %d with padding", i)
		w, _ := doJSON(t, router, "POST", "/v1/questions", "u1", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, envelope := doJSON(t, router, "GET", "/v1/questions?page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, envelope)
	assert.Len(t, d["questions"], 2)
	pagination := d["pagination"].(map[string]any)
	assert.Equal(t, float64(5), pagination["total"])
	assert.Equal(t, float64(3), pagination["total_pages"])

	// Limit beyond the cap is a validation error.
	w, _ = doJSON(t, router, "GET", "/v1/questions?limit=101", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListQuestions_SearchAndTags(t *testing.T) {
	router, _ := newTestRouter(t)

	body := validQuestionBody()
	body["title"] = "Postgres connection pooling question"
	body["tags"] = []string{"postgres"}
	w, _ := doJSON(t, router, "POST", "/v1/questions", "u1", body)
	require.Equal(t, http.StatusCreated, w.Code)

	body = validQuestionBody()
	body["title"] = "Goroutine leak in my HTTP server"
	body["tags"] = []string{"go"}
	w, _ = doJSON(t, router, "POST", "/v1/questions", "u2", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, envelope := doJSON(t, router, "GET", "/v1/questions?search=postgres", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(t, envelope)["questions"], 1)

	w, envelope = doJSON(t, router, "GET", "/v1/questions?tags=go,rust", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(t, envelope)["questions"], 1)

	w, envelope = doJSON(t, router, "GET", "/v1/users/u2/questions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(t, envelope)["questions"], 1)
}
