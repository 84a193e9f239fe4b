// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAICapability implements Capability on the OpenAI chat API.
type OpenAICapability struct {
	client *openai.Client
	model  string
}

// NewOpenAICapability builds the capability from the environment.
// OPENAI_API_KEY is read from the environment first, then from the
// container secret mount. OPENAI_MODEL defaults to gpt-4o-mini.
func NewOpenAICapability() (*OpenAICapability, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_MODEL")
	if apiKey == "" {
		secretPath := "/run/secrets/openai_api_key"
		apiKeyBytes, err := os.ReadFile(secretPath)
		if err == nil {
			apiKey = strings.TrimSpace(string(apiKeyBytes))
			slog.Info("Read the OpenAI API Key from Podman Secrets")
		} else {
			slog.Error("OPENAI_API_KEY environment variable not set and secret not found", "path", secretPath)
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	if model == "" {
		model = "gpt-4o-mini"
		slog.Warn("OPENAI_MODEL not set, defaulting to gpt-4o-mini")
	}
	slog.Info("Initializing OpenAI assist capability", "model", model)
	return &OpenAICapability{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (o *OpenAICapability) generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an assistant for a programming Q&A community."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// EnhanceQuestion asks the model for a clearer title and description
// plus tag suggestions. When the model answers with something that is
// not the requested JSON, the original content is returned unchanged
// rather than failing the call.
func (o *OpenAICapability) EnhanceQuestion(ctx context.Context, title, description string) (*QuestionEnhancement, error) {
	prompt := fmt.Sprintf(`Please enhance this programming question to make it more clear and detailed.
Original title: %s
Original description: %s

Provide an improved title and description that:
1. Is more specific and clear
2. Includes relevant context
3. Mentions specific technologies or frameworks if applicable
4. Is well-structured and easy to understand

Return the response in JSON format:
{
  "enhancedTitle": "improved title",
  "enhancedDescription": "improved description",
  "suggestedTags": ["tag1", "tag2", "tag3"]
}`, title, description)

	text, err := o.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		EnhancedTitle       string   `json:"enhancedTitle"`
		EnhancedDescription string   `json:"enhancedDescription"`
		SuggestedTags       []string `json:"suggestedTags"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &parsed); err != nil {
		slog.Warn("enhancement response was not JSON, keeping original content", "error", err)
		return &QuestionEnhancement{Title: title, Description: description}, nil
	}
	return &QuestionEnhancement{
		Title:       parsed.EnhancedTitle,
		Description: parsed.EnhancedDescription,
		Tags:        parsed.SuggestedTags,
	}, nil
}

// EnhanceAnswer asks the model for a more helpful version of the answer.
func (o *OpenAICapability) EnhanceAnswer(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf(`Please enhance this programming answer to make it more helpful and comprehensive.
Original answer: %s

Provide an improved answer that:
1. Is more detailed and explanatory
2. Includes code examples where appropriate
3. Follows best practices
4. Is well-structured and easy to follow

Return the enhanced answer as plain text.`, content)

	return o.generate(ctx, prompt)
}

// SuggestAnswer asks the model to draft an answer to the question.
func (o *OpenAICapability) SuggestAnswer(ctx context.Context, title, description string) (string, error) {
	prompt := fmt.Sprintf(`Based on this programming question, provide a helpful answer suggestion.
Question title: %s
Question description: %s

Provide a comprehensive answer that:
1. Addresses the main points of the question
2. Includes relevant code examples
3. Explains the reasoning behind the solution
4. Follows best practices

Return the answer as plain text.`, title, description)

	suggestion, err := o.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(suggestion) == "" {
		return "", fmt.Errorf("model returned an empty suggestion")
	}
	return suggestion, nil
}

// AnalyzeCode asks the model to review a code snippet.
func (o *OpenAICapability) AnalyzeCode(ctx context.Context, code, language string) (string, error) {
	prompt := fmt.Sprintf(`Please analyze this %s code and provide feedback:
Code: %s

Provide analysis including:
1. Code quality assessment
2. Potential improvements
3. Best practices suggestions
4. Security considerations (if applicable)

Return the analysis as plain text.`, language, code)

	return o.generate(ctx, prompt)
}

// stripCodeFences unwraps a markdown code block so fenced JSON replies
// still parse.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
