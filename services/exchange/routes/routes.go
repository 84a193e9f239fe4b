// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/AleutianExchange/pkg/extensions"
	"github.com/AleutianAI/AleutianExchange/services/assist"
	"github.com/AleutianAI/AleutianExchange/services/exchange/engine"
	"github.com/AleutianAI/AleutianExchange/services/exchange/handlers"
	"github.com/AleutianAI/AleutianExchange/services/exchange/middleware"
)

// Deps are the collaborators the route table wires into handlers.
type Deps struct {
	Questions     *engine.QuestionService
	Answers       *engine.AnswerService
	Notifications *engine.NotificationService
	Assist        *assist.Pipeline
	Opts          extensions.ServiceOptions
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(deps.Opts.AuthProvider)

	// API version 1 group
	v1 := router.Group("/v1")
	{
		questions := v1.Group("/questions")
		{
			questions.GET("", handlers.ListQuestions(deps.Questions))
			questions.GET("/:questionId", handlers.GetQuestion(deps.Questions))
			questions.POST("", requireAuth, handlers.CreateQuestion(deps.Questions))
			questions.PUT("/:questionId", requireAuth, handlers.UpdateQuestion(deps.Questions))
			questions.DELETE("/:questionId", requireAuth, handlers.DeleteQuestion(deps.Questions))
			questions.GET("/:questionId/answers", handlers.ListAnswers(deps.Answers))
			questions.POST("/:questionId/answers", requireAuth, handlers.CreateAnswer(deps.Answers))
			questions.POST("/:questionId/answers/:answerId/accept", requireAuth, handlers.AcceptAnswer(deps.Questions))
		}

		answers := v1.Group("/answers")
		{
			answers.PUT("/:answerId", requireAuth, handlers.UpdateAnswer(deps.Answers))
			answers.DELETE("/:answerId", requireAuth, handlers.DeleteAnswer(deps.Answers))
			answers.POST("/:answerId/vote", requireAuth, handlers.VoteAnswer(deps.Answers))
		}

		users := v1.Group("/users")
		{
			users.GET("/:userId/questions", handlers.ListQuestionsByAuthor(deps.Questions))
			users.GET("/:userId/answers", handlers.ListAnswersByAuthor(deps.Answers))
		}

		notifications := v1.Group("/notifications", requireAuth)
		{
			notifications.GET("", handlers.ListNotifications(deps.Notifications))
			notifications.GET("/unread-count", handlers.UnreadCount(deps.Notifications))
			notifications.PATCH("/read-all", handlers.MarkAllNotificationsRead(deps.Notifications))
			notifications.PATCH("/:notificationId/read", handlers.MarkNotificationRead(deps.Notifications))
			notifications.DELETE("/:notificationId", handlers.DeleteNotification(deps.Notifications))
			notifications.DELETE("", handlers.DeleteAllNotifications(deps.Notifications))
		}

		assistGroup := v1.Group("/assist")
		{
			// Status is public so clients can hide the AI surface up front.
			assistGroup.GET("/status", handlers.AssistStatus(deps.Assist))
			assistGroup.POST("/enhance-question", requireAuth, handlers.EnhanceQuestion(deps.Assist))
			assistGroup.POST("/enhance-answer", requireAuth, handlers.EnhanceAnswer(deps.Assist))
			assistGroup.POST("/suggest-answer", requireAuth, handlers.SuggestAnswer(deps.Assist))
			assistGroup.POST("/analyze-code", requireAuth, handlers.AnalyzeCode(deps.Assist))
		}
	}
}
