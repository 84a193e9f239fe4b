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

	"github.com/AleutianAI/AleutianExchange/services/exchange/engine"
	"github.com/AleutianAI/AleutianExchange/services/exchange/middleware"
)

type notificationListQuery struct {
	listQuery
	UnreadOnly bool `form:"unread_only"`
}

// ListNotifications serves GET /v1/notifications. The response includes
// the requester's total unread count alongside the page.
func ListNotifications(notifications *engine.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q notificationListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondBindingError(c, err)
			return
		}
		user := middleware.CurrentUser(c)
		items, pagination, unread, err := notifications.List(c.Request.Context(),
			user.UserID, q.UnreadOnly, q.params())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{
			"notifications": items,
			"pagination":    pagination,
			"unread_count":  unread,
		})
	}
}

// UnreadCount serves GET /v1/notifications/unread-count.
func UnreadCount(notifications *engine.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		count, err := notifications.UnreadCount(c.Request.Context(), user.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"unread_count": count})
	}
}

// MarkNotificationRead serves PATCH /v1/notifications/:notificationId/read.
func MarkNotificationRead(notifications *engine.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		n, err := notifications.MarkRead(c.Request.Context(), c.Param("notificationId"), user.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Notification marked as read", gin.H{"notification": n})
	}
}

// MarkAllNotificationsRead serves PATCH /v1/notifications/read-all.
func MarkAllNotificationsRead(notifications *engine.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := notifications.MarkAllRead(c.Request.Context(), user.UserID); err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "All notifications marked as read", nil)
	}
}

// DeleteNotification serves DELETE /v1/notifications/:notificationId.
func DeleteNotification(notifications *engine.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := notifications.Delete(c.Request.Context(), c.Param("notificationId"), user.UserID); err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Notification deleted", nil)
	}
}

// DeleteAllNotifications serves DELETE /v1/notifications.
func DeleteAllNotifications(notifications *engine.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := notifications.DeleteAll(c.Request.Context(), user.UserID); err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "All notifications deleted", nil)
	}
}
