// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import "time"

// NotificationType classifies what event produced a notification.
type NotificationType string

// NotificationNewAnswer is emitted to a question author when someone
// answers their question. It is the only type emitted today.
const NotificationNewAnswer NotificationType = "new_answer"

// Notification is created only as a side effect of workflow events and is
// readable/mutable by its recipient alone. QuestionID and AnswerID point
// at the entities that triggered it; they may dangle after deletes.
type Notification struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Type       NotificationType `json:"type"`
	Message    string           `json:"message"`
	QuestionID string           `json:"question_id,omitempty"`
	AnswerID   string           `json:"answer_id,omitempty"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
