package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationModel struct {
	NotificationID       uuid.UUID `gorm:"column:notification_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_id"`
	NotificationSchoolID uuid.UUID `gorm:"column:notification_school_id;type:uuid;not null;index" json:"notification_school_id"`
	NotificationUserID   uuid.UUID `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`

	NotificationTitle   string `gorm:"column:notification_title;type:varchar(160);not null" json:"notification_title"`
	NotificationMessage string `gorm:"column:notification_message;type:text;not null" json:"notification_message"`

	// Arbitrary JSON payload for the client, stored as text
	NotificationPayload *string `gorm:"column:notification_payload;type:text" json:"notification_payload,omitempty"`

	NotificationRead      bool      `gorm:"column:notification_read;not null;default:false" json:"notification_read"`
	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;not null;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }
