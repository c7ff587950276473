// internals/features/notifications/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Tipe notifikasi yang dikenal
const (
	NotificationTypeAlumniUpdate = "alumni_update"
)

// NotificationModel: notifikasi untuk admin. Immutable setelah dibuat,
// kecuali flag is_read.
type NotificationModel struct {
	NotificationID uuid.UUID `gorm:"column:notification_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_id"`

	NotificationType    string `gorm:"column:notification_type;type:varchar(50);not null;index" json:"notification_type"`
	NotificationMessage string `gorm:"column:notification_message;type:text;not null" json:"notification_message"`

	// Payload bebas per tipe (misal daftar field yang diubah alumni)
	NotificationData datatypes.JSON `gorm:"column:notification_data;type:jsonb" json:"notification_data,omitempty"`

	NotificationTriggeredBy *uuid.UUID `gorm:"column:notification_triggered_by;type:uuid" json:"notification_triggered_by,omitempty"`
	NotificationTriggeredIP *string    `gorm:"column:notification_triggered_ip;type:varchar(45)" json:"notification_triggered_ip,omitempty"`

	NotificationIsRead bool `gorm:"column:notification_is_read;not null;default:false;index" json:"notification_is_read"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;not null;autoCreateTime;index" json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }
