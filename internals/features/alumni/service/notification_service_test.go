// internals/features/alumni/service/notification_service_test.go
package service

import (
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	notificationModel "sekolahku_backend/internals/features/notifications/model"
)

func newNotificationTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE notifications (
		notification_id varchar(36),
		notification_type varchar(50) NOT NULL,
		notification_message text NOT NULL,
		notification_data text,
		notification_triggered_by varchar(36),
		notification_triggered_ip varchar(45),
		notification_is_read boolean NOT NULL DEFAULT 0,
		notification_created_at datetime NOT NULL
	)`).Error)
	return db
}

func TestNotifyAlumniUpdateStoresChangedFieldsPayload(t *testing.T) {
	db := newNotificationTestDB(t)
	triggeredBy := uuid.New()

	NotifyAlumniUpdate(db, "A2019001", "Budi Santoso",
		[]string{"alumni_job_title", "alumni_phone"}, triggeredBy, "10.0.0.1")

	var row notificationModel.NotificationModel
	require.NoError(t, db.First(&row).Error)

	assert.Equal(t, notificationModel.NotificationTypeAlumniUpdate, row.NotificationType)
	assert.Contains(t, row.NotificationMessage, "A2019001")
	assert.False(t, row.NotificationIsRead)
	require.NotNil(t, row.NotificationTriggeredBy)
	assert.Equal(t, triggeredBy, *row.NotificationTriggeredBy)

	var payload struct {
		NIM           string   `json:"alumni_nim"`
		ChangedFields []string `json:"changed_fields"`
	}
	require.NoError(t, json.Unmarshal(row.NotificationData, &payload))
	assert.Equal(t, "A2019001", payload.NIM)
	assert.Equal(t, []string{"alumni_job_title", "alumni_phone"}, payload.ChangedFields)
}

func TestNotifyAlumniUpdateWithoutChangedFieldsSkipsPayload(t *testing.T) {
	db := newNotificationTestDB(t)

	NotifyAlumniUpdate(db, "A2019002", "Siti Rahma", nil, uuid.New(), "")

	var row notificationModel.NotificationModel
	require.NoError(t, db.First(&row).Error)

	assert.Empty(t, row.NotificationData)
	assert.Nil(t, row.NotificationTriggeredIP)
}
