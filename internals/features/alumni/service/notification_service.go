// internals/features/alumni/service/notification_service.go
package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	notificationModel "sekolahku_backend/internals/features/notifications/model"
)

// NotifyAlumniUpdate menulis notifikasi untuk admin setelah alumni
// mengubah profilnya sendiri. Field yang diubah ikut disimpan sebagai
// payload JSON supaya admin tahu bagian mana yang berubah.
// Fire-and-forget: gagal menulis notifikasi TIDAK membatalkan update
// profil, cukup dicatat di log.
func NotifyAlumniUpdate(db *gorm.DB, nim, name string, changedFields []string, triggeredBy uuid.UUID, ip string) {
	row := notificationModel.NotificationModel{
		NotificationType:        notificationModel.NotificationTypeAlumniUpdate,
		NotificationMessage:     fmt.Sprintf("Alumni %s (NIM %s) memperbarui profilnya", name, nim),
		NotificationTriggeredBy: &triggeredBy,
	}
	if ip != "" {
		row.NotificationTriggeredIP = &ip
	}
	if len(changedFields) > 0 {
		raw, err := json.Marshal(map[string]any{
			"alumni_nim":     nim,
			"changed_fields": changedFields,
		})
		if err == nil {
			row.NotificationData = datatypes.JSON(raw)
		}
	}

	if err := db.Create(&row).Error; err != nil {
		log.Println("[ERROR] Gagal menulis notifikasi alumni_update:", err)
	}
}
