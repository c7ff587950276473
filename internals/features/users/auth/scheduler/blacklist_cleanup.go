// internals/features/users/auth/scheduler/blacklist_cleanup.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "sekolahku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler menjalankan pembersihan periodik:
// token blacklist yang sudah lewat exp dan refresh token yang sudah
// kedaluwarsa/dicabut lama. Jalan di goroutine sendiri.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		// sekali saat startup, lalu tiap jam
		cleanup(db)
		for range ticker.C {
			cleanup(db)
		}
	}()
}

func cleanup(db *gorm.DB) {
	now := time.Now()

	res := db.Unscoped().
		Where("expired_at < ?", now).
		Delete(&authModel.TokenBlacklist{})
	if res.Error != nil {
		log.Println("[ERROR] Cleanup token blacklist gagal:", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("🧹 Cleanup blacklist: %d token kedaluwarsa dihapus", res.RowsAffected)
	}

	// refresh token: hapus yang expired, atau yang dicabut > 30 hari lalu
	res = db.
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", now, now.AddDate(0, 0, -30)).
		Delete(&authModel.RefreshTokenModel{})
	if res.Error != nil {
		log.Println("[ERROR] Cleanup refresh token gagal:", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("🧹 Cleanup refresh token: %d baris dihapus", res.RowsAffected)
	}
}
