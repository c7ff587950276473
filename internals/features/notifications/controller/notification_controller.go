// internals/features/notifications/controller/notification_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notificationModel "sekolahku_backend/internals/features/notifications/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type NotificationController struct {
	DB *gorm.DB
}

// GET /api/notifications (admin)
// ?unread=true untuk yang belum dibaca saja, ?type= untuk filter tipe.
func (h *NotificationController) ListNotifications(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	base := h.DB.Model(&notificationModel.NotificationModel{})
	if strings.EqualFold(strings.TrimSpace(c.Query("unread")), "true") {
		base = base.Where("notification_is_read = ?", false)
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		base = base.Where("notification_type = ?", t)
	}

	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}

	var items []notificationModel.NotificationModel
	if err := base.
		Order("notification_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar notifikasi berhasil diambil", items, &pagination)
}

// PATCH /api/notifications/:id/read (admin)
func (h *NotificationController) MarkRead(c *fiber.Ctx) error {
	if _, err := helperAuth.ActorFromLocals(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var row notificationModel.NotificationModel
	if err := h.DB.First(&row, "notification_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca notifikasi")
	}

	if !row.NotificationIsRead {
		if err := h.DB.Model(&row).
			Update("notification_is_read", true).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
		}
		row.NotificationIsRead = true
	}

	return helper.JsonUpdated(c, "Notifikasi ditandai sudah dibaca", row)
}
