package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/hearth/backend/internal/service"
)

type BackupHandler struct {
	backup service.IBackupService
}

func NewBackupHandler(backup service.IBackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

func (h *BackupHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/backup", h.Export)
	router.POST("/restore", h.Import)
	router.POST("/backup/remote", h.Upload)
	router.POST("/restore/remote/:key", h.RestoreRemote)
}

func (h *BackupHandler) Export(c *gin.Context) {
	snap, err := h.backup.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="hearth-backup.json"`)
	c.JSON(http.StatusOK, snap)
}

func (h *BackupHandler) Import(c *gin.Context) {
	var snap service.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		badRequest(c, err)
		return
	}
	n, err := h.backup.Import(c.Request.Context(), &snap)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restoredKeys": n})
}

func (h *BackupHandler) Upload(c *gin.Context) {
	remote, err := h.backup.UploadBackup(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"backup": remote})
}

func (h *BackupHandler) RestoreRemote(c *gin.Context) {
	n, err := h.backup.RestoreFromRemote(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restoredKeys": n})
}
