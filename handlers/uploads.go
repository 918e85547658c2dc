package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/statewisejobs/statewise-jobs/internal/storage"
	"github.com/statewisejobs/statewise-jobs/pkg/logger"
)

// presigned links are long-lived; listing documents embed them directly
const uploadLinkTTL = 7 * 24 * time.Hour

// NoticeUploader is the storage surface the upload endpoints need.
type NoticeUploader interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	DownloadURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// UploadHandler lets admins upload notice PDFs and get back a link suitable
// for a listing's downloadLink field.
type UploadHandler struct {
	store NoticeUploader
}

func NewUploadHandler(store NoticeUploader) *UploadHandler {
	return &UploadHandler{store: store}
}

func (h *UploadHandler) Register(r *gin.Engine, adminGuard gin.HandlerFunc) {
	r.POST("/api/admin/uploads", adminGuard, h.Upload)
	r.GET("/api/admin/uploads/*key", adminGuard, h.Download)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file is required"})
		return
	}
	collection := c.DefaultPostForm("collection", "notices")

	f, err := fh.Open()
	if err != nil {
		logger.Errorf("open upload %s: %v", fh.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to read upload"})
		return
	}
	defer f.Close()

	key := storage.ObjectKey(collection, fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.store.Put(c.Request.Context(), key, f, fh.Size, contentType); err != nil {
		logger.Errorf("store upload %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store upload"})
		return
	}
	link, err := h.store.DownloadURL(c.Request.Context(), key, uploadLinkTTL)
	if err != nil {
		logger.Errorf("presign %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create download link"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"key": key, "downloadLink": link}})
}

// Download streams a stored notice back to the admin console so uploads can
// be previewed without minting a presigned link.
func (h *UploadHandler) Download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "key is required"})
		return
	}
	obj, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notice not found"})
		return
	}
	defer obj.Close()
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, obj); err != nil {
		logger.Errorf("stream notice %s: %v", key, err)
	}
}
