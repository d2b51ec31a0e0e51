package uploads

import (
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"permits-backend/internal/shared/server/middleware"
	"permits-backend/internal/shared/server/respond"
	"permits-backend/internal/shared/telemetry"
	"permits-backend/internal/shared/util"
)

const (
	maxUploadBytes = 15 << 20
	presignExpires = 15 * time.Minute
)

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
	"image/heic":      {},
}

// Handler issues presigned PUT URLs into the designated document bucket.
// Keys are namespaced under the requesting user so the resulting reference
// passes document-save validation.
type Handler struct {
	presign *s3.PresignClient
	bucket  string
}

// NewHandler constructs a Handler from an S3 client and the designated
// bucket. Pass nil when the deployment uses local storage; the route then
// reports uploads as unavailable.
func NewHandler(client *s3.Client, bucket string) *Handler {
	h := &Handler{bucket: bucket}
	if client != nil {
		h.presign = s3.NewPresignClient(client)
	}
	return h
}

// RegisterRoutes attaches the presign route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/presign", h.presignUpload)
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type presignResponse struct {
	UploadURL        string `json:"uploadUrl"`
	Bucket           string `json:"bucket"`
	Key              string `json:"key"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

func (h *Handler) presignUpload(c *gin.Context) {
	if h.presign == nil {
		respond.Error(c, http.StatusNotImplemented, "uploads_unavailable", "direct uploads are not available in this deployment", nil)
		return
	}

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.FileName = strings.TrimSpace(req.FileName)
	req.ContentType = strings.TrimSpace(req.ContentType)

	if req.FileName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return
	}
	if _, ok := allowedContentTypes[req.ContentType]; !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "contentType is not allowed", nil)
		return
	}
	if req.SizeBytes <= 0 || req.SizeBytes > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sizeBytes exceeds limit", nil)
		return
	}

	sanitized, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid fileName", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	key := userID + "/" + time.Now().UTC().Format("2006-01-02") + "/" + uuid.NewString() + util.FileExt(sanitized)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}
	out, err := h.presign.PresignPutObject(c.Request.Context(), input, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpires
	})
	if err != nil {
		telemetry.Error("uploads.presign.failed", map[string]any{
			"err":         err.Error(),
			"bucket":      h.bucket,
			"key":         key,
			"contentType": req.ContentType,
			"sizeBytes":   req.SizeBytes,
			"request_id":  c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate upload url", nil)
		return
	}

	respond.JSON(c, http.StatusOK, presignResponse{
		UploadURL:        out.URL,
		Bucket:           h.bucket,
		Key:              key,
		ExpiresInSeconds: int64(presignExpires.Seconds()),
	})
}
