package extraction

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"permits-backend/internal/llm"
	"permits-backend/internal/shared/server/middleware"
	"permits-backend/internal/shared/server/respond"
)

// Uploads past this size get rejected before they reach storage or the
// model provider.
const maxUploadBytes = 15 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the extraction route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/permits", h.extract)
}

type extractResponse struct {
	Title                 string          `json:"title"`
	DocumentCategory      string          `json:"documentCategory"`
	PermitNumber          string          `json:"permitNumber"`
	Status                string          `json:"status"`
	StartDate             string          `json:"startDate"`
	EndDate               string          `json:"endDate"`
	AutoRenew             bool            `json:"autoRenew"`
	JurisdictionName      string          `json:"jurisdictionName"`
	IssuingAuthorityName  string          `json:"issuingAuthorityName"`
	RawExtraction         json.RawMessage `json:"rawExtraction"`
	SourceFileBucket      string          `json:"sourceFileBucket"`
	SourceFilePath        string          `json:"sourceFilePath"`
	SourceFileContentType string          `json:"sourceFileContentType"`
	SourceFileName        string          `json:"sourceFileName"`
	SourceFileSize        int64           `json:"sourceFileSize"`
}

func (h *Handler) extract(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	// A supplied stored reference wins over an attached file: the object is
	// reused without re-uploading.
	bucket := c.PostForm("sourceFileBucket")
	key := c.PostForm("sourceFilePath")
	if bucket != "" && key != "" {
		size, _ := strconv.ParseInt(c.PostForm("sourceFileSize"), 10, 64)
		result, err := h.Svc.ExtractStored(c.Request.Context(), userID, FileRef{
			Bucket:      bucket,
			Path:        key,
			ContentType: c.PostForm("sourceFileContentType"),
			Name:        c.PostForm("sourceFileName"),
			Size:        size,
		})
		if err != nil {
			h.fail(c, err)
			return
		}
		h.ok(c, result)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read file", nil)
		return
	}
	if len(data) > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file too large", nil)
		return
	}

	result, err := h.Svc.Extract(c.Request.Context(), userID, Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, result)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrInvalidRef):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrLLM):
		var malformed *llm.MalformedOutputError
		var details any
		if errors.As(err, &malformed) {
			details = gin.H{"rawContent": string(malformed.Raw)}
		}
		respond.Error(c, http.StatusBadGateway, "llm_error", "document extraction failed", details)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process document", nil)
	}
}

func (h *Handler) ok(c *gin.Context, result Result) {
	respond.JSON(c, http.StatusOK, extractResponse{
		Title:                 result.Fields.Title,
		DocumentCategory:      result.Fields.DocumentCategory,
		PermitNumber:          result.Fields.PermitNumber,
		Status:                result.Fields.Status,
		StartDate:             result.Fields.StartDate,
		EndDate:               result.Fields.EndDate,
		AutoRenew:             result.Fields.AutoRenew,
		JurisdictionName:      result.Fields.JurisdictionName,
		IssuingAuthorityName:  result.Fields.IssuingAuthorityName,
		RawExtraction:         result.RawExtraction,
		SourceFileBucket:      result.File.Bucket,
		SourceFilePath:        result.File.Path,
		SourceFileContentType: result.File.ContentType,
		SourceFileName:        result.File.Name,
		SourceFileSize:        result.File.Size,
	})
}
