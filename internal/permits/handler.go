package permits

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"permits-backend/internal/businesses"
	"permits-backend/internal/shared/server/middleware"
	"permits-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes under the business resource.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/businesses/:id/documents", h.list)
	rg.POST("/businesses/:id/documents", h.create)
	rg.GET("/businesses/:id/documents/:documentId", h.get)
	rg.PATCH("/businesses/:id/documents/:documentId", h.update)
	rg.GET("/businesses/:id/documents/:documentId/file", h.file)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	businessID := c.Param("id")
	c.Set("businessId", businessID)

	list, err := h.Svc.List(c.Request.Context(), userID, businessID)
	if err != nil {
		h.fail(c, err, "failed to list documents")
		return
	}

	resp := make([]PermitResponse, 0, len(list))
	for _, doc := range list {
		resp = append(resp, toResponse(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	businessID := c.Param("id")
	documentID := c.Param("documentId")
	c.Set("businessId", businessID)
	c.Set("documentId", documentID)

	doc, err := h.Svc.Get(c.Request.Context(), userID, businessID, documentID)
	if err != nil {
		h.fail(c, err, "failed to load document")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(doc))
}

type createDocumentRequest struct {
	DocumentCategory      string          `json:"documentCategory"`
	Title                 string          `json:"title"`
	PermitNumber          string          `json:"permitNumber"`
	Status                string          `json:"status"`
	StartDate             string          `json:"startDate"`
	EndDate               string          `json:"endDate"`
	AutoRenew             any             `json:"autoRenew"`
	JurisdictionName      string          `json:"jurisdictionName"`
	IssuingAuthorityName  string          `json:"issuingAuthorityName"`
	RawExtraction         json.RawMessage `json:"rawExtraction"`
	SourceFileBucket      *string         `json:"sourceFileBucket"`
	SourceFilePath        *string         `json:"sourceFilePath"`
	SourceFileContentType *string         `json:"sourceFileContentType"`
	SourceFileName        *string         `json:"sourceFileName"`
	SourceFileSize        any             `json:"sourceFileSize"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	businessID := c.Param("id")
	c.Set("businessId", businessID)

	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Create(c.Request.Context(), userID, businessID, CreateInput{
		Category:             req.DocumentCategory,
		Title:                req.Title,
		PermitNumber:         req.PermitNumber,
		Status:               req.Status,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		AutoRenew:            req.AutoRenew,
		JurisdictionName:     req.JurisdictionName,
		IssuingAuthorityName: req.IssuingAuthorityName,
		RawExtraction:        req.RawExtraction,
		FileRef: FileRefInput{
			Bucket:      req.SourceFileBucket,
			Path:        req.SourceFilePath,
			ContentType: req.SourceFileContentType,
			Name:        req.SourceFileName,
			Size:        req.SourceFileSize,
		},
	})
	if err != nil {
		h.fail(c, err, "failed to create document")
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

type updateDocumentRequest struct {
	DocumentCategory      *string         `json:"documentCategory"`
	Title                 *string         `json:"title"`
	PermitNumber          *string         `json:"permitNumber"`
	Status                *string         `json:"status"`
	StartDate             *string         `json:"startDate"`
	EndDate               *string         `json:"endDate"`
	AutoRenew             any             `json:"autoRenew"`
	JurisdictionName      *string         `json:"jurisdictionName"`
	IssuingAuthorityName  *string         `json:"issuingAuthorityName"`
	RawExtraction         json.RawMessage `json:"rawExtraction"`
	SourceFileBucket      *string         `json:"sourceFileBucket"`
	SourceFilePath        *string         `json:"sourceFilePath"`
	SourceFileContentType *string         `json:"sourceFileContentType"`
	SourceFileName        *string         `json:"sourceFileName"`
	SourceFileSize        any             `json:"sourceFileSize"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	businessID := c.Param("id")
	documentID := c.Param("documentId")
	c.Set("businessId", businessID)
	c.Set("documentId", documentID)

	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Update(c.Request.Context(), userID, businessID, documentID, UpdateInput{
		Category:             req.DocumentCategory,
		Title:                req.Title,
		PermitNumber:         req.PermitNumber,
		Status:               req.Status,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		AutoRenew:            req.AutoRenew,
		JurisdictionName:     req.JurisdictionName,
		IssuingAuthorityName: req.IssuingAuthorityName,
		RawExtraction:        req.RawExtraction,
		FileRef: FileRefInput{
			Bucket:      req.SourceFileBucket,
			Path:        req.SourceFilePath,
			ContentType: req.SourceFileContentType,
			Name:        req.SourceFileName,
			Size:        req.SourceFileSize,
		},
	})
	if err != nil {
		h.fail(c, err, "failed to update document")
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) file(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	businessID := c.Param("id")
	documentID := c.Param("documentId")
	c.Set("businessId", businessID)
	c.Set("documentId", documentID)

	src, err := h.Svc.OpenFile(c.Request.Context(), userID, businessID, documentID)
	if err != nil {
		h.fail(c, err, "failed to open document file")
		return
	}
	defer src.Body.Close()

	extraHeaders := map[string]string{}
	if src.Name != "" {
		extraHeaders["Content-Disposition"] = fmt.Sprintf("inline; filename=%q", src.Name)
	}
	c.DataFromReader(http.StatusOK, src.Size, src.ContentType, src.Body, extraHeaders)
}

// fail maps service errors onto the shared error envelope.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, businesses.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "business not found", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrInvalidFileRef):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
