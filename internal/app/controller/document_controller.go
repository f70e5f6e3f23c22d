package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/service"
	apperrors "github.com/edudesk/edudesk-backend/internal/errors"
	"github.com/edudesk/edudesk-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	documentService service.DocumentService
}

func NewDocumentController(documentService service.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

type PresignDocumentRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Category    string `json:"category"`
	Size        int64  `json:"size" binding:"required"`
}

type UpdateDocumentRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

// Upload accepts a multipart file and stores it on local disk
// POST /api/v1/documents/upload
func (ctrl *DocumentController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.UploadNoFile, "No file provided")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to process uploaded file")
		return
	}
	defer src.Close()

	doc, err := ctrl.documentService.Upload(userID, fileHeader.Filename, fileHeader.Size, c.PostForm("category"), src)
	if err != nil {
		if errors.Is(err, service.ErrFileTooLarge) {
			apperrors.RespondWithError(c, http.StatusRequestEntityTooLarge, apperrors.UploadFileTooLarge, err.Error())
			return
		}
		if errors.Is(err, service.ErrFileTypeBlocked) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, err.Error())
			return
		}
		log.Error("Failed to upload document", err, map[string]interface{}{
			"user_id": userID,
			"name":    fileHeader.Filename,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "upload document")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// Presign prepares a direct-to-S3 upload
// POST /api/v1/documents/presign
func (ctrl *DocumentController) Presign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req PresignDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	presigned, doc, err := ctrl.documentService.Presign(userID, req.FileName, req.ContentType, req.Category, req.Size)
	if err != nil {
		if errors.Is(err, service.ErrS3NotConfigured) {
			apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.UploadStorageUnavailable, "Object storage is not configured")
			return
		}
		if errors.Is(err, service.ErrFileTooLarge) {
			apperrors.RespondWithError(c, http.StatusRequestEntityTooLarge, apperrors.UploadFileTooLarge, err.Error())
			return
		}
		if errors.Is(err, service.ErrFileTypeBlocked) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, err.Error())
			return
		}
		log.Error("Failed to presign document upload", err, map[string]interface{}{
			"user_id": userID,
			"name":    req.FileName,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "presign upload")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"document":   doc,
		"upload_url": presigned.UploadURL,
		"file_url":   presigned.FileURL,
	})
}

// ListDocuments lists documents filtered by ?category=&file_type=
// GET /api/v1/documents
func (ctrl *DocumentController) ListDocuments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := parseIntQuery(c, "limit", 0)
	offset := parseIntQuery(c, "offset", 0)

	docs, err := ctrl.documentService.ListDocuments(userID, c.Query("category"), c.Query("file_type"), limit, offset)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list documents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"count":     len(docs),
	})
}

// GetDocument returns document metadata
// GET /api/v1/documents/:id
func (ctrl *DocumentController) GetDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := ctrl.documentService.GetDocument(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Document not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// Download streams a local document or redirects to its object URL
// GET /api/v1/documents/:id/download
func (ctrl *DocumentController) Download(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := ctrl.documentService.GetDocument(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Document not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get document")
		return
	}

	if doc.StorageType == model.StorageS3 {
		c.Redirect(http.StatusFound, doc.URL)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.File(ctrl.documentService.LocalPath(doc))
}

// UpdateDocument renames or recategorizes a document
// PUT /api/v1/documents/:id
func (ctrl *DocumentController) UpdateDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	doc, err := ctrl.documentService.UpdateDocument(id, userID, service.UpdateDocumentInput{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Document not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// DeleteDocument removes a document and its stored bytes
// DELETE /api/v1/documents/:id
func (ctrl *DocumentController) DeleteDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.documentService.DeleteDocument(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Document not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete document")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// Categories lists the distinct document categories in use
// GET /api/v1/documents/categories
func (ctrl *DocumentController) Categories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	categories, err := ctrl.documentService.Categories(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "document categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Stats returns storage statistics
// GET /api/v1/documents/stats
func (ctrl *DocumentController) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := ctrl.documentService.Stats(userID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "document stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
