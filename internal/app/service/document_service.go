package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/storage"
	"github.com/edudesk/edudesk-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeBlocked  = errors.New("file type is not allowed")
	ErrS3NotConfigured  = errors.New("object storage is not configured")
)

// allowedExtensions maps permitted file extensions to a coarse file type
var allowedExtensions = map[string]string{
	".pdf":  "pdf",
	".png":  "image",
	".jpg":  "image",
	".jpeg": "image",
	".gif":  "image",
	".txt":  "document",
	".md":   "document",
	".doc":  "document",
	".docx": "document",
	".xls":  "spreadsheet",
	".xlsx": "spreadsheet",
	".csv":  "spreadsheet",
	".ppt":  "presentation",
	".pptx": "presentation",
	".zip":  "archive",
}

type DocumentStats struct {
	TotalCount  int              `json:"total_count"`
	TotalBytes  int64            `json:"total_bytes"`
	CountByType map[string]int   `json:"count_by_type"`
	BytesByType map[string]int64 `json:"bytes_by_type"`
}

type UpdateDocumentInput struct {
	Name     *string
	Category *string
}

type DocumentService interface {
	Upload(userID uint, fileName string, size int64, category string, src io.Reader) (*model.Document, error)
	Presign(userID uint, fileName, contentType, category string, size int64) (*storage.PresignedUpload, *model.Document, error)
	GetDocument(id, userID uint) (*model.Document, error)
	ListDocuments(userID uint, category, fileType string, limit, offset int) ([]model.Document, error)
	UpdateDocument(id, userID uint, input UpdateDocumentInput) (*model.Document, error)
	DeleteDocument(ctx context.Context, id, userID uint) error
	LocalPath(doc *model.Document) string
	Categories(userID uint) ([]string, error)
	Stats(userID uint) (*DocumentStats, error)
}

type documentService struct {
	docRepo     repository.DocumentRepository
	local       *storage.LocalStorage
	s3          *storage.S3Storage // nil when not configured
	maxFileSize int64
}

func NewDocumentService(
	docRepo repository.DocumentRepository,
	local *storage.LocalStorage,
	s3 *storage.S3Storage,
	maxFileSize int64,
) DocumentService {
	return &documentService{
		docRepo:     docRepo,
		local:       local,
		s3:          s3,
		maxFileSize: maxFileSize,
	}
}

// Upload stores a multipart file on local disk and records it
func (s *documentService) Upload(userID uint, fileName string, size int64, category string, src io.Reader) (*model.Document, error) {
	if size > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	fileType, ok := allowedExtensions[ext]
	if !ok {
		return nil, ErrFileTypeBlocked
	}

	if category == "" {
		category = "general"
	}

	storedName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	written, err := s.local.Save(storedName, src)
	if err != nil {
		logger.Error("Failed to store uploaded file", err, map[string]interface{}{
			"user_id": userID,
			"name":    fileName,
		})
		return nil, err
	}

	doc := &model.Document{
		UserID:      userID,
		Name:        fileName,
		StoredName:  storedName,
		FileType:    fileType,
		Category:    category,
		SizeBytes:   written,
		StorageType: model.StorageLocal,
	}

	if err := s.docRepo.Create(doc); err != nil {
		s.local.Delete(storedName)
		return nil, err
	}

	logger.Info("Document uploaded", map[string]interface{}{
		"user_id":     userID,
		"document_id": doc.ID,
		"size_bytes":  written,
		"file_type":   fileType,
	})
	return doc, nil
}

// Presign prepares a direct-to-S3 upload and records the document row.
// The client PUTs the bytes to the returned URL itself.
func (s *documentService) Presign(userID uint, fileName, contentType, category string, size int64) (*storage.PresignedUpload, *model.Document, error) {
	if s.s3 == nil {
		return nil, nil, ErrS3NotConfigured
	}
	if size > s.maxFileSize {
		return nil, nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	fileType, ok := allowedExtensions[ext]
	if !ok {
		return nil, nil, ErrFileTypeBlocked
	}

	if category == "" {
		category = "general"
	}

	presigned, err := s.s3.PresignDocumentUpload(fileName, contentType)
	if err != nil {
		logger.Error("Failed to presign document upload", err, map[string]interface{}{
			"user_id": userID,
			"name":    fileName,
		})
		return nil, nil, err
	}

	doc := &model.Document{
		UserID:      userID,
		Name:        fileName,
		StoredName:  presigned.Key,
		FileType:    fileType,
		Category:    category,
		SizeBytes:   size,
		StorageType: model.StorageS3,
		URL:         presigned.FileURL,
	}

	if err := s.docRepo.Create(doc); err != nil {
		return nil, nil, err
	}

	logger.Info("Document upload presigned", map[string]interface{}{
		"user_id":     userID,
		"document_id": doc.ID,
		"key":         presigned.Key,
	})
	return presigned, doc, nil
}

func (s *documentService) GetDocument(id, userID uint) (*model.Document, error) {
	doc, err := s.docRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(userID uint, category, fileType string, limit, offset int) ([]model.Document, error) {
	return s.docRepo.FindByUser(userID, category, fileType, limit, offset)
}

func (s *documentService) UpdateDocument(id, userID uint, input UpdateDocumentInput) (*model.Document, error) {
	doc, err := s.docRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		doc.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil && *input.Category != "" {
		doc.Category = *input.Category
	}

	if err := s.docRepo.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes the row and then the stored bytes, best effort
func (s *documentService) DeleteDocument(ctx context.Context, id, userID uint) error {
	doc, err := s.docRepo.FindByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	if err := s.docRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	switch doc.StorageType {
	case model.StorageS3:
		if s.s3 != nil {
			if err := s.s3.DeleteObject(ctx, doc.StoredName); err != nil {
				logger.Error("Failed to delete object from storage", err, map[string]interface{}{
					"document_id": id,
					"key":         doc.StoredName,
				})
			}
		}
	default:
		if err := s.local.Delete(doc.StoredName); err != nil {
			logger.Error("Failed to delete file from disk", err, map[string]interface{}{
				"document_id": id,
			})
		}
	}

	logger.Info("Document deleted", map[string]interface{}{
		"user_id":     userID,
		"document_id": id,
	})
	return nil
}

// LocalPath returns the on-disk path for a locally stored document
func (s *documentService) LocalPath(doc *model.Document) string {
	return s.local.Path(doc.StoredName)
}

func (s *documentService) Categories(userID uint) ([]string, error) {
	return s.docRepo.Categories(userID)
}

func (s *documentService) Stats(userID uint) (*DocumentStats, error) {
	docs, err := s.docRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &DocumentStats{
		TotalCount:  len(docs),
		CountByType: make(map[string]int),
		BytesByType: make(map[string]int64),
	}
	for _, doc := range docs {
		stats.TotalBytes += doc.SizeBytes
		stats.CountByType[doc.FileType]++
		stats.BytesByType[doc.FileType] += doc.SizeBytes
	}
	return stats, nil
}
