package model

import (
	"time"
)

type StorageType string // where the document bytes live

const (
	StorageLocal StorageType = "local" // on-disk under the upload dir
	StorageS3    StorageType = "s3"    // object storage
)

type Document struct {
	ID          uint        `gorm:"primarykey" json:"id"`                              // document ID
	UserID      uint        `gorm:"index;not null" json:"user_id"`                     // owner
	Name        string      `gorm:"size:255;not null" json:"name"`                     // original filename
	StoredName  string      `gorm:"size:255;not null" json:"-"`                        // storage key (uuid-prefixed)
	FileType    string      `gorm:"size:20;index" json:"file_type"`                    // pdf, image, document, spreadsheet, ...
	Category    string      `gorm:"size:50;default:'general';index" json:"category"`   // user-assigned category
	SizeBytes   int64       `gorm:"not null" json:"size_bytes"`                        // file size
	StorageType StorageType `gorm:"type:varchar(10);default:'local'" json:"storage"`   // local or s3
	URL         string      `gorm:"size:500" json:"url,omitempty"`                     // public URL for s3 objects
	CreatedAt   time.Time   `json:"created_at"`                                        // uploaded timestamp
	UpdatedAt   time.Time   `json:"updated_at"`                                        // updated timestamp
}

func (Document) TableName() string {
	return "documents"
}
