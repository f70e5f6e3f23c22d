package model

import (
	"time"

	"github.com/lib/pq"
)

type BlogPost struct {
	ID        uint           `gorm:"primarykey" json:"id"`            // blog post ID
	UserID    uint           `gorm:"index;not null" json:"user_id"`   // author
	Title     string         `gorm:"size:200;not null" json:"title"`  // post title
	Content   string         `gorm:"type:text" json:"content"`        // post body
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`         // free-form tags
	IsPublic  bool           `gorm:"default:false" json:"is_public"`  // visible to other users
	CreatedAt time.Time      `gorm:"index" json:"created_at"`         // created timestamp
	UpdatedAt time.Time      `json:"updated_at"`                      // updated timestamp
}

func (BlogPost) TableName() string {
	return "blog_posts"
}
