// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a piece of user-authored content. The author is fixed at
// creation time; likes live in an explicit join table and hashtags in a
// many-to-many association.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Image       string    `json:"image,omitempty"`
	IsPublished bool      `gorm:"default:false" json:"is_published"`
	Hashtags    []Hashtag `gorm:"many2many:post_hashtags" json:"hashtags,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
