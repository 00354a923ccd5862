package models

// Hashtag is a deduplicated tag name shared across posts. Rows are created
// on demand when a post references a new name and are never deleted when
// posts go away.
type Hashtag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;unique;not null" json:"name"`
}
