package models

import (
	"gorm.io/gorm"
)

// Review is a rated writeup of a trip or hotel by a traveler.
type Review struct {
	gorm.Model
	UserID   uint     `json:"userId" gorm:"not null;index:idx_reviews_user_item,unique"`
	User     User     `json:"user"`
	ItemType ItemType `json:"itemType" gorm:"not null;index:idx_reviews_user_item,unique;index:idx_reviews_item"`
	ItemID   uint     `json:"itemId" gorm:"not null;index:idx_reviews_user_item,unique;index:idx_reviews_item"`
	Rating   int      `json:"rating" gorm:"not null"`
	Title    string   `json:"title"`
	Body     string   `json:"body" gorm:"type:text"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}
