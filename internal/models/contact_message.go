package models

import (
	"gorm.io/gorm"
)

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null"`
	Subject string `json:"subject"`
	Body    string `json:"body" gorm:"type:text;not null"`
	IsRead  bool   `json:"isRead" gorm:"default:false"`
}

// TableName specifies the table name
func (ContactMessage) TableName() string {
	return "contact_messages"
}
