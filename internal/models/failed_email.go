package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FailedEmail - письмо, которое не удалось отправить после всех повторов.
type FailedEmail struct {
	ID         string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Recipients datatypes.JSON `json:"recipients"`
	Subject    string         `gorm:"size:255" json:"subject"`
	TextBody   string         `gorm:"type:text" json:"-"`
	HTMLBody   string         `gorm:"type:text" json:"-"`
	Attempts   int            `json:"attempts"`
	LastError  string         `gorm:"type:text" json:"last_error"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (f *FailedEmail) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
