package model

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	Id           string         `gorm:"type:varchar(36);primaryKey"`
	Title        string         `gorm:"type:varchar(255);not null"`
	ContentHtml  string         `gorm:"type:text"`
	SubjectId    *string        `gorm:"type:varchar(255);index"`
	SubtopicId   *string        `gorm:"type:varchar(255);index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	LastModified *time.Time     `gorm:"index"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
