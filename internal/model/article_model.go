package model

import (
	"time"

	"gorm.io/gorm"
)

type Article struct {
	Id          string         `gorm:"type:varchar(36);primaryKey"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Author      string         `gorm:"type:varchar(255);not null"`
	ContentHtml string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	PublishedAt *time.Time     `gorm:"index"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Article) TableName() string {
	return "articles"
}
