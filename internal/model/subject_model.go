package model

import "time"

type Subject struct {
	Id        string    `gorm:"type:varchar(255);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Subject) TableName() string {
	return "subjects"
}

type Subtopic struct {
	SubjectId string    `gorm:"type:varchar(255);primaryKey"`
	Id        string    `gorm:"type:varchar(255);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Subtopic) TableName() string {
	return "subtopics"
}
