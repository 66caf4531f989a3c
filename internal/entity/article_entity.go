package entity

import "time"

type Article struct {
	Id          string
	Title       string
	Author      string
	ContentHtml string
	CreatedAt   time.Time
	PublishedAt *time.Time
}
