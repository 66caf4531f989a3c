package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// ByID filters by primary key
type ByID struct {
	ID string
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// NullsLastDesc orders by a nullable timestamp, newest first, rows without a
// value after all others, ties broken by id.
type NullsLastDesc struct {
	Field string
}

func (s NullsLastDesc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(fmt.Sprintf("CASE WHEN %s IS NULL THEN 1 ELSE 0 END", s.Field)).
		Order(fmt.Sprintf("%s DESC", s.Field)).
		Order("id ASC")
}
