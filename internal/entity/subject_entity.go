package entity

import "time"

// Subject is a top-level taxonomy node. Its name is its identity.
type Subject struct {
	Id        string
	CreatedAt time.Time
}

// Subtopic is a second-level node, unique by name within its Subject.
type Subtopic struct {
	Id        string
	SubjectId string
	CreatedAt time.Time
}
