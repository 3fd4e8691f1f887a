package entities

import (
	"errors"
	"time"
)

// Course domain errors.
var (
	ErrCourseNotFound = errors.New("course not found")
	// ErrImageNotFound signals that a course row references an image file
	// that is missing from the content store.
	ErrImageNotFound = errors.New("course image not found")
)

// Course always has exactly one author; AuthorID is set at creation and
// immutable. Image holds the stored file reference, empty when the course
// has no image.
type Course struct {
	ID          string
	Title       string
	Description string
	AuthorID    string
	Image       string
	CreatedAt   time.Time
}
