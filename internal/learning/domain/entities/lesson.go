package entities

import (
	"errors"
	"time"
)

// ErrLessonNotFound is returned when a lesson does not exist.
var ErrLessonNotFound = errors.New("lesson not found")

// Lesson belongs to exactly one course; CourseID is immutable. Lessons are
// deleted individually or together with their parent course.
type Lesson struct {
	ID        string
	CourseID  string
	Title     string
	Content   string
	CreatedAt time.Time
}
