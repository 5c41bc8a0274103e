// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// registries, handlers, storage, and utils can all import types without
// depending on each other.
//
// Every entity kind comes in two shapes:
//
//  1. The record (Student, Course, Faculty) — what the registry stores.
//     It carries the registry-assigned ID and the derived fields.
//
//  2. The draft (StudentDraft, CourseDraft, FacultyDraft) — what the user
//     types in. It never carries an ID or a derived field.
package types

import (
	"encoding/json"
	"strings"
)

// Student represents a student record in our system.
//
// Avatar is derived by the registry at creation time and never changes.
type Student struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Major  string `json:"major"`
	Avatar string `json:"avatar"`
}

// MarshalJSON adds the name's initials, the avatar fallback, to the
// encoded record.
func (s Student) MarshalJSON() ([]byte, error) {
	type plain Student
	return json.Marshal(struct {
		plain
		Initials string `json:"initials"`
	}{plain(s), Initials(s.Name)})
}

// StudentDraft is the user-supplied part of a Student.
//
// validate:"college_email" is a custom rule registered by the validation
// package. Name and Major have no rule: empty strings are accepted.
type StudentDraft struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"college_email"`
	Major string `json:"major"`
}

// Course represents a course offering. Color is a style tag drawn from
// CoursePalette() when the course is created.
type Course struct {
	ID         int    `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Color      string `json:"color"`
}

// CourseDraft is the user-supplied part of a Course. No field is validated.
type CourseDraft struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
}

// Faculty represents a faculty member.
type Faculty struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Avatar     string `json:"avatar"`
}

func (f Faculty) MarshalJSON() ([]byte, error) {
	type plain Faculty
	return json.Marshal(struct {
		plain
		Initials string `json:"initials"`
	}{plain(f), Initials(f.Name)})
}

// FacultyDraft is the user-supplied part of a Faculty. Email is NOT
// validated here, unlike StudentDraft.
type FacultyDraft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Derived-field values.
const (
	// StudentAvatar is the placeholder image reference given to every student.
	StudentAvatar = "/placeholder.svg?height=40&width=40"

	// FacultyAvatar is an inline SVG showing a grey "?" tile.
	FacultyAvatar = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' width='40' height='40' viewBox='0 0 40 40'%3E%3Crect width='40' height='40' fill='%23f0f0f0'/%3E%3Ctext x='50%25' y='50%25' font-size='20' text-anchor='middle' dy='.3em' fill='%23cccccc'%3E?%3C/text%3E%3C/svg%3E"
)

var coursePalette = [...]string{
	"bg-blue-500",
	"bg-green-500",
	"bg-yellow-500",
	"bg-red-500",
	"bg-purple-500",
}

// CoursePalette returns the fixed set of color tags a new course can
// receive. The slice is a fresh copy on every call.
func CoursePalette() []string {
	return append([]string(nil), coursePalette[:]...)
}

// Initials returns the first letter of every space-separated word in name,
// e.g. "Jane Smith" → "JS". It is the fallback shown when an avatar image
// cannot be loaded.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		for _, r := range word {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}
