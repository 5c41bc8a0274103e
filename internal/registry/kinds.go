package registry

import (
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/college-console/internal/types"
)

// Registries of the three console kinds.
type (
	Students = Registry[types.Student, types.StudentDraft]
	Courses  = Registry[types.Course, types.CourseDraft]
	Faculty  = Registry[types.Faculty, types.FacultyDraft]
)

// User-facing messages.
const (
	MsgInvalidEmail = "Please enter a valid email address"
	MsgStudentAdded = "Student added successfully!"
)

// StudentKind validates the email with v and announces every successful add.
func StudentKind(v *validator.Validate) Kind[types.Student, types.StudentDraft] {
	return Kind[types.Student, types.StudentDraft]{
		Name: "student",
		Seed: []types.Student{
			{ID: 1, Name: "John Doe", Email: "john@example.com", Major: "Computer Science", Avatar: types.StudentAvatar},
			{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Major: "Biology", Avatar: types.StudentAvatar},
		},
		Validate: func(d types.StudentDraft) error {
			return v.Struct(d)
		},
		InvalidMessage: MsgInvalidEmail,
		Build: func(id int, d types.StudentDraft, _ Picker) types.Student {
			return types.Student{ID: id, Name: d.Name, Email: d.Email, Major: d.Major, Avatar: types.StudentAvatar}
		},
		ID:           func(s types.Student) int { return s.ID },
		AddedMessage: MsgStudentAdded,
	}
}

// CourseKind accepts every draft and colors the course from
// types.CoursePalette(). Adds are silent.
func CourseKind() Kind[types.Course, types.CourseDraft] {
	return Kind[types.Course, types.CourseDraft]{
		Name: "course",
		Seed: []types.Course{
			{ID: 1, Code: "CS101", Name: "Introduction to Programming", Instructor: "Dr. Smith", Color: "bg-blue-500"},
			{ID: 2, Code: "BIO201", Name: "Cell Biology", Instructor: "Dr. Johnson", Color: "bg-green-500"},
		},
		Build: func(id int, d types.CourseDraft, pick Picker) types.Course {
			palette := types.CoursePalette()
			return types.Course{
				ID:         id,
				Code:       d.Code,
				Name:       d.Name,
				Instructor: d.Instructor,
				Color:      palette[pick.Pick(len(palette))],
			}
		},
		ID: func(c types.Course) int { return c.ID },
	}
}

// FacultyKind accepts every draft, including malformed emails. Adds are silent.
func FacultyKind() Kind[types.Faculty, types.FacultyDraft] {
	return Kind[types.Faculty, types.FacultyDraft]{
		Name: "faculty",
		Seed: []types.Faculty{
			{ID: 1, Name: "Dr. Smith", Email: "smith@example.com", Department: "Computer Science", Avatar: types.FacultyAvatar},
			{ID: 2, Name: "Dr. Johnson", Email: "johnson@example.com", Department: "Biology", Avatar: types.FacultyAvatar},
		},
		Build: func(id int, d types.FacultyDraft, _ Picker) types.Faculty {
			return types.Faculty{ID: id, Name: d.Name, Email: d.Email, Department: d.Department, Avatar: types.FacultyAvatar}
		},
		ID: func(f types.Faculty) int { return f.ID },
	}
}

// NewStudents, NewCourses and NewFaculty build one registry per kind.
func NewStudents(v *validator.Validate, opts ...Option) *Students {
	return New(StudentKind(v), opts...)
}

func NewCourses(opts ...Option) *Courses { return New(CourseKind(), opts...) }

func NewFaculty(opts ...Option) *Faculty { return New(FacultyKind(), opts...) }
