// Package console is the host application: it builds one registry per entity
// kind, injects the shared collaborators, and registers the HTTP routes.
package console

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/college-console/internal/config"
	"github.com/aanand-mishra/college-console/internal/http/handlers/activity"
	"github.com/aanand-mishra/college-console/internal/http/handlers/entity"
	"github.com/aanand-mishra/college-console/internal/http/handlers/notification"
	"github.com/aanand-mishra/college-console/internal/notify"
	"github.com/aanand-mishra/college-console/internal/registry"
	"github.com/aanand-mishra/college-console/internal/storage"
	"github.com/aanand-mishra/college-console/internal/validation"
)

// Console owns the three registries.
type Console struct {
	Students *registry.Students
	Courses  *registry.Courses
	Faculty  *registry.Faculty
}

// Deps are the collaborators shared by every registry.
type Deps struct {
	Sink     notify.Sink
	Observer registry.Observer // may be nil
	Picker   registry.Picker   // nil means registry.Uniform
	Log      *slog.Logger
}

// New builds the registries from the registry and notification settings.
func New(cfg *config.Config, deps Deps) (*Console, error) {
	policy, err := registry.ParseIDPolicy(cfg.Registry.IDPolicy)
	if err != nil {
		return nil, fmt.Errorf("console.New: %w", err)
	}

	opts := []registry.Option{
		registry.WithIDPolicy(policy),
		registry.WithNotifyOptions(cfg.Notifications.Options()),
		registry.WithUnifiedSuccess(cfg.Notifications.UnifySuccess),
	}
	if deps.Sink != nil {
		opts = append(opts, registry.WithSink(deps.Sink))
	}
	if deps.Observer != nil {
		opts = append(opts, registry.WithObserver(deps.Observer))
	}
	if deps.Picker != nil {
		opts = append(opts, registry.WithPicker(deps.Picker))
	}
	if deps.Log != nil {
		opts = append(opts, registry.WithLogger(deps.Log))
	}

	return &Console{
		Students: registry.NewStudents(validation.New(), opts...),
		Courses:  registry.NewCourses(opts...),
		Faculty:  registry.NewFaculty(opts...),
	}, nil
}

// Sizes reports the current record count per kind.
func (c *Console) Sizes() map[string]int {
	return map[string]int{
		c.Students.Kind(): c.Students.Len(),
		c.Courses.Kind():  c.Courses.Len(),
		c.Faculty.Kind():  c.Faculty.Len(),
	}
}

// Routes registers every endpoint on a new ServeMux.
//
// Route table:
//
//	POST   /api/students             → add a student
//	GET    /api/students             → list students
//	DELETE /api/students/{id}        → remove a student
//	(same three for /api/courses and /api/faculty)
//	GET    /api/notifications        → visible notifications
//	DELETE /api/notifications/{id}   → dismiss a notification
//	GET    /api/activity             → activity journal
//	GET    /metrics                  → metrics, when a handler is given
func (c *Console) Routes(feed notification.Feed, journal storage.Journal, metrics http.Handler) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", entity.New(c.Students))
	router.HandleFunc("GET /api/students", entity.GetList(c.Students))
	router.HandleFunc("DELETE /api/students/{id}", entity.Delete(c.Students))

	router.HandleFunc("POST /api/courses", entity.New(c.Courses))
	router.HandleFunc("GET /api/courses", entity.GetList(c.Courses))
	router.HandleFunc("DELETE /api/courses/{id}", entity.Delete(c.Courses))

	router.HandleFunc("POST /api/faculty", entity.New(c.Faculty))
	router.HandleFunc("GET /api/faculty", entity.GetList(c.Faculty))
	router.HandleFunc("DELETE /api/faculty/{id}", entity.Delete(c.Faculty))

	router.HandleFunc("GET /api/notifications", notification.List(feed))
	router.HandleFunc("DELETE /api/notifications/{id}", notification.Dismiss(feed))

	router.HandleFunc("GET /api/activity", activity.List(journal))

	if metrics != nil {
		router.Handle("GET /metrics", metrics)
	}

	return router
}
