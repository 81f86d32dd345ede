package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/solodesk/solodesk/internal/auth"
	"github.com/solodesk/solodesk/internal/config"
	"github.com/solodesk/solodesk/internal/metrics"
	"github.com/solodesk/solodesk/internal/model"
)

// Dependencies carries everything the router needs. Controllers are built by
// the caller so tests can swap any of them for stubs.
type Dependencies struct {
	Auth      *AuthController
	Tasks     *TaskController
	Clients   *ClientController
	Projects  *ProjectController
	Invoices  *InvoiceController
	Contracts *ContractController
	Dashboard *DashboardController

	Sessions auth.SessionStore
	AuthCfg  config.AuthConfig
	Metrics  *metrics.Metrics
}

func NewRouter(d Dependencies) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	if d.Metrics != nil {
		r.Use(Observe(d.Metrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Post("/api/v1/auth/login", d.Auth.login)
	r.Post("/api/v1/auth/logout", d.Auth.logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(d.Sessions, d.AuthCfg.CookieName, d.AuthCfg.LoginPath))

		r.Route("/api/v1/tasks", func(r chi.Router) {
			r.Get("/", d.Tasks.list)
			r.Post("/", d.Tasks.create)
			r.Post("/quick", d.Tasks.quickAdd)
			r.Get("/stats", d.Tasks.stats)
			r.Get("/labels", d.Tasks.labels)
			r.Get("/groups", d.Tasks.groups)
			r.Get("/board", d.Tasks.boardView)
			r.Get("/calendar", d.Tasks.calendar)
			r.Patch("/bulk", d.Tasks.bulkUpdate)
			r.Delete("/bulk", d.Tasks.bulkDelete)
			r.Get("/{id}", d.Tasks.get)
			r.Patch("/{id}", d.Tasks.update)
			r.Delete("/{id}", d.Tasks.delete)
			r.Post("/{id}/move", d.Tasks.move)
			r.Get("/{id}/subtasks", d.Tasks.subtasks)
		})

		r.Route("/api/v1/clients", func(r chi.Router) {
			r.Get("/", d.Clients.list)
			r.Post("/", d.Clients.create)
			r.Get("/{id}", d.Clients.get)
			r.Patch("/{id}", d.Clients.update)
			r.Delete("/{id}", d.Clients.delete)
			r.Post("/{id}/touch", d.Clients.touch)
		})

		r.Route("/api/v1/projects", func(r chi.Router) {
			r.Get("/", d.Projects.list)
			r.Post("/", d.Projects.create)
			r.Get("/{id}", d.Projects.get)
			r.Patch("/{id}", d.Projects.update)
			r.Delete("/{id}", d.Projects.delete)
			r.Get("/{id}/tasks", d.Projects.projectTasks)
		})

		r.Route("/api/v1/invoices", func(r chi.Router) {
			r.Get("/", d.Invoices.list)
			r.Post("/", d.Invoices.create)
			r.Get("/{id}", d.Invoices.get)
			r.Delete("/{id}", d.Invoices.delete)
			r.Post("/{id}/send", func(w http.ResponseWriter, req *http.Request) {
				d.Invoices.setStatus(w, req, model.InvoiceSent)
			})
			r.Post("/{id}/pay", func(w http.ResponseWriter, req *http.Request) {
				d.Invoices.setStatus(w, req, model.InvoicePaid)
			})
		})

		r.Route("/api/v1/contracts", func(r chi.Router) {
			r.Get("/", d.Contracts.list)
			r.Post("/", d.Contracts.create)
			r.Get("/{id}", d.Contracts.get)
			r.Patch("/{id}", d.Contracts.update)
			r.Delete("/{id}", d.Contracts.delete)
			r.Get("/{id}/render", d.Contracts.render)
			r.Post("/{id}/send", d.Contracts.send)
			r.Post("/{id}/sign", d.Contracts.sign)
		})

		r.Route("/api/v1/dashboard", func(r chi.Router) {
			r.Get("/", d.Dashboard.overview)
			r.Get("/badge", d.Dashboard.badgeCount)
		})
		r.Get("/api/v1/team/members", d.Dashboard.teamMembers)
	})

	return r
}
