package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/queueshq/queues-service/internal/api/http/handlers"
	"github.com/queueshq/queues-service/internal/auth"
)

// RouteConfig bundles everything route registration needs.
type RouteConfig struct {
	Auth      *auth.Middleware
	Health    *handlers.HealthHandler
	Tickets   *handlers.TicketsHandler
	Taxonomy  *handlers.TaxonomyHandler
	Directory *handlers.DirectoryHandler
	KB        *handlers.KnowledgebaseHandler
}

// RegisterRoutes wires all endpoints onto the app.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	health := app.Group("/health")
	health.Get("/live", cfg.Health.Live)
	health.Get("/ready", cfg.Health.Ready)
	health.Get("/metrics", cfg.Health.Metrics)

	tickets := app.Group("/tickets", cfg.Auth.Handle, auth.RequireRole(auth.RoleAgent))
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	// literal route before the :id wildcard
	tickets.Get("/counts", cfg.Tickets.Counts)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)
	tickets.Get("/:id/history", cfg.Tickets.ListHistory)

	admin := app.Group("/admin", cfg.Auth.Handle, auth.RequireRole(auth.RoleAdmin))

	admin.Post("/categories", cfg.Taxonomy.CreateCategory)
	admin.Get("/categories", cfg.Taxonomy.ListCategories)
	admin.Put("/categories/:id", cfg.Taxonomy.RenameCategory)
	admin.Delete("/categories/:id", cfg.Taxonomy.DeleteCategory)

	admin.Post("/statuses", cfg.Taxonomy.CreateStatus)
	admin.Get("/statuses", cfg.Taxonomy.ListStatuses)
	admin.Put("/statuses/:id", cfg.Taxonomy.RenameStatus)
	admin.Delete("/statuses/:id", cfg.Taxonomy.DeleteStatus)

	admin.Post("/priorities", cfg.Taxonomy.CreatePriority)
	admin.Get("/priorities", cfg.Taxonomy.ListPriorities)
	admin.Put("/priorities/:id", cfg.Taxonomy.RenamePriority)
	admin.Delete("/priorities/:id", cfg.Taxonomy.DeletePriority)

	admin.Post("/help-topics", cfg.Taxonomy.CreateHelpTopic)
	admin.Get("/help-topics", cfg.Taxonomy.ListHelpTopics)
	admin.Put("/help-topics/:id", cfg.Taxonomy.UpdateHelpTopic)
	admin.Delete("/help-topics/:id", cfg.Taxonomy.DeleteHelpTopic)

	admin.Post("/custom-fields", cfg.Taxonomy.CreateCustomField)
	admin.Get("/custom-fields", cfg.Taxonomy.ListCustomFields)
	admin.Put("/custom-fields/:id", cfg.Taxonomy.UpdateCustomField)
	admin.Delete("/custom-fields/:id", cfg.Taxonomy.DeleteCustomField)

	admin.Post("/report-categories", cfg.Taxonomy.CreateReportCategory)
	admin.Get("/report-categories", cfg.Taxonomy.ListReportCategories)
	admin.Put("/report-categories/:id", cfg.Taxonomy.UpdateReportCategory)
	admin.Delete("/report-categories/:id", cfg.Taxonomy.DeleteReportCategory)

	admin.Post("/organizations", cfg.Directory.CreateOrganization)
	admin.Get("/organizations", cfg.Directory.ListOrganizations)
	admin.Put("/organizations/:id", cfg.Directory.UpdateOrganization)
	admin.Delete("/organizations/:id", cfg.Directory.DeleteOrganization)

	admin.Post("/agents", cfg.Directory.RegisterAgent)
	admin.Get("/agents", cfg.Directory.ListAgents)
	admin.Put("/agents/:id/queues", cfg.Directory.UpdateAgentQueues)
	admin.Delete("/agents/:id", cfg.Directory.DeleteAgent)

	admin.Post("/users", cfg.Directory.RegisterUser)
	admin.Get("/users", cfg.Directory.ListUsers)
	admin.Delete("/users/:id", cfg.Directory.DeleteUser)

	admin.Post("/kb/categories", cfg.KB.CreateCategory)
	admin.Get("/kb/categories", cfg.KB.ListCategories)
	admin.Put("/kb/categories/:id", cfg.KB.RenameCategory)
	admin.Delete("/kb/categories/:id", cfg.KB.DeleteCategory)

	admin.Post("/kb/articles", cfg.KB.CreateArticle)
	admin.Get("/kb/articles", cfg.KB.ListArticles)
	admin.Get("/kb/articles/:id", cfg.KB.GetArticle)
	admin.Put("/kb/articles/:id", cfg.KB.UpdateArticle)
	admin.Delete("/kb/articles/:id", cfg.KB.DeleteArticle)

	admin.Post("/canned-responses", cfg.KB.CreateCannedResponse)
	admin.Get("/canned-responses", cfg.KB.ListCannedResponses)
	admin.Put("/canned-responses/:id", cfg.KB.UpdateCannedResponse)
	admin.Delete("/canned-responses/:id", cfg.KB.DeleteCannedResponse)
}
