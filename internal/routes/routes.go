package routes

import (
	"net/http"

	"github.com/RavanaDevs/expense-tacker-web-backend/internal/handlers"
	appmw "github.com/RavanaDevs/expense-tacker-web-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello World"))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Works Fine!"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", handlers.SignupHandler)
		r.Post("/signin", handlers.SigninHandler)
		r.With(appmw.Authenticated).Post("/signout", handlers.SignoutHandler)
	})

	r.Route("/expense", func(r chi.Router) {
		r.Use(appmw.Authenticated)
		r.Post("/", handlers.CreateExpenseHandler)
		r.Post("/bulk", handlers.BulkCreateExpensesHandler)
		r.Get("/all", handlers.GetExpensesHandler)
		r.Get("/stats", handlers.GetExpenseStatsHandler)
		r.Get("/stats/date/{date}", handlers.GetExpenseStatsByDateHandler)
		r.Get("/date/{date}", handlers.GetExpensesByDateHandler)
		r.Get("/{id}", handlers.GetExpenseByIDHandler)
		r.Put("/{id}", handlers.UpdateExpenseHandler)
		r.Delete("/{id}", handlers.DeleteExpenseHandler)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Use(appmw.Authenticated)
		r.Get("/", handlers.GetSettingsHandler)
		r.Put("/", handlers.UpdateSettingsHandler)
		r.Get("/currency", handlers.GetCurrencySettingsHandler)
		r.Put("/currency", handlers.UpdateCurrencySettingsHandler)
		r.Get("/quick-amounts", handlers.GetQuickAmountSettingsHandler)
		r.Put("/quick-amounts", handlers.UpdateQuickAmountSettingsHandler)
		r.Get("/categories", handlers.GetCategorySettingsHandler)
		r.Put("/categories", handlers.UpdateCategorySettingsHandler)
		r.Get("/theme", handlers.GetThemeHandler)
		r.Put("/theme", handlers.UpdateThemeHandler)
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(appmw.Authenticated)
		r.Get("/all", handlers.GetUsersHandler)
		r.Post("/", handlers.CreateUserHandler)
		r.Get("/{id}", handlers.GetUserByIDHandler)
		r.Put("/{id}", handlers.UpdateUserHandler)
		r.Delete("/{id}", handlers.DeleteUserHandler)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
