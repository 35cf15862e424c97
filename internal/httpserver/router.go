package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"craftmarket/internal/auth"
	"craftmarket/internal/config"
	"craftmarket/internal/httpserver/handlers"
	"craftmarket/internal/mail"
	"craftmarket/internal/storage"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger, cfg config.Config, m mail.Mailer, store *storage.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(metricsMiddleware)

	r.Post("/register", handlers.Register(db, lg, m, store, cfg))
	r.Post("/login", handlers.Login(db, lg))
	r.Get("/verify/email/{id}", handlers.VerifyEmail(db, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(db))
		protected.Get("/currentuser", handlers.CurrentUser(db, lg))
		protected.Post("/logout", handlers.Logout(db))
		protected.Post("/contact", handlers.Contact(lg, m))

		protected.Get("/user", handlers.ListUsers(db, lg))
		protected.Get("/user/{id}", handlers.ShowUser(db, lg))
		protected.Post("/user", handlers.CreateUser(db, lg, store))
		protected.Put("/user/{id}", handlers.UpdateUser(db, lg, store))
		protected.Delete("/user/{id}", handlers.DeleteUser(db, lg, store))

		protected.Get("/role", handlers.ListRoles(db, lg))
		protected.Get("/role/{id}", handlers.ShowRole(db, lg))
		protected.Post("/role", handlers.CreateRole(db, lg))
		protected.Put("/role/{id}", handlers.UpdateRole(db, lg))
		protected.Delete("/role/{id}", handlers.DeleteRole(db, lg))

		protected.Get("/company", handlers.ListCompanies(db, lg))
		protected.Get("/company/{id}", handlers.ShowCompany(db, lg))
		protected.Post("/company", handlers.CreateCompany(db, lg, m, store, cfg))
		protected.Put("/company/{id}", handlers.UpdateCompany(db, lg, store))
		protected.Delete("/company/{id}", handlers.DeleteCompany(db, lg, store))

		protected.Get("/product", handlers.ListProducts(db, lg))
		protected.Get("/product/{id}", handlers.ShowProduct(db, lg))
		protected.Post("/product", handlers.CreateProduct(db, lg, store))
		protected.Put("/product/{id}", handlers.UpdateProduct(db, lg, store))
		protected.Delete("/product/{id}", handlers.DeleteProduct(db, lg, store))

		protected.Get("/category", handlers.ListCategories(db, lg))
		protected.Get("/category/{id}", handlers.ShowCategory(db, lg))
		protected.Post("/category", handlers.CreateCategory(db, lg))
		protected.Put("/category/{id}", handlers.UpdateCategory(db, lg))
		protected.Delete("/category/{id}", handlers.DeleteCategory(db, lg))

		protected.Get("/tag", handlers.ListTags(db, lg))
		protected.Get("/tag/{id}", handlers.ShowTag(db, lg))
		protected.Post("/tag", handlers.CreateTag(db, lg))
		protected.Put("/tag/{id}", handlers.UpdateTag(db, lg))
		protected.Delete("/tag/{id}", handlers.DeleteTag(db, lg))

		protected.Get("/chat", handlers.ListChats(db, lg))
		protected.Get("/chat/{id}", handlers.ShowChat(db, lg))
		protected.Post("/chat", handlers.CreateChat(db, lg))
		protected.Put("/chat/{id}", handlers.UpdateChat(db, lg))
		protected.Delete("/chat/{id}", handlers.DeleteChat(db, lg))

		protected.Get("/message", handlers.ListMessages(db, lg))
		protected.Get("/message/{id}", handlers.ShowMessage(db, lg))
		protected.Post("/message", handlers.CreateMessage(db, lg))
		protected.Put("/message/{id}", handlers.UpdateMessage(db, lg))
		protected.Delete("/message/{id}", handlers.DeleteMessage(db, lg))

		protected.Get("/ticket", handlers.ListTickets(db, lg))
		protected.Get("/ticket/{id}", handlers.ShowTicket(db, lg))
		protected.Post("/ticket", handlers.CreateTicket(db, lg))
		protected.Put("/ticket/{id}", handlers.UpdateTicket(db, lg))
		protected.Delete("/ticket/{id}", handlers.DeleteTicket(db, lg))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Root()))))
	return r
}
