package api

import (
	"net/http"

	"github.com/St1cky1/marketplace-service/internal/api/handlers"
	mw "github.com/St1cky1/marketplace-service/internal/api/middleware"
	"github.com/St1cky1/marketplace-service/internal/infrastructure/auth"
	"github.com/St1cky1/marketplace-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Services struct {
	Auth    *usecase.AuthService
	Task    *usecase.TaskService
	Bid     *usecase.BidEngine
	Booking *usecase.BookingService
	Review  *usecase.ReviewService
	User    *usecase.UserService
	Stats   *usecase.StatsService
}

func NewRouter(services *Services, jwtManager *auth.JWTManager, avatarDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	authHandler := handlers.NewAuthHandler(services.Auth)
	taskHandler := handlers.NewTaskHandler(services.Task)
	bidHandler := handlers.NewBidHandler(services.Bid)
	bookingHandler := handlers.NewBookingHandler(services.Booking)
	reviewHandler := handlers.NewReviewHandler(services.Review)
	userHandler := handlers.NewUserHandler(services.User, services.Stats)

	requireAuth := mw.Auth(jwtManager)

	r.Route("/api/v1", func(r chi.Router) {
		// публичные ручки
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(requireAuth).Post("/logout", authHandler.Logout)
		})

		// все остальное только с токеном
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTask)
					r.Put("/status", taskHandler.UpdateStatus)
				})
			})

			r.Route("/bids", func(r chi.Router) {
				r.Post("/", bidHandler.SubmitBid)
				r.Get("/pending", bidHandler.ListPending)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/accept", bidHandler.AcceptBid)
					r.Post("/reject", bidHandler.RejectBid)
					r.Post("/withdraw", bidHandler.WithdrawBid)
				})
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/active", bookingHandler.ListActive)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/progress", bookingHandler.StartBooking)
					r.Post("/complete", bookingHandler.CompleteBooking)
				})
			})

			r.Post("/reviews", reviewHandler.CreateReview)

			// текущий пользователь
			r.Route("/user", func(r chi.Router) {
				r.Get("/", userHandler.GetMe)
				r.Get("/tasks", taskHandler.ListMyTasks)
				r.Post("/avatar", userHandler.UploadAvatar)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.ListUsers)
				r.Get("/statistics", userHandler.GetStatistics)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.GetUser)
					r.Put("/", userHandler.UpdateUser)
					r.Get("/reviews", reviewHandler.ListUserReviews)
				})
			})
		})
	})

	// отдаем загруженные аватарки как статику
	fileServer := http.StripPrefix("/avatars/", http.FileServer(http.Dir(avatarDir)))
	r.Get("/avatars/*", fileServer.ServeHTTP)

	return r
}
