package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/repfit/repfit-go/internal/config"
	"github.com/repfit/repfit-go/internal/handler"
	"github.com/repfit/repfit-go/internal/middleware"
	"github.com/repfit/repfit-go/internal/repository"
	"github.com/repfit/repfit-go/internal/service"
	"github.com/repfit/repfit-go/internal/token"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	issuer := token.NewIssuer(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessExpiry, cfg.RefreshExpiry)
	accessVerifier := token.NewVerifier(cfg.AccessSecret)
	refreshVerifier := token.NewVerifier(cfg.RefreshSecret)

	userRepo := repository.NewUserRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	routineRepo := repository.NewRoutineRepository(db)

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, issuer, refreshVerifier, cfg.BcryptCost))
	exerciseHandler := handler.NewExerciseHandler(service.NewExerciseService(exerciseRepo))
	workoutHandler := handler.NewWorkoutHandler(service.NewWorkoutService(workoutRepo, userRepo))
	routineHandler := handler.NewRoutineHandler(service.NewRoutineService(routineRepo))
	dashboardHandler := handler.NewDashboardHandler(service.NewDashboardService(userRepo, workoutRepo))

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/auth/register", authHandler.HandleRegister)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
		r.Post("/api/v1/auth/refresh", authHandler.HandleRefresh)
		r.Post("/api/v1/auth/logout", authHandler.HandleLogout)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(accessVerifier))

		r.Get("/api/v1/auth/me", authHandler.HandleMe)
		r.Patch("/api/v1/users/me/settings", authHandler.HandleUpdateSettings)

		r.Get("/api/v1/exercises", exerciseHandler.HandleList)
		r.Post("/api/v1/exercises", exerciseHandler.HandleCreate)
		r.Get("/api/v1/exercises/categories", exerciseHandler.HandleCategories)
		r.Get("/api/v1/exercises/equipment", exerciseHandler.HandleEquipment)
		r.Get("/api/v1/exercises/{exercise_id}", exerciseHandler.HandleGet)
		r.Put("/api/v1/exercises/{exercise_id}", exerciseHandler.HandleUpdate)
		r.Delete("/api/v1/exercises/{exercise_id}", exerciseHandler.HandleDelete)

		r.Get("/api/v1/workouts", workoutHandler.HandleList)
		r.Post("/api/v1/workouts", workoutHandler.HandleCreate)
		r.Get("/api/v1/workouts/{workout_id}", workoutHandler.HandleGet)
		r.Put("/api/v1/workouts/{workout_id}", workoutHandler.HandleUpdate)
		r.Delete("/api/v1/workouts/{workout_id}", workoutHandler.HandleDelete)

		r.Get("/api/v1/routines", routineHandler.HandleList)
		r.Post("/api/v1/routines", routineHandler.HandleCreate)
		r.Get("/api/v1/routines/{routine_id}", routineHandler.HandleGet)
		r.Put("/api/v1/routines/{routine_id}", routineHandler.HandleUpdate)
		r.Delete("/api/v1/routines/{routine_id}", routineHandler.HandleDelete)

		r.Get("/api/v1/dashboard/stats", dashboardHandler.HandleStats)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
