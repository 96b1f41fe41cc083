package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/fittrack/fittrack/docs"
	"github.com/fittrack/fittrack/internal/api/handler"
	"github.com/fittrack/fittrack/internal/api/middleware"
	"github.com/fittrack/fittrack/internal/core/domain"
	"github.com/fittrack/fittrack/internal/core/ports"
	"github.com/fittrack/fittrack/internal/infrastructure/http/handlers"
)

// httpMetrics registers the request collectors once per process; the default
// registry rejects a second registration.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("fittrack")
})

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Workouts ports.WorkoutService
	Meals    ports.MealService

	JWTSecret    string
	LoginLimiter *middleware.IPRateLimiter
	// Checks back the readiness probe, keyed by dependency name.
	Checks map[string]handlers.Check
	Log    zerolog.Logger
}

// @title                       FitTrack API
// @version                     1.0
// @description                 Accounts, workouts and meals for the FitTrack clients.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        x-auth-token

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(httpMetrics())

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	workoutHandler := handler.NewWorkoutHandler(d.Workouts)
	mealHandler := handler.NewMealHandler(d.Meals)
	authMiddleware := middleware.Auth(d.JWTSecret)
	staff := middleware.RBAC(domain.RoleCoach, domain.RoleAdmin)
	admin := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	if d.LoginLimiter != nil {
		auth.POST("/login", authHandler.Login, middleware.RateLimit(d.LoginLimiter, "login"))
	} else {
		auth.POST("/login", authHandler.Login)
	}
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Users ---
	users := e.Group("/api/users", authMiddleware)
	users.GET("/me", userHandler.Me)
	users.PUT("/me", userHandler.UpdateMe)
	users.GET("", userHandler.List, admin)
	users.GET("/role/:role", userHandler.ListByRole, staff)
	users.PUT("/:id/role", userHandler.ChangeRole, admin)

	// --- Workouts ---
	workouts := e.Group("/api/workouts", authMiddleware)
	workouts.GET("", workoutHandler.List)
	workouts.POST("", workoutHandler.Create)
	workouts.GET("/user/:userId", workoutHandler.ListForUser, staff)
	workouts.GET("/:id", workoutHandler.Get)
	workouts.PUT("/:id", workoutHandler.Update)
	workouts.DELETE("/:id", workoutHandler.Delete)

	// --- Meals ---
	meals := e.Group("/api/meals", authMiddleware)
	meals.GET("", mealHandler.List)
	meals.POST("", mealHandler.Create)
	meals.GET("/date/:date", mealHandler.ListByDate)
	meals.PUT("/:id", mealHandler.Update)
	meals.DELETE("/:id", mealHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)                   // liveness  – is the process alive?
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Checks).Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
