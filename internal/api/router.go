package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/api/handler"
	"github.com/storerating/store-rating/internal/api/middleware"
	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
	infrahttp "github.com/storerating/store-rating/internal/infrastructure/http"
	"github.com/storerating/store-rating/internal/infrastructure/http/handlers"
)

// Services are the application services the router exposes.
type Services struct {
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Dashboards ports.DashboardService
	Ratings    ports.RatingService
	// Stores resolves store ownership for the reviews route.
	Stores ports.StoreLookup
}

// Options configures transport behaviour.
type Options struct {
	JWTSecret        string
	RequestTimeout   time.Duration
	CORSAllowOrigins []string
	// Checks are the readiness checks, keyed by dependency name.
	Checks map[string]handlers.Check
	// Registry receives the HTTP metrics; nil uses the Prometheus default.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Idempotency-Key"},
	}))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "store_rating",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if opts.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(opts.RequestTimeout))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, svc.Accounts)
	accountHandler := handler.NewAccountHandler(svc.Accounts)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboards)
	ratingHandler := handler.NewRatingHandler(svc.Ratings)

	auth := middleware.Auth(opts.JWTSecret)
	superAdminOnly := middleware.RBAC(domain.RoleSuperAdmin)
	adminsOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)

	// --- Public ---
	e.POST("/login", authHandler.Login)
	e.POST("/signup", authHandler.Signup)

	// --- Dashboards ---
	e.GET("/super-admin-dashboard", dashboardHandler.SuperAdmin, auth, superAdminOnly)
	e.GET("/admin-dashboard", dashboardHandler.Admin, auth, adminsOnly)
	e.GET("/user-dashboard/stores/:userEmail", dashboardHandler.UserStores, auth,
		middleware.SelfOrRoles(domain.RoleUser, "userEmail", domain.RoleAdmin, domain.RoleSuperAdmin))
	e.GET("/store-owner/reviews/:storeName", dashboardHandler.StoreReviews, auth,
		middleware.StoreOwnerOrRoles(svc.Stores, "storeName", domain.RoleAdmin, domain.RoleSuperAdmin))

	// --- Ratings ---
	e.POST("/rate-store/:storeId", ratingHandler.RateStore, auth, middleware.RBAC(domain.RoleUser))

	// --- Account management ---
	e.POST("/add-user", accountHandler.AddUser, auth, adminsOnly)
	e.POST("/add-store-owner", accountHandler.AddStoreOwner, auth, adminsOnly)
	e.POST("/add-admin", accountHandler.AddAdmin, auth, superAdminOnly)

	// --- Profiles ---
	userSelf := middleware.SelfOrRoles(domain.RoleUser, "email", domain.RoleAdmin, domain.RoleSuperAdmin)
	adminSelf := middleware.SelfOrRoles(domain.RoleAdmin, "email", domain.RoleSuperAdmin)
	ownerSelf := middleware.SelfOrRoles(domain.RoleStoreOwner, "email", domain.RoleAdmin, domain.RoleSuperAdmin)

	e.GET("/user/:email", accountHandler.GetUser, auth, userSelf)
	e.PUT("/user/update/:email", accountHandler.UpdateUser, auth, userSelf)
	e.GET("/admin/:email", accountHandler.GetAdmin, auth, adminSelf)
	e.PUT("/admin/update/:email", accountHandler.UpdateAdmin, auth, adminSelf)
	e.GET("/store-owner/:email", accountHandler.GetStoreOwner, auth, ownerSelf)
	e.PUT("/store-owner/update/:email", accountHandler.UpdateStoreOwner, auth, ownerSelf)

	// --- Health, metrics, docs (no auth required) ---
	infrahttp.RegisterOperational(e, opts.Checks, gatherer)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
