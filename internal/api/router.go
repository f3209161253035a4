package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/availability"
	availabilityHttp "github.com/nilahq/scheduling-backend/internal/availability/http"
	"github.com/nilahq/scheduling-backend/internal/blockedslot"
	blockedslotHttp "github.com/nilahq/scheduling-backend/internal/blockedslot/http"
	"github.com/nilahq/scheduling-backend/internal/booking"
	bookingHttp "github.com/nilahq/scheduling-backend/internal/booking/http"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	catalogHttp "github.com/nilahq/scheduling-backend/internal/catalog/http"
	"github.com/nilahq/scheduling-backend/internal/marketplace"
	marketplaceHttp "github.com/nilahq/scheduling-backend/internal/marketplace/http"
	"github.com/nilahq/scheduling-backend/internal/media"
	mediaHttp "github.com/nilahq/scheduling-backend/internal/media/http"
	"github.com/nilahq/scheduling-backend/internal/notification"
	notificationHttp "github.com/nilahq/scheduling-backend/internal/notification/http"
	"github.com/nilahq/scheduling-backend/internal/tenant"
	tenantHttp "github.com/nilahq/scheduling-backend/internal/tenant/http"
	"github.com/nilahq/scheduling-backend/internal/user"
	userHttp "github.com/nilahq/scheduling-backend/internal/user/http"
	"github.com/nilahq/scheduling-backend/internal/waitlist"
	waitlistHttp "github.com/nilahq/scheduling-backend/internal/waitlist/http"
)

// Config holds everything the router needs to assemble the API surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	TenantService       tenant.Service
	CatalogManager      catalog.Manager
	BookingService      booking.Service
	BlockService        blockedslot.Service
	WaitlistService     waitlist.Service
	NotificationService notification.Service
	MediaService        media.Service
	AvailabilityService availability.Service
	MarketplaceService  marketplace.Service

	JWTManager *auth.JWTManager
	Logger     *zap.Logger
}

// NewRouter initializes the HTTP router engine: middleware (CORS, request
// logging, recovery, auth) plus every module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	userHandler := userHttp.NewHandler(cfg.UserService)
	tenantHandler := tenantHttp.NewHandler(cfg.TenantService)
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogManager, cfg.TenantService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.TenantService)
	blockHandler := blockedslotHttp.NewHandler(cfg.BlockService, cfg.TenantService)
	waitlistHandler := waitlistHttp.NewHandler(cfg.WaitlistService, cfg.TenantService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService, cfg.TenantService)
	mediaHandler := mediaHttp.NewHandler(cfg.MediaService, cfg.TenantService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService, cfg.TenantService)
	marketplaceHandler := marketplaceHttp.NewHandler(cfg.MarketplaceService)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		tenantHttp.RegisterRoutes(v1, tenantHandler, authMiddleware, sysAdminMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		blockedslotHttp.RegisterRoutes(v1, blockHandler, authMiddleware)
		waitlistHttp.RegisterRoutes(v1, waitlistHandler, authMiddleware)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)
		mediaHttp.RegisterRoutes(v1, mediaHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		marketplaceHttp.RegisterRoutes(v1, marketplaceHandler, authMiddleware)
	}

	return r
}
