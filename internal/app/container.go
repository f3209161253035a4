// Package app wires repositories, services and the HTTP router together.
package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nilahq/scheduling-backend/internal/api"
	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/availability"
	"github.com/nilahq/scheduling-backend/internal/blockedslot"
	"github.com/nilahq/scheduling-backend/internal/booking"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/marketplace"
	"github.com/nilahq/scheduling-backend/internal/media"
	"github.com/nilahq/scheduling-backend/internal/notification"
	"github.com/nilahq/scheduling-backend/internal/pkg/storage"
	"github.com/nilahq/scheduling-backend/internal/tenant"
	"github.com/nilahq/scheduling-backend/internal/user"
	"github.com/nilahq/scheduling-backend/internal/waitlist"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Redis        *redis.Client
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	MediaDir     string
	SlotCacheTTL time.Duration
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Tenant Module
	tenantRepo := tenant.NewPgxRepository(cfg.DBPool)
	tenantService := tenant.NewService(tenantRepo, userService)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(cfg.DBPool)
	catalogManager := catalog.NewManager(catalogRepo, tenantService)

	// Blocked Slot Module
	blockRepo := blockedslot.NewPgxRepository(cfg.DBPool)
	blockService := blockedslot.NewService(blockRepo, tenantService)

	// Notification Module
	notificationRepo := notification.NewPgxRepository(cfg.DBPool)
	notificationService := notification.NewService(notificationRepo, cfg.Logger)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, catalogManager, tenantService, userService, blockService, notificationService, cfg.Logger)

	// Waitlist Module; freed slots flow back through the cancellation hook.
	waitlistRepo := waitlist.NewPgxRepository(cfg.DBPool)
	waitlistService := waitlist.NewService(waitlistRepo, bookingService, catalogManager, userService, notificationService, cfg.Logger)
	bookingService.RegisterCancellationListener(waitlistService)

	// Media Module
	localStorage, err := storage.NewLocalStorage(cfg.MediaDir)
	if err != nil {
		return nil, err
	}
	mediaRepo := media.NewPgxRepository(cfg.DBPool)
	mediaService := media.NewService(mediaRepo, localStorage, storage.NewImageProcessor(), cfg.Logger)

	// Availability Module
	availabilityService := availability.NewService(bookingService, blockService, catalogManager, tenantService, cfg.Redis, cfg.SlotCacheTTL, cfg.Logger)

	// Marketplace Module
	marketplaceService := marketplace.NewService(userService, catalogManager, bookingService)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		TenantService:       tenantService,
		CatalogManager:      catalogManager,
		BookingService:      bookingService,
		BlockService:        blockService,
		WaitlistService:     waitlistService,
		NotificationService: notificationService,
		MediaService:        mediaService,
		AvailabilityService: availabilityService,
		MarketplaceService:  marketplaceService,
		JWTManager:          jwtManager,
		Logger:              cfg.Logger,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
