package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"sunray/navigator/internal/availability"
	"sunray/navigator/internal/catalog"
	"sunray/navigator/internal/config"
	"sunray/navigator/internal/domain"
	"sunray/navigator/internal/match"
	"sunray/navigator/internal/navigation"
	"sunray/navigator/internal/repository"
	"sunray/navigator/internal/service"
	"sunray/navigator/internal/session"
)

// Container holds all initialized components
type Container struct {
	Config    *config.Config
	Loader    *catalog.Loader
	Engine    *navigation.Engine
	Store     session.Store
	Resolver  *availability.Registry
	Navigator service.Navigator

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	loader := catalog.NewLoader(
		catalog.NewAmigoAdapter(cfg.Amigo.DataDir, cfg.Amigo.IncludeGofre),
		catalog.NewCortinAdapter(cfg.Cortin.DataDir, cfg.Cortin.BaseURL),
		catalog.NewInterAdapter(cfg.Inter.CatalogFile, cfg.Inter.BaseURL),
	)
	container.Loader = loader

	engine := navigation.NewEngine(loader, cfg.Navigation.PageSize, map[domain.Vendor]bool{
		domain.VendorAmigo:  cfg.Amigo.LetterFilter,
		domain.VendorCortin: cfg.Cortin.LetterFilter,
		domain.VendorInter:  cfg.Inter.LetterFilter,
	})
	container.Engine = engine

	normalizer := match.NewNormalizer(cfg.Match.NoisePrefixes)

	resolvers := []availability.Resolver{
		availability.NewAmigoResolver(cfg.Amigo, cfg.HTTP, normalizer),
		availability.NewInterResolver(),
	}

	creds, err := availability.LoadCredentials(cfg.Cortin.CookieFile)
	if err != nil {
		// Cortin still navigates without cookies, lookups just degrade
		log.Warnf("🔄 Cortin cookie bundle unavailable: %v", err)
	} else {
		resolvers = append(resolvers, availability.NewCortinResolver(cfg.Cortin, cfg.HTTP, creds, normalizer))
	}
	registry := availability.NewRegistry(resolvers...)
	container.Resolver = registry

	store := session.Store(session.NewMemoryStore())
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		store = session.NewRedisStore(rdb)
	}
	container.Store = store

	var resolutions repository.ResolutionRepository
	if cfg.Database.Enabled {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, err
		}
		container.db = db
		resolutions = repository.NewResolutionRepository(db)
	}

	container.Navigator = service.NewNavigator(
		engine,
		store,
		registry,
		resolutions,
		time.Duration(cfg.HTTP.Timeout)*time.Second,
	)

	return container, nil
}

// Run loads the vendor catalogs and keeps the service alive until the
// context is cancelled.
func (c *Container) Run(ctx context.Context) error {
	if err := c.Loader.Load(ctx); err != nil {
		return fmt.Errorf("failed to load catalogs: %w", err)
	}

	log.Info("✅ Catalog navigator ready")

	<-ctx.Done()
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Errorf("❌ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
