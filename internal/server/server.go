// Package server assembles the catalog HTTP service from configuration.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/burgerboots/catalog/handlers"
	"github.com/burgerboots/catalog/internal/catalog"
	"github.com/burgerboots/catalog/internal/catalog/handler"
	"github.com/burgerboots/catalog/internal/catalog/repository"
	"github.com/burgerboots/catalog/internal/catalog/service"
	"github.com/burgerboots/catalog/internal/config"
	"github.com/burgerboots/catalog/internal/database"
	"github.com/burgerboots/catalog/internal/media"
	"github.com/burgerboots/catalog/pkg/logger"
	"github.com/burgerboots/catalog/pkg/metrics"
	"github.com/burgerboots/catalog/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const mongoConnectAttempts = 5

// Server holds the router and the resources it owns.
type Server struct {
	Router   *gin.Engine
	Products *service.ProductService
	Blogs    *service.BlogService

	cfg     *config.Config
	mongo   *mongo.Client
	redis   *redis.Client
	started time.Time
}

// Options overrides parts of the wiring, mainly for tests and the dev server.
type Options struct {
	// Registry receives the Prometheus collectors; nil uses the default registerer.
	Registry *prometheus.Registry
}

// New connects the configured stores and registers every route.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Server, error) {
	s := &Server{cfg: cfg, started: time.Now()}

	products, blogs, dbCheck, err := s.openRecordStore(ctx)
	if err != nil {
		return nil, err
	}
	store, mediaCheck, err := openMediaStore(ctx, cfg)
	if err != nil {
		s.Close(ctx)
		return nil, err
	}

	validator := catalog.NewValidator(catalog.NewCategories(cfg.Catalog.BlogCategories))
	svcOpts := service.Options{
		MediaPrefix:     cfg.Media.PublicPrefix,
		DefaultAuthor:   cfg.Catalog.DefaultAuthor,
		ProductPageSize: cfg.Catalog.ProductPageSize,
		BlogPageSize:    cfg.Catalog.BlogPageSize,
	}
	s.Products = service.NewProductService(products, store, validator, svcOpts)
	s.Blogs = service.NewBlogService(blogs, store, validator, svcOpts)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog(), middleware.Metrics(), middleware.CORS(strings.Split(cfg.Server.CORSOrigin, ",")...))
	s.connectRedis(ctx)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && s.redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(s.redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	deps := map[string]handlers.Check{}
	if mediaCheck != nil {
		deps["media"] = mediaCheck
	}
	if s.redis != nil && cfg.RateLimit.UseRedis {
		deps["redis"] = func(ctx context.Context) error { return s.redis.Ping(ctx).Err() }
	}
	handlers.RegisterHealth(r, handlers.Health{Database: dbCheck, Deps: deps, Started: s.started})
	handlers.RegisterSwagger(r)
	handler.New(s.Products, s.Blogs, store, handler.Options{
		MaxUploadBytes: cfg.Media.MaxBytes,
		MediaPrefix:    cfg.Media.PublicPrefix,
	}).Register(r)

	if opts.Registry != nil {
		metrics.RegisterCollectors(opts.Registry)
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	} else {
		metrics.RegisterCollectors(prometheus.DefaultRegisterer)
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	s.Router = r
	return s, nil
}

func (s *Server) openRecordStore(ctx context.Context) (repository.ProductRepository, repository.BlogRepository, handlers.Check, error) {
	cfg := s.cfg
	if cfg.Catalog.Store == "memory" {
		logger.Warnf("using in-memory record store; data is lost on restart")
		p, b := repository.NewMemoryProductRepo(), repository.NewMemoryBlogRepo()
		return p, b, p.Ping, nil
	}

	client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
	if err != nil {
		return nil, nil, nil, err
	}
	s.mongo = client
	db := client.Database(cfg.MongoDB.Database)
	p := repository.NewMongoProductRepo(db.Collection("products"), cfg.MongoDB.OpTimeout)
	b := repository.NewMongoBlogRepo(db.Collection("blogs"), cfg.MongoDB.OpTimeout)
	if err := p.EnsureIndexes(ctx); err != nil {
		logger.Warnf("failed to ensure product indexes: %v", err)
	}
	if err := b.EnsureIndexes(ctx); err != nil {
		logger.Warnf("failed to ensure blog indexes: %v", err)
	}
	logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)
	return p, b, p.Ping, nil
}

func openMediaStore(ctx context.Context, cfg *config.Config) (media.Store, handlers.Check, error) {
	switch cfg.Media.Backend {
	case "minio":
		st, err := media.NewMinIOStore(ctx, media.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
		}, cfg.Media.MaxBytes)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("media stored in MinIO bucket %q", cfg.MinIO.Bucket)
		return st, st.Ping, nil
	default:
		st, err := media.NewFSStore(cfg.Media.Dir, cfg.Media.MaxBytes)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("media stored in %s", st.Dir())
		return st, nil, nil
	}
}

// connectRedis is best effort: without Redis the in-memory limiter is used.
func (s *Server) connectRedis(ctx context.Context) {
	addr := s.cfg.Redis.Addr()
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: s.cfg.Redis.Password, DB: s.cfg.Redis.DB})
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		_ = client.Close()
		return
	}
	logger.Infof("connected to Redis: %s", addr)
	s.redis = client
}

// HTTPServer wraps the router with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
	}
}

// Close releases database and cache connections.
func (s *Server) Close(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.mongo != nil {
		if err := s.mongo.Disconnect(ctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
}
