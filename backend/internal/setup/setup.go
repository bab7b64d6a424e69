package setup

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/huddle-dev/huddle/backend/internal/handler"
	"github.com/huddle-dev/huddle/backend/internal/service"
	"github.com/huddle-dev/huddle/backend/internal/storage/fs"
	"github.com/huddle-dev/huddle/backend/internal/storage/memory"
	"github.com/huddle-dev/huddle/backend/internal/storage/pg"
	"github.com/huddle-dev/huddle/backend/internal/storage/redis"
	"github.com/huddle-dev/huddle/backend/internal/storage/s3"
	"github.com/huddle-dev/huddle/backend/internal/utils"
	"github.com/huddle-dev/huddle/shared/config"
	"github.com/huddle-dev/huddle/shared/jwt"
	"github.com/huddle-dev/huddle/shared/logger"
	mw "github.com/huddle-dev/huddle/shared/middleware"
	"github.com/huddle-dev/huddle/shared/middleware/ratelimiter"
)

// Storage is what both the postgres and the memory backend provide.
type Storage interface {
	service.WorkspaceStorage
	service.ChannelStorage
	service.MessageStorage
	service.ReactionStorage
	handler.HealthChecker
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService
	// Files serves local blobs, nil unless the fs blob store is used
	Files    http.Handler
	Limiters RateLimiters

	closers []func() error
}

// RateLimiters used by the router. Close stops their sweeps.
type RateLimiters struct {
	User     *ratelimiter.UserRateLimiter // every authenticated request
	Post     *ratelimiter.UserRateLimiter
	Reaction *ratelimiter.UserRateLimiter
	Upload   *ratelimiter.UserRateLimiter
	Public   *ratelimiter.UserRateLimiter // by client IP
}

// Close releases backends in reverse order of creation.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			logger.Log.Error("failed to close dependency", "error", err)
		}
	}
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg}

	storage, err := newStorage(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}
	feed, err := newFeed(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}
	blobs, err := newBlobStore(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	notification := service.NewNotification(feed)
	workspace := service.NewWorkspace(storage, &utils.WorkspaceValidator{}, cfg.MembershipCacheTTL())
	messageValidator := &utils.MessageValidator{MaxLength: cfg.Public.MaxMessageLength}

	deps.Handler = handler.New(handler.Services{
		Workspace:    workspace,
		Channel:      service.NewChannel(storage, &utils.ChannelValidator{}, workspace),
		Message:      service.NewMessage(storage, messageValidator, workspace, notification),
		Reaction:     service.NewReaction(storage, &utils.ReactionValidator{}, workspace, notification),
		Notification: notification,
		Attachment:   service.NewAttachment(blobs),
	}, storage, cfg)

	deps.Jwt = jwt.New(cfg.JwtKey(), 0)
	deps.AuthMiddleware = mw.NewAuth(deps.Jwt)
	deps.Limiters = RateLimiters{
		User:     deps.newLimiter(100, 200),
		Post:     deps.newLimiter(5, 10),
		Reaction: deps.newLimiter(10, 20),
		Upload:   deps.newLimiter(1, 3),
		Public:   deps.newLimiter(10, 20),
	}

	logger.Log.Info("dependencies ready",
		"storage", cfg.Public.Storage,
		"feed", cfg.Public.Feed,
		"blob", cfg.Public.Blob)
	return deps, nil
}

func (d *Dependencies) newLimiter(ratePerSec float64, burst int) *ratelimiter.UserRateLimiter {
	l := ratelimiter.New(ratePerSec, burst, time.Hour)
	d.closers = append(d.closers, func() error {
		l.Stop()
		return nil
	})
	return l
}

func newStorage(ctx context.Context, cfg *config.Config, deps *Dependencies) (Storage, error) {
	switch cfg.Public.Storage {
	case config.StoragePostgres:
		storage, err := pg.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("postgres storage: %w", err)
		}
		deps.closers = append(deps.closers, storage.Cleanup)
		return storage, nil
	case config.StorageMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Public.Storage)
}

func newFeed(ctx context.Context, cfg *config.Config, deps *Dependencies) (service.NotificationFeed, error) {
	switch cfg.Public.Feed {
	case config.FeedRedis:
		feed, err := redis.New(ctx, cfg.Private.RedisURL, cfg.Public.FeedCapacity)
		if err != nil {
			return nil, fmt.Errorf("redis feed: %w", err)
		}
		deps.closers = append(deps.closers, feed.Close)
		return feed, nil
	case config.FeedMemory:
		return memory.NewFeed(cfg.Public.FeedCapacity), nil
	}
	return nil, fmt.Errorf("unknown feed %q", cfg.Public.Feed)
}

func newBlobStore(ctx context.Context, cfg *config.Config, deps *Dependencies) (service.BlobStore, error) {
	switch cfg.Public.Blob {
	case config.BlobS3:
		blobs, err := s3.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("s3 blob store: %w", err)
		}
		return blobs, nil
	case config.BlobFS:
		blobs, err := fs.New(cfg.Public.MediaPath, cfg.Public.PublicFilesURL)
		if err != nil {
			return nil, fmt.Errorf("fs blob store: %w", err)
		}
		deps.Files = blobs.Handler()
		return blobs, nil
	}
	return nil, fmt.Errorf("unknown blob store %q", cfg.Public.Blob)
}
