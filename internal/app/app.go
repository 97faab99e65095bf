package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/birat04/Notionize/internal/cache"
	"github.com/birat04/Notionize/internal/config"
	"github.com/birat04/Notionize/internal/events"
	"github.com/birat04/Notionize/internal/obs"
	"github.com/birat04/Notionize/internal/repo"
	"github.com/birat04/Notionize/migrations"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg       config.Config
	db        *pgxpool.Pool
	redis     *redis.Client
	publisher *events.AMQPPublisher
	router    *gin.Engine
}

func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}
	deps := Deps{Events: events.Nop{}}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Printf("using in-memory store; data is lost on restart")
		deps.Users = repo.NewMemUserRepo()
		deps.Todos = repo.NewMemTodoRepo()
		deps.Addresses = repo.NewMemAddressRepo()
	default:
		db, err := newPostgres(cfg.PG.DSN)
		if err != nil {
			return nil, err
		}
		a.db = db
		if err := runMigrations(cfg.PG.DSN, cfg.PG.MigrationsDir); err != nil {
			_ = a.Close()
			return nil, err
		}
		deps.Users = repo.NewPGUserRepo(db)
		deps.Todos = repo.NewPGTodoRepo(db)
		deps.Addresses = repo.NewPGAddressRepo(db)
		deps.Ping = db.Ping
	}

	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.redis = rdb
		deps.Cache = cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())
	} else {
		log.Printf("REDIS_ADDR not set, todo cache disabled")
	}

	if cfg.AMQP.URL != "" {
		pub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.publisher = pub
		deps.Events = pub
	}

	a.router = NewRouter(cfg, deps)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close releases the event publisher, Redis and Postgres connections.
func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		a.db.Close()
	}
	return errors.Join(errs...)
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	opt := &redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		host, _, _ := net.SplitHostPort(cfg.Addr)
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// runMigrations applies the embedded migrations, or the ones in dir when set.
func runMigrations(dsn string, dir string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	if dir == "" {
		goose.SetBaseFS(migrations.FS)
		dir = "."
	} else {
		goose.SetBaseFS(nil)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(obs.RequestID())
	r.Use(obs.Tracing(cfg.Tracer.ServiceName))
	r.Use(cors.New(corsConfig(cfg.HTTP.AllowOrigins)))

	Setup(r, cfg, deps)
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", obs.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Type", obs.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
