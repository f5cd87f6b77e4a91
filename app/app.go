package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"radiotrack/db"
	"radiotrack/logging"
	"radiotrack/metrics"
	"radiotrack/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Handler-side aliases.
type Ctx = gin.Context
type H = gin.H

// App aggregates every shared dependency of the service.
type App struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Repo    *db.Repo
	RDB     *redis.Client
	Log     zerolog.Logger
	Backups *db.BackupService
	Config  Config

	appSess   *session.AppSessionStore
	throttle  *session.Throttle
	logCloser io.Closer
}

// Config is read from the environment with sane development defaults.
type Config struct {
	Port        string
	Env         string
	DBPath      string
	RedisAddr   string
	RedisPwd    string
	RedisDB     int
	WebOrigin   string
	CORSOrigins []string
	SessionTTL  time.Duration

	AdminUsername string
	AdminPassword string

	BackupDir      string
	BackupKeep     int
	BackupInterval time.Duration

	LoginMaxFails int64
	LoginLockFor  time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }
func (a *App) LoginThrottle() *session.Throttle      { return a.throttle }

func MustNew() *App {
	cfg := loadConfig()

	log, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Env:    cfg.Env,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging setup:", err)
		os.Exit(1)
	}

	dbConn, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	repo := db.NewRepo(dbConn)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: cfg.RedisDB})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
	}

	metrics.Register()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log), HTTPMetrics())
	useCORS(r, cfg)

	backupLog := log.With().Str("component", "backup").Logger()
	a := &App{
		Router:    r,
		DB:        dbConn,
		Repo:      repo,
		RDB:       rdb,
		Log:       log,
		Backups:   db.NewBackupService(dbConn, cfg.DBPath, cfg.BackupDir, cfg.BackupKeep, cfg.BackupInterval, backupLog),
		Config:    cfg,
		appSess:   session.NewAppSessionStore(rdb, cfg.SessionTTL),
		throttle:  session.NewThrottle(rdb, cfg.LoginMaxFails, cfg.LoginLockFor),
		logCloser: logCloser,
	}
	return a
}

func (a *App) Close() {
	_ = a.RDB.Close()
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	dur := func(k, def string) time.Duration {
		d, err := time.ParseDuration(get(k, def))
		if err != nil {
			d, _ = time.ParseDuration(def)
		}
		return d
	}
	num := func(k string, def int) int {
		n, err := strconv.Atoi(get(k, strconv.Itoa(def)))
		if err != nil {
			return def
		}
		return n
	}

	origin := get("WEB_ORIGIN", "http://localhost:3000")
	var origins []string
	for _, o := range strings.Split(get("CORS_ORIGINS", origin), ",") {
		if s := strings.TrimSpace(o); s != "" {
			origins = append(origins, s)
		}
	}

	return Config{
		Port:        get("PORT", "3001"),
		Env:         get("ENV", "development"),
		DBPath:      get("DB_PATH", "data/inventory.db"),
		RedisAddr:   get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:     num("REDIS_DB", 0),
		WebOrigin:   origin,
		CORSOrigins: origins,
		SessionTTL:  dur("SESSION_TTL", "2h"),

		AdminUsername: get("ADMIN_USERNAME", "admin"),
		AdminPassword: get("ADMIN_PASSWORD", "Admin@123!"),

		BackupDir:      get("BACKUP_DIR", "backups"),
		BackupKeep:     num("BACKUP_KEEP", 10),
		BackupInterval: dur("BACKUP_INTERVAL", "24h"),

		LoginMaxFails: int64(num("LOGIN_MAX_FAILS", 5)),
		LoginLockFor:  dur("LOGIN_LOCKOUT", "15m"),

		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "console"),
		LogFile:   os.Getenv("LOG_FILE"),
	}
}
