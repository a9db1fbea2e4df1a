package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/boostify/outreach/internal/api"
	"github.com/boostify/outreach/internal/config"
	"github.com/boostify/outreach/internal/mailer"
	"github.com/boostify/outreach/internal/pkg/distlock"
	"github.com/boostify/outreach/internal/pkg/logger"
	"github.com/boostify/outreach/internal/repository/postgres"
	"github.com/boostify/outreach/internal/repository/redisquota"
	"github.com/boostify/outreach/internal/service/artist"
	"github.com/boostify/outreach/internal/service/campaign"
	"github.com/boostify/outreach/internal/service/contact"
	"github.com/boostify/outreach/internal/service/delivery"
	"github.com/boostify/outreach/internal/service/quota"
	"github.com/boostify/outreach/internal/service/template"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

// extractHost returns the host part of a postgres DSN for log lines,
// leaving the credentials out.
func extractHost(dsn string) string {
	at := strings.Index(dsn, "@")
	if at < 0 {
		return "(unknown)"
	}
	rest := dsn[at+1:]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}

func main() {
	log.Println("Outreach API server starting")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	logger.SetRedactPII(cfg.Log.ShouldRedact())

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if err := checkPortAvailable(cfg.Server.GetHost(), cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	// PostgreSQL
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatalf("Database ping failed (%s): %v", extractHost(cfg.Database.URL), err)
	}
	log.Printf("Connected to PostgreSQL at %s", extractHost(cfg.Database.URL))

	// Redis (optional)
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			log.Printf("WARNING: Redis unreachable, continuing without it: %v", err)
			redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("Connected to Redis")
		}
	}

	// Quota store
	var quotaStore quota.Store = postgres.NewQuotaRepo(db)
	switch cfg.Quota.Backend {
	case "redis":
		if redisClient == nil {
			log.Fatalf("quota backend redis requires a reachable REDIS_URL")
		}
		quotaStore = redisquota.NewStore(redisClient)
	case "", "postgres":
	default:
		log.Fatalf("Unknown quota backend %q", cfg.Quota.Backend)
	}
	log.Printf("Quota backend: %s (default limit %d/day)", firstNonEmpty(cfg.Quota.Backend, "postgres"), cfg.Quota.DefaultDailyLimit)

	// Contact imports: s3:// sources and a per-source lock
	contactOpts := []contact.Option{
		contact.WithBatchSize(cfg.Import.BatchSize),
		contact.WithLocks(distlock.NewFactory(redisClient, db), cfg.Import.LockTTL()),
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Import.S3Region))
	if err != nil {
		log.Printf("WARNING: AWS config unavailable, s3:// imports disabled: %v", err)
	} else {
		contactOpts = append(contactOpts, contact.WithObjectStore(s3.NewFromConfig(awsCfg)))
	}

	sender, err := mailer.New(context.Background(), cfg.Email)
	if err != nil {
		log.Fatalf("Failed to initialize email provider: %v", err)
	}
	log.Printf("Email provider: %s (from %s)", sender.Name(), cfg.Email.FromEmail)

	contacts := contact.NewService(postgres.NewContactRepo(db), contactOpts...)
	templates := template.NewService(postgres.NewTemplateRepo(db), template.Options{
		BaseURL:    cfg.App.BaseURL,
		SenderName: cfg.Email.SenderName,
	})
	artists := artist.NewService(postgres.NewArtistRepo(db))
	campaigns := campaign.NewService(postgres.NewCampaignRepo(db))
	quotas := quota.NewService(quotaStore, cfg.Quota.DefaultDailyLimit)

	deliverySvc := delivery.NewService(delivery.Deps{
		Contacts:  contacts,
		Templates: templates,
		Artists:   artists,
		Quota:     quotas,
		Campaigns: campaigns,
		Logs:      postgres.NewEmailLogRepo(db),
		Sender:    sender,
	}, delivery.Config{
		Provider:     sender.Name(),
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		SenderName:   cfg.Email.SenderName,
		BaseURL:      cfg.App.BaseURL,
		SendInterval: cfg.Email.SendInterval(),
	})

	server := api.NewServer(cfg.Server, api.Services{
		Contacts:  contacts,
		Templates: templates,
		Artists:   artists,
		Quota:     quotas,
		Delivery:  deliverySvc,
		Campaigns: campaigns,
	}, api.NewHealthChecker(db, redisClient))

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	// in-flight batches get the full window to finish their current send
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
