package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"crpt-gateway/client/crpt"
	"crpt-gateway/client/crpt/domain"
	"crpt-gateway/client/crpt/infra"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	files := os.Args[1:]
	if len(files) == 0 {
		log.Fatalf("usage: submitter <document.json> [document.json ...]")
	}

	docs := make([]domain.Document, 0, len(files))
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("reading %s: %v", f, err)
		}
		var doc domain.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Fatalf("decoding %s: %v", f, err)
		}
		docs = append(docs, doc)
	}

	var stats domain.StatsStore
	if cfg.statsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			log.Fatalf("redis stats ping error: %v", err)
		}

		stats = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackDocs(cfg.statsTrackDocs),
		)
	}

	client, err := crpt.New(crpt.Options{
		Window:         cfg.window,
		RequestLimit:   cfg.requestLimit,
		BaseURL:        cfg.baseURL,
		Timeout:        cfg.requestTimeout,
		AcquireTimeout: cfg.acquireTimeout,
		Stats:          stats,
	})
	if err != nil {
		log.Fatalf("client error: %v", err)
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("submitter: %d document(s), limit=%d/%s, base=%s", len(docs), cfg.requestLimit, cfg.window, cfg.baseURL)
	log.Printf("stats: enabled=%v redisAddr=%q bucket=%q ttl=%s trackDocs=%v", cfg.statsEnabled, cfg.statsRedisAddr, cfg.statsBucket, cfg.statsTTL, cfg.statsTrackDocs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	var sent, failed atomic.Int64
	for i, doc := range docs {
		g.Go(func() error {
			body, err := client.CreateDocument(ctx, doc, cfg.signature)
			if err != nil {
				failed.Add(1)
				log.Printf("doc %d (%s): %v", i, doc.DocID, err)
				// cancelamento derruba o grupo; falha de um envio não.
				if errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
			sent.Add(1)
			log.Printf("doc %d (%s): %s", i, doc.DocID, body)
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("submit error: %v", err)
	}
	log.Printf("done: sent=%d failed=%d permitsLeft=%d", sent.Load(), failed.Load(), client.AvailablePermits())
}

type config struct {
	baseURL        string
	window         time.Duration
	requestLimit   int
	requestTimeout time.Duration
	acquireTimeout time.Duration
	signature      string
	concurrency    int

	statsEnabled       bool
	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
	statsBucket        string
	statsTrackDocs     bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.baseURL = getenvDefault("CRPT_BASE_URL", infra.DefaultBaseURL)
	cfg.window = getenvDurationDefault("RATE_WINDOW", 1*time.Second)
	cfg.requestLimit = getenvIntDefault("RATE_LIMIT", 5)
	cfg.requestTimeout = getenvDurationDefault("REQUEST_TIMEOUT", infra.DefaultTimeout)
	cfg.acquireTimeout = getenvDurationDefault("ACQUIRE_TIMEOUT", 0)
	cfg.signature = os.Getenv("SIGNATURE")
	cfg.concurrency = getenvIntDefault("CONCURRENCY", 4)

	cfg.statsEnabled = getenvBoolDefault("STATS_ENABLED", false)
	cfg.statsRedisAddr = getenvDefault("STATS_REDIS_ADDR", "")
	cfg.statsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "crpt:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)
	cfg.statsBucket = getenvDefault("STATS_BUCKET", "minute")
	cfg.statsTrackDocs = getenvBoolDefault("STATS_TRACK_DOCS", false)

	if cfg.statsEnabled && strings.TrimSpace(cfg.statsRedisAddr) == "" {
		return config{}, errors.New("STATS_REDIS_ADDR is required when STATS_ENABLED=true")
	}

	if cfg.signature == "" {
		return config{}, errors.New("SIGNATURE is required")
	}
	if cfg.window <= 0 {
		return config{}, errors.New("RATE_WINDOW must be > 0")
	}
	if cfg.requestLimit <= 0 {
		return config{}, errors.New("RATE_LIMIT must be > 0")
	}
	if cfg.concurrency <= 0 {
		return config{}, errors.New("CONCURRENCY must be > 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
