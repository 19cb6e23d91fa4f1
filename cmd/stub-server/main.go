package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"crpt-gateway/client/crpt/domain"
	"crpt-gateway/client/crpt/infra"

	"golang.org/x/time/rate"
)

// Stub local do endpoint de criação de documentos, para validação manual do
// cliente: aplica a própria cota (como o serviço real faz) e pode atrasar a
// resposta para exercitar o timeout do cliente.
func main() {
	cfg := readConfig()

	limiter := rate.NewLimiter(rate.Limit(cfg.rps), cfg.burst)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc(infra.CreateDocumentPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Signature") == "" {
			http.Error(w, "missing Signature header", http.StatusUnauthorized)
			return
		}
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		var doc domain.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "invalid document body", http.StatusBadRequest)
			return
		}
		log.Printf("document received: docId=%q products=%d", doc.DocID, len(doc.Products))

		if cfg.responseDelay > 0 {
			select {
			case <-time.After(cfg.responseDelay):
			case <-r.Context().Done():
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cfg.responseBody))
	})

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("stub server listening on %s (rps=%.2f burst=%d delay=%s)", cfg.listenAddr, cfg.rps, cfg.burst, cfg.responseDelay)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

type config struct {
	listenAddr    string
	rps           float64
	burst         int
	responseDelay time.Duration
	responseBody  string
}

func readConfig() config {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8082")
	cfg.rps = getenvFloatDefault("STUB_RPS", 10)
	cfg.burst = getenvIntDefault("STUB_BURST", 10)
	cfg.responseDelay = getenvDurationDefault("RESPONSE_DELAY", 0)
	cfg.responseBody = getenvDefault("RESPONSE_BODY", "OK")
	return cfg
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

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
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
