package main

import (
	"flag"
	"html/template"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	httpadapter "svw.info/numble/internal/adapters/http"
	"svw.info/numble/internal/checker"
	"svw.info/numble/internal/generator"
	"svw.info/numble/internal/hint"
	"svw.info/numble/internal/infrastructure/storage"
	"svw.info/numble/internal/ports"
	"svw.info/numble/internal/usecase"
	"svw.info/numble/web"
)

// config comes from NUMBLE_* variables; flags override it.
type config struct {
	Addr     string `env:"NUMBLE_ADDR" envDefault:":8080"`
	DataDir  string `env:"NUMBLE_DATA" envDefault:"./data"`
	LogLevel string `env:"NUMBLE_LOG_LEVEL" envDefault:"info"`
	Store    string `env:"NUMBLE_STORE" envDefault:"fs"`
	DBPath   string `env:"NUMBLE_DB" envDefault:"./data/progress.db"`
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("parse env config", "err", err)
		os.Exit(1)
	}
	addr := flag.String("addr", cfg.Addr, "listen address")
	dataDir := flag.String("data", cfg.DataDir, "progress directory (fs store)")
	levelStr := flag.String("log-level", cfg.LogLevel, "debug|info|warn|error")
	storeKind := flag.String("store", cfg.Store, "progress store: fs|sqlite")
	dbPath := flag.String("db", cfg.DBPath, "sqlite database path (sqlite store)")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Choose the progress store: JSON files by default, sqlite via flag.
	var st ports.ProgressStore
	switch strings.ToLower(strings.TrimSpace(*storeKind)) {
	case "sqlite":
		_ = os.MkdirAll(filepath.Dir(*dbPath), 0o755)
		s, err := storage.NewSQLite(*dbPath)
		if err != nil {
			logger.Error("open sqlite store", "path", *dbPath, "err", err)
			os.Exit(1)
		}
		defer s.Close()
		st = s
	default:
		_ = os.MkdirAll(*dataDir, 0o755)
		st = storage.NewFS(*dataDir)
	}

	// Wire providers → use cases → HTTP adapter
	g := generator.NewRoundGenerator(generator.NewExprBuilder())
	c := checker.New()
	hin := hint.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	uc := usecase.NewService(g, c, hin, st)
	h := httpadapter.New(uc)

	tmpl := web.Templates()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "store", *storeKind)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
