package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/persons/internal/config"
	"github.com/JonMunkholm/persons/internal/core"
	"github.com/JonMunkholm/persons/internal/export"
	"github.com/JonMunkholm/persons/internal/logging"
	"github.com/JonMunkholm/persons/internal/metrics"
	"github.com/JonMunkholm/persons/internal/storage/postgres"
	"github.com/JonMunkholm/persons/internal/storage/sqlite"
	"github.com/JonMunkholm/persons/internal/web"
)

// store is what both database backends provide.
type store interface {
	core.CountryStore
	core.PersonStore
	Ping(ctx context.Context) error
	Close() error
}

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"db_driver", cfg.Database.Driver,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	ctx := context.Background()
	db, err := openStore(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database", "driver", cfg.Database.Driver)

	columns, err := export.ParseExcelColumns(cfg.Export.ExcelColumns)
	if err != nil {
		slog.Error("invalid export configuration", "error", err)
		os.Exit(1)
	}
	pdf := export.DefaultPDFOptions
	pdf.MarginMM = cfg.Export.PDFMarginMM

	m := metrics.New(prometheus.DefaultRegisterer)
	imports := core.NewImportLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWait)

	countries := core.NewCountriesService(db,
		core.WithMetrics(m),
		core.WithCountriesSheet(cfg.Upload.CountriesSheet),
		core.WithImportLimiter(imports),
	)
	persons := core.NewPersonsService(db, db, core.WithMetrics(m))
	exporter := export.New(persons,
		export.WithExcelColumns(columns),
		export.WithPDFOptions(pdf),
		export.WithMetrics(m),
	)

	server := web.NewServer(web.Deps{
		Persons:   persons,
		Countries: countries,
		Exporter:  exporter,
		Store:     db,
		Gatherer:  prometheus.DefaultGatherer,
	}, cfg)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(server, imports, cfg.Server.ShutdownTimeout, stop); err != nil {
		slog.Error("server stopped", "error", err)
		db.Close()
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runner is the part of web.Server that serve drives.
type runner interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until stop fires. It returns only after running imports
// have drained and srv has finished shutting down, so the caller can close
// the database safely.
func serve(srv runner, imports *core.ImportLimiter, timeout time.Duration, stop <-chan os.Signal) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-stop

		slog.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// Let running country imports finish (with timeout)
		if n := imports.Active(); n > 0 {
			slog.Info("waiting for imports to complete", "active", n)
			if err := imports.WaitForDrain(ctx); err != nil {
				slog.Warn("imports did not complete in time", "error", err)
			}
		}

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// ListenAndServe returns as soon as Shutdown begins.
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

// openStore connects to the configured database backend.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Connect(ctx, cfg.URL, postgres.PoolConfig{
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			MaxConnLifetime: cfg.MaxConnLifetime,
			MaxConnIdleTime: cfg.MaxConnIdleTime,
		})
	default:
		return sqlite.New(cfg.URL)
	}
}
