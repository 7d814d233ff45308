// docbench loads one synthetic document corpus into PostgreSQL (JSONB
// binary COPY) and Elasticsearch (bulk NDJSON), then runs the fixed
// query battery against both and prints a comparative latency report.
//
// Phases are strictly sequential:
// provision → generate → load-postgres → load-elastic → bench → report.
//
// Env vars (expanded into config/<ENV>.yaml):
//
//	DATABASE_URL      PostgreSQL connection string
//	ELASTICSEARCH_URL Elasticsearch node URL (default http://localhost:9200)
//	CORPUS_SIZE       number of documents to generate
//	METRICS_ADDR      optional Prometheus scrape address
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docbench/internal/bench"
	"github.com/kailas-cloud/docbench/internal/config"
	"github.com/kailas-cloud/docbench/internal/db/elastic"
	"github.com/kailas-cloud/docbench/internal/db/postgres"
	"github.com/kailas-cloud/docbench/internal/domain"
	"github.com/kailas-cloud/docbench/internal/generator"
	logpkg "github.com/kailas-cloud/docbench/internal/logger"
	"github.com/kailas-cloud/docbench/internal/metrics"
	"github.com/kailas-cloud/docbench/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docbench",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("corpus_size", cfg.Corpus.Size),
		zap.Int("batch_size", cfg.Bench.BatchSize),
		zap.Int("result_limit", cfg.Bench.ResultLimit),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("benchmark run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	start := time.Now()

	// Engine connections are explicitly owned resources handed into each
	// phase; nothing here is global state.
	pg, err := postgres.Connect(ctx, cfg.Postgres.URL, cfg.Postgres.Table, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = pg.Close(closeCtx)
	}()
	pg.StartMonitor(ctx, time.Duration(cfg.Postgres.PingIntervalSec)*time.Second)

	es, err := elastic.Connect(cfg.Elastic.URL, cfg.Elastic.Index, logger)
	if err != nil {
		return err
	}
	if err := es.Ping(ctx); err != nil {
		return err
	}
	logger.Info("connections established")

	reg := prometheus.NewRegistry()
	loadMetrics := metrics.NewLoaderMetrics(reg)
	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr, reg, pg.Healthy, logger)
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	if err := stageProvision(ctx, pg, es); err != nil {
		return err
	}

	docs := stageGenerate(cfg, logger)

	if err := stageLoadPostgres(ctx, pg, docs, loadMetrics, logger); err != nil {
		return err
	}
	if err := stageLoadElastic(ctx, es, docs, cfg.Bench.BatchSize, loadMetrics, logger); err != nil {
		return err
	}

	if err := stageBenchmark(ctx, cfg, pg, es, logger); err != nil {
		return err
	}

	logger.Info("benchmark finished", zap.Duration("total", time.Since(start)))
	return nil
}

func stageProvision(ctx context.Context, pg *postgres.Client, es *elastic.Client) error {
	if err := pg.EnsureSchema(ctx); err != nil {
		return err
	}
	return es.EnsureIndex(ctx)
}

func stageGenerate(cfg config.Config, logger *zap.Logger) []domain.Document {
	genStart := time.Now()
	docs := generator.New(cfg.Corpus.Seed).WithProgress().Generate(cfg.Corpus.Size)
	logger.Info("corpus generated",
		zap.Int("documents", len(docs)),
		zap.Duration("elapsed", time.Since(genStart)),
	)
	return docs
}

func stageLoadPostgres(ctx context.Context, pg *postgres.Client, docs []domain.Document, m *metrics.LoaderMetrics, logger *zap.Logger) error {
	bar := progressbar.Default(int64(len(docs)), "postgres copy")
	loadStart := time.Now()

	copied, err := pg.CopyDocuments(ctx, docs, func(written int) {
		_ = bar.Set(written)
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	elapsed := time.Since(loadStart)
	m.DocumentsLoaded.WithLabelValues("postgresql").Add(float64(copied))
	logger.Info("postgres load complete",
		zap.Int64("rows", copied),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rows_per_sec", float64(copied)/elapsed.Seconds()),
	)
	return nil
}

func stageLoadElastic(ctx context.Context, es *elastic.Client, docs []domain.Document, batchSize int, m *metrics.LoaderMetrics, logger *zap.Logger) error {
	bar := progressbar.Default(int64(len(docs)), "elasticsearch bulk")
	loadStart := time.Now()
	lastBatch := time.Now()

	stats, err := es.BulkLoad(ctx, docs, batchSize, func(sent int) {
		_ = bar.Set(sent)
		m.BatchesTotal.WithLabelValues("elasticsearch").Inc()
		m.BatchDuration.WithLabelValues("elasticsearch").Observe(time.Since(lastBatch).Seconds())
		lastBatch = time.Now()
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	m.DocumentsLoaded.WithLabelValues("elasticsearch").Add(float64(stats.Indexed))
	if stats.FailedItems > 0 {
		m.ItemsFailed.WithLabelValues("elasticsearch", "item_error").Add(float64(stats.FailedItems))
	}

	refreshStart := time.Now()
	if err := es.Refresh(ctx); err != nil {
		return err
	}

	elapsed := time.Since(loadStart)
	logger.Info("elasticsearch load complete",
		zap.Int("indexed", stats.Indexed),
		zap.Int("failed_items", stats.FailedItems),
		zap.Int("partial_batches", stats.PartialBatches),
		zap.Duration("elapsed", elapsed),
		zap.Duration("refresh", time.Since(refreshStart)),
		zap.Float64("docs_per_sec", float64(stats.Indexed)/elapsed.Seconds()),
	)
	return nil
}

func stageBenchmark(ctx context.Context, cfg config.Config, pg *postgres.Client, es *elastic.Client, logger *zap.Logger) error {
	if err := pg.PrepareQueries(ctx, cfg.Bench.ResultLimit); err != nil {
		return err
	}

	runner := bench.NewRunner(bench.DefaultQueries(), cfg.Bench.ResultLimit, logger)

	pgReport := runner.RunRelational(ctx, pg, "postgresql")
	esReport := runner.RunSearch(ctx, es, "elasticsearch")

	bench.WriteReport(os.Stdout, pgReport)
	bench.WriteReport(os.Stdout, esReport)
	fmt.Println()
	return nil
}
