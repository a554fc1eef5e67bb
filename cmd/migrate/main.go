package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/homestead/backend/internal/config"
	"github.com/homestead/backend/internal/logging"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/internal/repository/mongostore"
	"github.com/jackc/pgx/v5/pgxpool"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)             差分マイグレーションを適用
  reset                 全テーブルを DROP し、集約スキーマで再作成
  fresh                 全テーブルを DROP し、全マイグレーションを順番に適用
  status                各マイグレーションの適用状況を表示
  amenities <file>      アメニティカタログ (TOML) を STORE_DRIVER のストアへ upsert`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup(logging.Options{Level: cfg.LogLevel, Format: "text", Service: "homestead-migrate"})

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	ctx := context.Background()

	if cmd == "amenities" {
		if len(os.Args) < 3 {
			usage()
		}
		runAmenities(ctx, cfg, os.Args[2])
		return
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	migrationDir := findMigrationDir()

	switch cmd {
	case "":
		runIncremental(ctx, pool, migrationDir)
	case "reset":
		runDropAll(ctx, pool, migrationDir)
		runConsolidated(ctx, pool, migrationDir)
	case "fresh":
		runDropAll(ctx, pool, migrationDir)
		runIncremental(ctx, pool, migrationDir)
	case "status":
		runStatus(ctx, pool, migrationDir)
	default:
		usage()
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// collectUpFiles は .up.sql ファイル名をソート済みで返す
func collectUpFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Fatal("read migrations dir failed", "error", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	_, _ = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
}

func appliedMigrations(ctx context.Context, pool *pgxpool.Pool) map[string]bool {
	rows, err := pool.Query(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		logging.Fatal("read schema_migrations failed", "error", err)
	}
	defer rows.Close()
	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			logging.Fatal("scan schema_migrations failed", "error", err)
		}
		applied[name] = true
	}
	return applied
}

// ---------------------------------------------------------------------------
// (default) 差分マイグレーション
// ---------------------------------------------------------------------------
func runIncremental(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)

	done := appliedMigrations(ctx, pool)
	applied := 0
	for i, filename := range collectUpFiles(dir) {
		name := strings.TrimSuffix(filename, ".up.sql")
		if done[name] {
			continue
		}

		sql, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			logging.Fatal("read migration failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			logging.Fatal("migration failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
		applied++
		slog.Info("migration completed", "number", i+1, "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------
func runStatus(ctx context.Context, pool *pgxpool.Pool, dir string) {
	ensureSchemaMigrations(ctx, pool)
	done := appliedMigrations(ctx, pool)

	ok := color.New(color.FgGreen).SprintFunc()
	pending := color.New(color.FgYellow).SprintFunc()
	pendingCount := 0
	for _, filename := range collectUpFiles(dir) {
		name := strings.TrimSuffix(filename, ".up.sql")
		if done[name] {
			fmt.Printf("  %s  %s\n", ok("applied"), name)
			continue
		}
		pendingCount++
		fmt.Printf("  %s  %s\n", pending("pending"), name)
	}
	if pendingCount == 0 {
		color.Green("up to date")
	} else {
		color.Yellow("%d pending migration(s)", pendingCount)
	}
}

// ---------------------------------------------------------------------------
// 全テーブル DROP
// ---------------------------------------------------------------------------
func runDropAll(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("dropping all tables")
	sql, err := os.ReadFile(filepath.Join(dir, "000_drop_all.sql"))
	if err != nil {
		logging.Fatal("read 000_drop_all.sql failed", "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("drop all failed", "error", err)
	}
	slog.Info("all tables dropped")
}

// ---------------------------------------------------------------------------
// 集約スキーマで再作成
// ---------------------------------------------------------------------------
func runConsolidated(ctx context.Context, pool *pgxpool.Pool, dir string) {
	slog.Info("applying consolidated schema")
	sql, err := os.ReadFile(filepath.Join(dir, "000_consolidated.sql"))
	if err != nil {
		logging.Fatal("read 000_consolidated.sql failed", "error", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		logging.Fatal("consolidated apply failed", "error", err)
	}

	// 全マイグレーションを適用済みとして記録
	ensureSchemaMigrations(ctx, pool)
	upFiles := collectUpFiles(dir)
	for _, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")
		_, _ = pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name)
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(upFiles))
}

// ---------------------------------------------------------------------------
// amenities <file>
// ---------------------------------------------------------------------------
func runAmenities(ctx context.Context, cfg *config.Config, path string) {
	cat, err := loadCatalog(path)
	if err != nil {
		logging.Fatal("load amenity catalog failed", "path", path, "error", err)
	}

	var repo repository.AmenityRepository
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			logging.Fatal("connect failed", "error", err)
		}
		defer client.Disconnect(ctx)
		repo = mongostore.New(client.Database(cfg.MongoDatabase)).Amenities()
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("connect failed", "error", err)
		}
		defer pool.Close()
		repo = repository.NewPgAmenityRepository(pool)
	default:
		logging.Fatal("amenities needs a persistent store", "driver", cfg.StoreDriver)
	}

	for _, a := range cat.Amenities {
		if err := repo.Upsert(ctx, a); err != nil {
			logging.Fatal("upsert amenity failed", "value", a.Value, "error", err)
		}
	}
	slog.Info("amenity catalog loaded", "count", len(cat.Amenities), "driver", cfg.StoreDriver)
}
