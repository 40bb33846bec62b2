package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/api"
	"github.com/panaderiadelsol/pos-api/internal/config"
	"github.com/panaderiadelsol/pos-api/internal/migrations"
	"github.com/panaderiadelsol/pos-api/internal/seed"
)

func main() {
	runSeed := flag.Bool("seed", false, "seed initial users and products, then continue serving")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg := config.Load()

	db, err := openDB(cfg.DSN)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer db.Close()
	infoLog.Println("Database connection established")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrations.Run(ctx, db); err != nil {
		errorLog.Fatal(err)
	}
	infoLog.Println("Migrations applied")

	if *runSeed {
		if err := seed.Run(ctx, db); err != nil {
			errorLog.Fatal(err)
		}
		infoLog.Println("Seed data loaded")
	}

	app := api.NewApplication(cfg, db, infoLog, errorLog)
	if err := app.Serve(); err != nil {
		errorLog.Fatal(err)
	}
}

// openDB builds the pgx pool with NUMERIC mapped to decimal.Decimal on
// every connection.
func openDB(dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
