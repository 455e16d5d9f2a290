package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"portfolio-api/db"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	dsnFlag := flag.String("dsn", "", "database URL (defaults to DB_DSN)")
	list := flag.Bool("list", false, "print the embedded migrations and exit")
	flag.Parse()

	if *list {
		migrations, err := db.Migrations()
		if err != nil {
			logrus.Fatalf("Failed to read migrations: %v", err)
		}
		for _, m := range migrations {
			fmt.Printf("%s  %s\n", m.Checksum[:12], m.Filename)
		}
		return
	}

	dsn := *dsnFlag
	if dsn == "" {
		dsn = os.Getenv("DB_DSN")
	}
	if dsn == "" {
		logrus.Fatal("DB_DSN environment variable or -dsn flag is required")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		logrus.Fatalf("Failed to open database connection: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		logrus.Fatalf("Failed to ping database: %v", err)
	}

	applied, err := db.Migrate(ctx, conn)
	if err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}
	if len(applied) == 0 {
		logrus.Info("Schema is up to date")
		return
	}
	for _, name := range applied {
		logrus.WithField("migration", name).Info("Applied")
	}
}
