package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"library-service/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

const schemaPath = "database/schema.sql"

var tables = []string{"libraries", "users", "action_logs"}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("=== Setting Up Database ===")
	fmt.Println()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	fmt.Println("Connected to database")

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		log.Fatalf("Failed to read schema file: %v", err)
	}

	fmt.Println("Executing schema...")
	if _, err := conn.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Failed to execute schema: %v", err)
	}

	fmt.Println("Schema executed successfully")
	fmt.Println()

	fmt.Println("=== Verifying Tables ===")
	for _, table := range tables {
		var exists bool
		query := `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)`
		if err := conn.QueryRow(ctx, query, table).Scan(&exists); err != nil {
			fmt.Printf("Error checking table '%s': %v\n", table, err)
			continue
		}

		if exists {
			fmt.Printf("Table '%s' ready\n", table)
		} else {
			fmt.Printf("Table '%s' NOT created\n", table)
		}
	}

	fmt.Println()
	fmt.Println("=== Database Setup Complete ===")
}
