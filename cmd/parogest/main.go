package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/parogest/parogest/internal/domain"
	"github.com/parogest/parogest/internal/infrastructure/logger"
	"github.com/parogest/parogest/internal/infrastructure/redis"
	"github.com/parogest/parogest/internal/observability/tracing"
	"github.com/parogest/parogest/internal/repository"
	"github.com/parogest/parogest/internal/security/password"
	"github.com/parogest/parogest/internal/validation"
	"github.com/parogest/parogest/pkg/config"
	"github.com/parogest/parogest/pkg/database"
	"github.com/parogest/parogest/pkg/pagination"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "siret":
		handleSiret(args)
	case "password":
		handlePassword(args)
	case "page":
		handlePage(args)
	case "check":
		handleCheck()
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleSiret(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: parogest siret <validate|format> <number>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "validate":
		if len(args) < 2 {
			fmt.Println("Usage: parogest siret validate <number>")
			os.Exit(1)
		}
		if validation.ValidateSIRET(args[1]) {
			fmt.Println("valid")
		} else {
			fmt.Println("invalid")
			os.Exit(1)
		}
	case "format":
		if len(args) < 2 {
			fmt.Println("Usage: parogest siret format <number>")
			os.Exit(1)
		}
		fmt.Println(validation.FormatSIRET(args[1]))
	default:
		fmt.Printf("unknown siret command: %s\n", subCmd)
	}
}

func handlePassword(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: parogest password <hash|verify>")
		return
	}

	subCmd := args[0]
	switch subCmd {
	case "hash":
		if len(args) < 2 {
			fmt.Println("Usage: parogest password hash <secret>")
			os.Exit(1)
		}
		hashed, err := password.Hash(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hashed)
	case "verify":
		if len(args) < 3 {
			fmt.Println("Usage: parogest password verify <secret> <stored-hash>")
			os.Exit(1)
		}
		ok, err := password.Verify(args[1], args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "verify failed: %v\n", err)
			os.Exit(1)
		}
		if ok {
			fmt.Println("match")
		} else {
			fmt.Println("no match")
			os.Exit(1)
		}
	default:
		fmt.Printf("unknown password command: %s\n", subCmd)
	}
}

func handlePage(args []string) {
	fs := flag.NewFlagSet("page", flag.ExitOnError)
	page := fs.Int("page", 1, "page number (>= 1)")
	pageSize := fs.Int("size", pagination.DefaultPageSize, "items per page (1..100)")
	total := fs.Int("total", 0, "total item count")
	fs.Parse(args)

	params := pagination.Params{Page: *page, PageSize: *pageSize}.Normalize()
	desc := pagination.Describe(params.Page, params.PageSize, *total)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "page\t%d\n", desc.Page)
	fmt.Fprintf(w, "page_size\t%d\n", desc.PageSize)
	fmt.Fprintf(w, "total\t%d\n", desc.Total)
	fmt.Fprintf(w, "total_pages\t%d\n", desc.TotalPages)
	fmt.Fprintf(w, "has_next\t%v\n", desc.HasNext)
	fmt.Fprintf(w, "has_previous\t%v\n", desc.HasPrevious)
	fmt.Fprintf(w, "skip\t%d\n", params.Skip())
	fmt.Fprintf(w, "limit\t%d\n", params.Limit())
	w.Flush()
}

// handleCheck verifies the deployment: configuration, database, Redis and
// tracing bootstrap, plus a row count per entity.
func handleCheck() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	shutdown, err := tracing.Init(ctx, log, "parogest", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdown(context.Background())

	pool, err := database.NewConnectionPool(ctx, &database.Config{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePass,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	}, log)
	if err != nil {
		log.Error("database check failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Error("redis check failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	db := pool.GetDB()
	contacts, err := repository.NewPostgresContactRepository(db, log).Count(domain.ContactFilter{})
	if err != nil {
		log.Error("contact count failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	users, err := repository.NewPostgresUserRepository(db, log).Count(domain.UserFilter{})
	if err != nil {
		log.Error("user count failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	categories, err := repository.NewPostgresCategoryRepository(db, log).Count(true)
	if err != nil {
		log.Error("category count failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	expenses, err := repository.NewPostgresExpenseRepository(db, log).Count(domain.ExpenseFilter{})
	if err != nil {
		log.Error("expense count failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "database\tok\n")
	fmt.Fprintf(w, "redis\tok\n")
	fmt.Fprintf(w, "contacts\t%d\n", contacts)
	fmt.Fprintf(w, "users\t%d\n", users)
	fmt.Fprintf(w, "categories\t%d\n", categories)
	fmt.Fprintf(w, "expenses\t%d\n", expenses)
	w.Flush()
}

func printUsage() {
	fmt.Println(`ParoGest admin tool

Usage:
  parogest siret validate <number>     Check a SIRET number
  parogest siret format <number>       Render a SIRET as XXX XXX XXX XXXXX
  parogest password hash <secret>      Hash a password for storage
  parogest password verify <s> <hash>  Verify a password against a stored hash
  parogest page -page N -size N -total N
                                       Show the pagination descriptor
  parogest check                       Check database and Redis connectivity
  parogest help                        Show this help`)
}
