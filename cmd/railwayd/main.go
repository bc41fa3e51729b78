package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/Slava-Nykonenko/emerald-railroads/internal/config"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/database"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/handler"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/middleware"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/queue"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/repository"
	"github.com/Slava-Nykonenko/emerald-railroads/internal/router"
)

var (
	waitTimeout   time.Duration
	adminEmail    string
	adminPassword string
)

var rootCmd = &cobra.Command{
	Use:   "railwayd",
	Short: "Railway ticket booking API server",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; real deployments set the environment
		// directly.
		_ = godotenv.Load()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

var waitForDBCmd = &cobra.Command{
	Use:   "wait-for-db",
	Short: "Block until the database accepts connections",
	RunE:  runWaitForDB,
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a STAFF user, or promote an existing one",
	RunE:  runCreateAdmin,
}

func init() {
	waitForDBCmd.Flags().DurationVar(&waitTimeout, "timeout", 60*time.Second, "how long to keep retrying")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "email of the staff account")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password of the staff account")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(serveCmd, migrateCmd, waitForDBCmd, createAdminCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := database.Migrate(ctx, db, cfg.MigrationsDir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb := config.NewRedisClient()
	rate := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The consumer reconnects forever on its own; a broker outage
	// must not stop the API from serving.
	go func() { _ = queue.StartOrderConsumer() }()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	stations := repository.NewStationRepo(db)
	trainTypes := repository.NewTrainTypeRepo(db)
	trains := repository.NewTrainRepo(db)
	crews := repository.NewCrewRepo(db)
	routes := repository.NewRouteRepo(db)
	journeys := repository.NewJourneyRepo(db)
	orders := repository.NewOrderRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	stationH := handler.NewStationHandler(stations, journeys)
	typeH := handler.NewTrainTypeHandler(trainTypes, trains)
	trainH := handler.NewTrainHandler(trains, cfg.MediaDir)
	crewH := handler.NewCrewHandler(crews)
	routeH := handler.NewRouteHandler(routes, journeys)
	journeyH := handler.NewJourneyHandler(journeys)
	orderH := handler.NewOrderHandler(orders, journeys)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, rate)
	router.RegisterPublic(e, stationH, trainH, routeH, journeyH, rate, cache)
	router.RegisterCustomer(e, stationH, trainH, routeH, journeyH, orderH, cfg.JWTSecret, rate)
	router.RegisterStaff(e, stationH, typeH, trainH, crewH, routeH, journeyH, cfg.JWTSecret, rate)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	return e.Start(addr)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := database.Migrate(ctx, db, cfg.MigrationsDir); err != nil {
		return err
	}
	fmt.Println("migrations up to date")
	return nil
}

func runWaitForDB(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := database.WaitFor(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, waitTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	fmt.Println("database is up")
	return nil
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	id, err := users.Create(ctx, adminEmail, adminPassword, "STAFF", cfg.BcryptCost)
	if err == nil {
		fmt.Printf("created staff user %d (%s)\n", id, adminEmail)
		return nil
	}
	if !errors.Is(err, repository.ErrEmailExists) {
		return fmt.Errorf("create staff user: %w", err)
	}

	// Account already exists, promote it instead. The stored
	// password is kept.
	if err := users.Promote(ctx, adminEmail, "STAFF"); err != nil {
		return fmt.Errorf("promote %s: %w", adminEmail, err)
	}
	fmt.Printf("promoted existing user %s to STAFF\n", adminEmail)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
