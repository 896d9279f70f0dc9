package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multiplayer-quiz/internal/bank"
	"multiplayer-quiz/internal/config"
	"multiplayer-quiz/internal/domain"
	"multiplayer-quiz/internal/game"
	"multiplayer-quiz/internal/infra/memory"
	pgloader "multiplayer-quiz/internal/infra/postgres"
	redisbank "multiplayer-quiz/internal/infra/redis"
	console "multiplayer-quiz/internal/transport/http"
	"multiplayer-quiz/internal/transport/tcp"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, addr, bankFile *string, rounds *int) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *addr, *bankFile, *rounds)
		},
	}
}

func runServer(ctx context.Context, configPath, addrFlag, bankFlag string, roundsFlag int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	addr := addrFlag
	if addr == "" {
		addr = cfg.Server.Addr
	}
	if addr == "" {
		addr = ":4000"
	}
	consoleAddr := cfg.Console.Addr
	if consoleAddr == "" {
		consoleAddr = ":8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	loader := buildLoader(cfg, bankFlag, pool, redisClient)

	hub := console.NewHub()
	g := game.New(cfg.Server.MinPlayers, hub)

	setID := cfg.Game.Set
	if setID == "" {
		setID = "default"
	}
	if questions, err := loader.LoadSet(ctx, setID); err != nil {
		log.Printf("question bank not loaded yet: %v", err)
	} else if err := g.SetBank(questions); err != nil {
		log.Printf("question bank rejected: %v", err)
	}

	targetRounds := roundsFlag
	if targetRounds == 0 {
		targetRounds = cfg.Game.Rounds
	}
	if targetRounds > 0 {
		if err := g.SetRounds(targetRounds); err != nil {
			return err
		}
	}

	loadBank := func(path string) error {
		questions, err := bank.LoadFile(path)
		if err != nil {
			return err
		}
		return g.SetBank(questions)
	}

	admin := console.NewAdminHandler(g, hub, loadBank)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", admin.ServeWS)

	consoleServer := &http.Server{
		Addr:         consoleAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		log.Printf("operator console on %s", consoleAddr)
		if err := consoleServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("console server: %v", err)
		}
	}()

	handshakeTimeout := config.Duration(cfg.Server.HandshakeTimeout, tcp.DefaultHandshakeTimeout)
	server := tcp.NewServer(g, hub, handshakeTimeout)
	if err := server.Listen(addr); err != nil {
		return err
	}
	go func() {
		if err := server.Serve(); err != nil {
			log.Printf("accept loop: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	server.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return consoleServer.Shutdown(shutdownCtx)
}

// loadConfig tolerates a missing file at the default path so the server
// can run from flags alone.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil && os.IsNotExist(err) {
		return config.Config{}, nil
	}
	return cfg, err
}

// buildLoader picks the bank source: an explicit file wins, then
// Postgres (optionally fronted by the Redis cache), then the built-in
// sample set.
func buildLoader(cfg config.Config, bankFlag string, pool *pgxpool.Pool, redisClient *redis.Client) bank.Loader {
	file := bankFlag
	if file == "" {
		file = cfg.Game.Bank
	}

	var loader bank.Loader
	switch {
	case file != "":
		loader = bank.NewFileSource(file)
	case pool != nil:
		loader = pgloader.NewBankLoader(pool)
	default:
		loader = memory.NewStaticSource(map[string][]domain.Question{
			"default": sampleQuestions(),
		})
	}

	ttl := config.Duration(cfg.Redis.TTL, 10*time.Minute)
	if redisClient != nil {
		return redisbank.NewBankCache(redisClient, loader, ttl)
	}
	return memory.NewBankCache(loader, ttl)
}

// sampleQuestions is a minimal built-in bank so a bare `quiz-server
// start` is playable.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text:    "What is 2 + 2?",
			OptionA: "3",
			OptionB: "4",
			OptionC: "5",
			Answer:  domain.ChoiceB,
		},
		{
			Text:    "Which planet is known as the Red Planet?",
			OptionA: "Mars",
			OptionB: "Venus",
			OptionC: "Jupiter",
			Answer:  domain.ChoiceA,
		},
	}
}
