package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/hexhaven/api/internal/auth"
	"github.com/freeeve/hexhaven/api/internal/config"
	"github.com/freeeve/hexhaven/api/internal/handler"
	"github.com/freeeve/hexhaven/api/internal/logger"
	"github.com/freeeve/hexhaven/api/internal/middleware"
	"github.com/freeeve/hexhaven/api/internal/repository"
	"github.com/freeeve/hexhaven/api/internal/repository/postgres"
	redisrepo "github.com/freeeve/hexhaven/api/internal/repository/redis"
	"github.com/freeeve/hexhaven/api/internal/service"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("port", cfg.Port).Int("maxGames", cfg.MaxGames).Dur("gameTTL", cfg.GameTTL).Msg("Config loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres holds accounts and the results archive. Without it the server
	// runs anonymous games only.
	var (
		userRepo repository.UserRepository
		results  repository.ResultRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
		userRepo = postgres.NewUserRepo(db)
		results = postgres.NewResultRepo(db)
	} else {
		log.Warn().Msg("DATABASE_URL not set; accounts and results archive disabled")
	}

	// Redis snapshots let live games survive a restart.
	var cache repository.GameCache
	if cfg.RedisURL != "" {
		redisClient, err := redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		defer redisClient.Close()
		cache = redisClient
	} else {
		log.Warn().Msg("REDIS_URL not set; live games are memory only")
	}

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)
	var googleOAuth *auth.OAuthProvider
	if cfg.GoogleClientID != "" {
		googleOAuth = auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	gameSvc := service.NewGameService(cache, results, wsHub, service.Options{
		MaxGames: cfg.MaxGames,
		GameTTL:  cfg.GameTTL,
	})
	if n, err := gameSvc.Recover(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to recover live games (non-fatal)")
	} else if n > 0 {
		log.Info().Int("games", n).Msg("Recovered live games")
	}
	go service.NewJanitor(gameSvc, cfg.SweepInterval).Start(ctx)

	// Handlers
	gameHandler := handler.NewGameHandler(gameSvc, jwtMgr, cfg.PublicURL)
	resultHandler := handler.NewResultHandler(results)
	wsHandler := handler.NewWSHandler(wsHub, gameSvc, jwtMgr, handler.WSOptions{
		MaxConnections: cfg.MaxPlayers,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
	})

	// Router
	mux := http.NewServeMux()
	optional := auth.Optional(jwtMgr)
	required := auth.Middleware(jwtMgr)
	ipLimiter := middleware.NewIPLimiter(cfg.RateLimit, cfg.RateBurst)
	go ipLimiter.Run(ctx, cfg.SweepInterval, cfg.SweepInterval)
	actionLimit := middleware.RateLimit(ipLimiter)
	game := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, optional(h))
	}

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth and accounts need the database.
	if userRepo != nil {
		authHandler := handler.NewAuthHandler(googleOAuth, jwtMgr, userRepo)
		userHandler := handler.NewUserHandler(userRepo, results)
		mux.HandleFunc("GET /auth/google/login", authHandler.GoogleLogin)
		mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleCallback)
		mux.HandleFunc("POST /auth/refresh", authHandler.RefreshToken)
		mux.HandleFunc("GET /auth/dev", authHandler.DevLogin)
		mux.Handle("GET /api/v1/users/me", required(http.HandlerFunc(userHandler.GetMe)))
		mux.Handle("PATCH /api/v1/users/me", required(http.HandlerFunc(userHandler.UpdateMe)))
		mux.Handle("GET /api/v1/users/me/results", required(http.HandlerFunc(userHandler.MyResults)))
	}

	// Games (seat token or anonymous)
	game("POST /api/v1/games", gameHandler.CreateGame)
	game("GET /api/v1/games", gameHandler.ListGames)
	game("GET /api/v1/games/{code}", gameHandler.GetGame)
	game("POST /api/v1/games/{code}/join", gameHandler.JoinGame)
	game("POST /api/v1/games/{code}/reconnect", gameHandler.Reconnect)
	game("POST /api/v1/games/{code}/start", gameHandler.StartGame)
	game("POST /api/v1/games/{code}/shuffle", gameHandler.ShuffleBoard)
	game("GET /api/v1/games/{code}/hexes/{hex}/players", gameHandler.PlayersOnHex)
	game("GET /api/v1/games/{code}/vertices/{vertex}/hexes", gameHandler.VertexHexes)
	game("GET /api/v1/games/{code}/qr", gameHandler.QRCode)
	mux.Handle("POST /api/v1/games/{code}/actions", actionLimit(optional(http.HandlerFunc(gameHandler.Act))))

	// Results archive (public)
	mux.HandleFunc("GET /api/v1/results", resultHandler.ListRecent)
	mux.HandleFunc("GET /api/v1/results/{code}", resultHandler.GetResult)
	mux.HandleFunc("GET /api/v1/leaderboard", resultHandler.Leaderboard)

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger,
		middleware.CORS("*"),
		middleware.JSON,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("publicURL", cfg.PublicURL).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
