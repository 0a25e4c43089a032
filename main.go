package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/beka-birhanu/vinom-agent/api"
	agentapi "github.com/beka-birhanu/vinom-agent/api/agent"
	api_i "github.com/beka-birhanu/vinom-agent/api/i"
	"github.com/beka-birhanu/vinom-agent/api/identity"
	"github.com/beka-birhanu/vinom-agent/config"
	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/agent"
	"github.com/beka-birhanu/vinom-agent/game/belief"
	"github.com/beka-birhanu/vinom-agent/infrastruture/repo"
	"github.com/beka-birhanu/vinom-agent/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-agent/infrastruture/token"
	"github.com/beka-birhanu/vinom-agent/logger"
	"github.com/beka-birhanu/vinom-agent/service"
	"github.com/beka-birhanu/vinom-agent/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	envs                config.Config
	mongoClient         *mongo.Client
	redisClient         *redis.Client
	episodeRepo         i.EpisodeRepo
	leaderboard         i.SortedQueue
	jwtTokenizer        i.Tokenizer
	agentSessionManager *service.AgentSessionManager
	agentController     api_i.Controller
	router              *api.Router
	appLogger           *logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vinom-agent",
		Short: "vinom-agent plays the Wumpus world: it hosts agents for remote game servers or runs them in a local cave.",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve agent sessions over HTTP and websockets",
		RunE:  serve,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play one episode in a generated or loaded cave",
		RunE:  simulate,
	}
	simulateCmd.Flags().String("world", "", "YAML cave layout; a random cave is generated when empty")
	simulateCmd.Flags().Int64("seed", time.Now().UnixNano(), "seed for random caves")
	simulateCmd.Flags().Int("size", 4, "width and height of random caves")
	simulateCmd.Flags().Float64("pits", 0.2, "pit probability of random caves")
	simulateCmd.Flags().Int("max-steps", 1000, "give up after this many actions")
	simulateCmd.Flags().Bool("verbose", false, "print every step")

	rootCmd.AddCommand(serveCmd, simulateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initLogger() {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}
	appLogger.SetDebug(envs.Debug)
}

func agentOptions(bounds game.Bounds) []agent.Option {
	return []agent.Option{
		agent.WithBounds(bounds),
		agent.WithThresholds(belief.Thresholds{
			AcceptableDanger: envs.AcceptableDanger,
			AcceptableShoot:  envs.AcceptableShoot,
			AcceptablePit:    envs.AcceptablePit,
		}),
	}
}

func initMongo(ctx context.Context) {
	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(envs.DBURI))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initEpisodeRepo(client *mongo.Client) {
	episodeRepo = repo.NewEpisodeRepo(client, envs.DBName, "episodes")
	appLogger.Info("Episode repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initLeaderboard(client *redis.Client) {
	var err error
	leaderboard, err = sortedstorage.NewRedisSortedQueue(client, 0)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}
	sessionLogger.SetDebug(envs.Debug)

	agentSessionManager, err = service.NewAgentSessionManager(&service.Config{
		Tokenizer:       jwtTokenizer,
		EpisodeRepo:     episodeRepo,
		Leaderboard:     leaderboard,
		LeaderboardSize: envs.LeaderboardSize,
		TokenTTL:        time.Duration(envs.SessionTTLMinutes) * time.Minute,
		AgentOptions:    agentOptions(game.Bounds{Width: envs.ArenaWidth, Height: envs.ArenaHeight}),
		Logger:          sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initAgentController() {
	apiLogger, err := logger.New("AGENT-API", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating agent API logger: %v", err))
		os.Exit(1)
	}

	agentController, err = agentapi.NewController(agentSessionManager, apiLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating agent controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Agent controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{agentController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func serve(cmd *cobra.Command, args []string) error {
	envs = config.LoadServe()
	initLogger()
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	initMongo(connectCtx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRedis(connectCtx)
	defer redisClient.Close()

	initEpisodeRepo(mongoClient)
	initLeaderboard(redisClient)
	initJWTTokenizer()
	initSessionManager()
	initAgentController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	err := router.Run(ctx)
	agentSessionManager.StopAll(context.Background())
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
