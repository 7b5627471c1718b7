package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vaibhavshukla06/Labyrnith-Survival/api"
	gameapi "github.com/vaibhavshukla06/Labyrnith-Survival/api/game"
	api_i "github.com/vaibhavshukla06/Labyrnith-Survival/api/i"
	"github.com/vaibhavshukla06/Labyrnith-Survival/api/identity"
	"github.com/vaibhavshukla06/Labyrnith-Survival/config"
	"github.com/vaibhavshukla06/Labyrnith-Survival/infrastruture/repo"
	"github.com/vaibhavshukla06/Labyrnith-Survival/infrastruture/sortedstorage"
	"github.com/vaibhavshukla06/Labyrnith-Survival/infrastruture/token"
	"github.com/vaibhavshukla06/Labyrnith-Survival/maze"
	"github.com/vaibhavshukla06/Labyrnith-Survival/realtime"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service/i"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const matchQueueTTLSeconds = 300

// Global variables for dependencies
var (
	mongoClient           *mongo.Client
	redisClient           *redis.Client
	gameSessionManager    *service.GameSessionManager
	userRepo              i.UserRepo
	matchmaker            i.Matchmaker
	gateway               *realtime.Hub
	matchmakingController api_i.Controller
	jwtTokenizer          i.Tokenizer
	authService           i.Authenticator
	authController        api_i.Controller
	router                *api.Router
	appLogger             *log.Logger
)

func newLogger(name, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset), log.LstdFlags)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Printf("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Printf("MongoDB ping failed: %v", err)
		os.Exit(1)
	}
	appLogger.Print("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Printf("Redis ping failed: %v", err)
		os.Exit(1)
	}
	appLogger.Print("Connected to Redis")
}

func initUserRepo(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	appLogger.Print("User repository initialized")
}

func initGateway() {
	addr := fmt.Sprintf("ws://%s:%d/api/v1/ws", config.Envs.SessionManagerHost, config.Envs.SessionManagerPort)
	gateway = realtime.NewHub(addr, newLogger("GATEWAY", config.ColorCyan))
	appLogger.Print("Realtime gateway initialized")
}

func initSessionManager() {
	var err error
	gameSessionManager, err = service.NewGameSessionManager(&service.SessionManagerConfig{
		Gateway:   gateway,
		Tokenizer: jwtTokenizer,
		Users:     userRepo,
		MazeConfig: maze.Config{
			Width:         config.Envs.MazeWidth,
			Height:        config.Envs.MazeHeight,
			CellSize:      config.Envs.MazeCellSize,
			ShiftInterval: time.Duration(config.Envs.MazeShiftIntervalMS) * time.Millisecond,
			ShiftChance:   config.Envs.MazeShiftChance,
		},
		Logger: newLogger("SESSION-MANAGER", config.ColorBlue),
	})
	if err != nil {
		appLogger.Printf("Creating session manager: %v", err)
		os.Exit(1)
	}

	appLogger.Print("Session manager initialized")
}

func initMatchmaker() {
	sortedQueue, err := sortedstorage.NewRedisSortedQueue(redisClient, matchQueueTTLSeconds)
	if err != nil {
		appLogger.Printf("Creating redis sorted queue: %v", err)
		os.Exit(1)
	}

	matchmaker, err = service.NewMatchmaker(sortedQueue, newLogger("MATCH-MAKER", config.ColorPurple), nil)
	if err != nil {
		appLogger.Printf("Creating matchmaker: %v", err)
		os.Exit(1)
	}
	matchmaker.SetMatchHandler(gameSessionManager.NewSession)

	appLogger.Print("Matchmaker initialized")
}

func initMatchmakingController() {
	var err error
	matchmakingController, err = gameapi.NewMatchMakingController(gameSessionManager, userRepo, matchmaker)
	if err != nil {
		appLogger.Printf("Creating matchmaking controller: %v", err)
		os.Exit(1)
	}
	appLogger.Print("Matchmaking controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Print("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuth(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Printf("Creating auth service: %v", err)
		os.Exit(1)
	}
	appLogger.Print("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Print("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, matchmakingController, gateway},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Print("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initUserRepo(mongoClient)
	initJWTTokenizer()
	initGateway()
	initSessionManager()
	initMatchmaker()
	initMatchmakingController()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	defer gameSessionManager.StopAll()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Printf("Starting server: %v", err)
		os.Exit(1)
	}
}
