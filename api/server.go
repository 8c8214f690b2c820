package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alex-pricope/live-polling-system/api/controllers"
	"github.com/alex-pricope/live-polling-system/api/transport"
	"github.com/alex-pricope/live-polling-system/broadcast"
	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/poll"
	"github.com/alex-pricope/live-polling-system/storage"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
)

const countdownTickInterval = time.Second

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	pollStorage, voteStorage, participantStorage := s.buildStorage()

	// Wire the engine. Lifecycle and timer coordinator reference each
	// other, the coordinator is attached after construction.
	resultsWindow := time.Duration(s.config.CountdownTicks) * countdownTickInterval
	gateway := broadcast.NewGateway()
	lifecycle := poll.NewLifecycle(pollStorage, gateway, resultsWindow, s.config.HistoryLimit)
	gateway.SetLifecycle(lifecycle)
	registry := poll.NewParticipantRegistry(participantStorage)
	coordinator := poll.NewTimerCoordinator(lifecycle, registry, gateway, s.config.CountdownTicks, countdownTickInterval)
	lifecycle.SetCoordinator(coordinator)
	ledger := poll.NewVoteLedger(voteStorage, lifecycle, coordinator, gateway)

	//Register controllers
	pollController := controllers.NewPollController(lifecycle)
	pollController.RegisterRoutes(r)
	votingController := controllers.NewVotingController(ledger)
	votingController.RegisterRoutes(r)
	participantController := controllers.NewParticipantController(registry, gateway)
	participantController.RegisterRoutes(r)
	eventsController := controllers.NewEventsController(gateway, registry)
	eventsController.RegisterRoutes(r)
	chatController := controllers.NewChatController(gateway)
	chatController.RegisterRoutes(r)

	// A poll that was ACTIVE when the previous process stopped resumes
	// with whatever time it has left.
	s.resumeActivePoll(lifecycle, coordinator)

	s.run(r, coordinator)
}

func (s *Server) buildStorage() (storage.PollStorage, storage.VoteStorage, storage.ParticipantStorage) {
	if s.config.InMemory {
		logging.Log.Warn("Using in-memory storage, state will not survive a restart")
		return storage.NewMemoryPollStorage(), storage.NewMemoryVoteStorage(), storage.NewMemoryParticipantStorage()
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)

	pollStorage := &storage.DynamoPollStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNamePolls,
	}
	voteStorage := &storage.DynamoVoteStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameVotes,
	}
	participantStorage := &storage.DynamoParticipantStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameParticipants,
	}
	return pollStorage, voteStorage, participantStorage
}

func (s *Server) resumeActivePoll(lifecycle *poll.Lifecycle, coordinator *poll.TimerCoordinator) {
	active, err := lifecycle.ResumeActive(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to look for an active poll to resume: %v", err)
		return
	}
	if active == nil {
		return
	}

	remaining := time.Duration(active.Duration)*time.Second - time.Since(active.StartedAt)
	logging.Log.Infof("Resuming active poll %s with %s remaining", active.ID, remaining)
	coordinator.Arm(active.ID, remaining)
}

// run starts the HTTP server and blocks until SIGINT/SIGTERM, then
// disarms the timers and drains in-flight requests.
func (s *Server) run(engine *gin.Engine, coordinator *poll.TimerCoordinator) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", s.config.Port))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: engine,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Log.Info("Shutting down gracefully")
	coordinator.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Forced server shutdown: %v", err)
	}
}
