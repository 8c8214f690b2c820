package controllers

import (
	"testing"
	"time"

	"github.com/alex-pricope/live-polling-system/broadcast"
	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/poll"
	"github.com/alex-pricope/live-polling-system/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const testAdminToken = "test-admin-token"

type testServer struct {
	router      *gin.Engine
	lifecycle   *poll.Lifecycle
	ledger      *poll.VoteLedger
	registry    *poll.ParticipantRegistry
	coordinator *poll.TimerCoordinator
	gateway     *broadcast.Gateway
}

// setupTestServer wires the full engine against in-memory storage and
// registers every route, mirroring the production wiring in api.Server.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", testAdminToken)

	gateway := broadcast.NewGateway()
	lifecycle := poll.NewLifecycle(storage.NewMemoryPollStorage(), gateway, 5*time.Second, 50)
	gateway.SetLifecycle(lifecycle)
	registry := poll.NewParticipantRegistry(storage.NewMemoryParticipantStorage())
	coordinator := poll.NewTimerCoordinator(lifecycle, registry, gateway, 5, time.Second)
	lifecycle.SetCoordinator(coordinator)
	ledger := poll.NewVoteLedger(storage.NewMemoryVoteStorage(), lifecycle, coordinator, gateway)
	t.Cleanup(coordinator.Shutdown)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewPollController(lifecycle).RegisterRoutes(r)
	NewVotingController(ledger).RegisterRoutes(r)
	NewParticipantController(registry, gateway).RegisterRoutes(r)
	NewEventsController(gateway, registry).RegisterRoutes(r)
	NewChatController(gateway).RegisterRoutes(r)

	return &testServer{
		router:      r,
		lifecycle:   lifecycle,
		ledger:      ledger,
		registry:    registry,
		coordinator: coordinator,
		gateway:     gateway,
	}
}

func adminHeaders() map[string]string {
	return map[string]string{"x-admin-token": testAdminToken}
}
