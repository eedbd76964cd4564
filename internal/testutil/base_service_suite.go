package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/insuranceguard/insuranceguard/internal/clock"
	"github.com/insuranceguard/insuranceguard/internal/config"
	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/store"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// TestActorID is the actor every suite context carries unless a test
// overrides it.
const TestActorID = "user_test"

// ReferenceTime is the suite clock's starting instant.
var ReferenceTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// BaseServiceTestSuite wires a fresh in-memory store, a fixed clock and a
// deterministic ID generator for every test. Service suites embed it.
type BaseServiceTestSuite struct {
	suite.Suite

	ctx      context.Context
	cfg      *config.Configuration
	log      *logger.Logger
	clock    *clock.FixedClock
	rand     *SequenceRandomSource
	idGen    *types.IDGenerator
	gateway  *InMemoryGateway
	store    *store.Store
	notifier *CaptureNotifier
}

// SetupTest initializes the base test suite
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = types.WithActorID(context.Background(), TestActorID)
	s.cfg = config.GetDefaultConfig()

	log, err := logger.NewLogger(s.cfg)
	s.Require().NoError(err)
	s.log = log

	s.clock = &clock.FixedClock{Time: ReferenceTime}
	s.rand = NewSequenceRandomSource()
	s.idGen = types.NewIDGenerator(s.clock.Now, s.rand)

	s.gateway = NewInMemoryGateway()
	st, err := store.Open(s.ctx, s.gateway, s.log)
	s.Require().NoError(err)
	s.store = st

	s.notifier = NewCaptureNotifier()
}

// GetContext returns the suite context, carrying the test actor.
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the suite configuration.
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the suite logger.
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}

// GetClock returns the suite's fixed clock.
func (s *BaseServiceTestSuite) GetClock() *clock.FixedClock {
	return s.clock
}

// GetRand returns the deterministic random source behind the ID generator.
func (s *BaseServiceTestSuite) GetRand() *SequenceRandomSource {
	return s.rand
}

// GetIDGenerator returns the suite ID generator.
func (s *BaseServiceTestSuite) GetIDGenerator() *types.IDGenerator {
	return s.idGen
}

// GetGateway returns the in-memory dataset gateway.
func (s *BaseServiceTestSuite) GetGateway() *InMemoryGateway {
	return s.gateway
}

// GetStore returns the dataset store.
func (s *BaseServiceTestSuite) GetStore() *store.Store {
	return s.store
}

// GetNotifier returns the capture notifier.
func (s *BaseServiceTestSuite) GetNotifier() *CaptureNotifier {
	return s.notifier
}
