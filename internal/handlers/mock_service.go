package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
	"github.com/krishkishore714-max/Drainage-congestion/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockInference struct {
	result      drainguard.PredictionResult
	err         error
	info        service.ModelInfo
	available   bool
	lastReading drainguard.SensorReading
	calls       int
}

func (m *mockInference) Classify(ctx context.Context, r drainguard.SensorReading) (drainguard.PredictionResult, error) {
	m.calls++
	m.lastReading = r
	return m.result, m.err
}
func (m *mockInference) ModelInfo() service.ModelInfo { return m.info }
func (m *mockInference) Available() bool              { return m.available }

type mockFeed struct {
	startErr    error
	stopErr     error
	startCalled int
	stopCalled  int
}

func (m *mockFeed) Start(ctx context.Context) error {
	m.startCalled++
	return m.startErr
}
func (m *mockFeed) Stop(ctx context.Context) error {
	m.stopCalled++
	return m.stopErr
}

type mockMonitoring struct {
	state drainguard.DrainState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (drainguard.DrainState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []drainguard.DrainEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]drainguard.DrainEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
