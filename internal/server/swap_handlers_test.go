package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSwapRepository is a mock of the SwapRepository interface
type MockSwapRepository struct {
	mock.Mock
}

func (m *MockSwapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	args := m.Called(ctx, swap)
	return args.Error(0)
}

func (m *MockSwapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SwapRequest), args.Error(1)
}

func (m *MockSwapRepository) HasPendingDuplicate(ctx context.Context, requesterID, providerID, offeredSkillID, wantedSkillID uint) (bool, error) {
	args := m.Called(ctx, requesterID, providerID, offeredSkillID, wantedSkillID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSwapRepository) GetPendingReceived(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SwapRequest), args.Error(1)
}

func (m *MockSwapRepository) GetSent(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SwapRequest), args.Error(1)
}

func (m *MockSwapRepository) ListForUser(ctx context.Context, userID uint, status models.SwapStatus, role string, page, pageSize int) ([]models.SwapRequest, int64, error) {
	args := m.Called(ctx, userID, status, role, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.SwapRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockSwapRepository) TransitionStatus(ctx context.Context, swapID uint, from, to models.SwapStatus, extra map[string]interface{}) error {
	args := m.Called(ctx, swapID, from, to, extra)
	return args.Error(0)
}

func (m *MockSwapRepository) Complete(ctx context.Context, swapID uint) error {
	args := m.Called(ctx, swapID)
	return args.Error(0)
}

func (m *MockSwapRepository) ListAll(ctx context.Context, status models.SwapStatus, page, pageSize int) ([]models.SwapRequest, int64, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.SwapRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockSwapRepository) CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.SwapStatus]int64), args.Error(1)
}

// localUser injects an authenticated user the way AuthRequired would.
func localUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func newSwapTestServer(mockRepo *MockSwapRepository) *Server {
	return &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		swapRepo: mockRepo,
	}
}

func TestAcceptSwap(t *testing.T) {
	pendingSwap := func() *models.SwapRequest {
		return &models.SwapRequest{
			ID:          7,
			RequesterID: 1,
			ProviderID:  2,
			Status:      models.SwapStatusPending,
		}
	}

	tests := []struct {
		name           string
		actorID        uint
		mockSetup      func(m *MockSwapRepository)
		expectedStatus int
	}{
		{
			name:    "Provider accepts",
			actorID: 2,
			mockSetup: func(m *MockSwapRepository) {
				accepted := pendingSwap()
				accepted.Status = models.SwapStatusAccepted
				now := time.Now()
				accepted.AcceptedAt = &now

				m.On("GetByID", mock.Anything, uint(7)).Return(pendingSwap(), nil).Once()
				m.On("TransitionStatus", mock.Anything, uint(7),
					models.SwapStatusPending, models.SwapStatusAccepted, mock.Anything).Return(nil).Once()
				m.On("GetByID", mock.Anything, uint(7)).Return(accepted, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Requester cannot accept",
			actorID: 1,
			mockSetup: func(m *MockSwapRepository) {
				m.On("GetByID", mock.Anything, uint(7)).Return(pendingSwap(), nil).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:    "Lost race returns conflict",
			actorID: 2,
			mockSetup: func(m *MockSwapRepository) {
				m.On("GetByID", mock.Anything, uint(7)).Return(pendingSwap(), nil).Once()
				m.On("TransitionStatus", mock.Anything, uint(7),
					models.SwapStatusPending, models.SwapStatusAccepted, mock.Anything).
					Return(models.NewConflictError("swap request was already decided")).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:    "Unknown swap",
			actorID: 2,
			mockSetup: func(m *MockSwapRepository) {
				m.On("GetByID", mock.Anything, uint(7)).
					Return(nil, models.NewNotFoundError("Swap request", 7)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSwapRepository)
			tt.mockSetup(mockRepo)

			s := newSwapTestServer(mockRepo)
			app := fiber.New()
			app.Post("/swaps/:id/accept", localUser(tt.actorID), s.AcceptSwap)

			req := httptest.NewRequest(http.MethodPost, "/swaps/7/accept", nil)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCancelSwapOnlyRequester(t *testing.T) {
	mockRepo := new(MockSwapRepository)
	mockRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.SwapRequest{
		ID:          3,
		RequesterID: 10,
		ProviderID:  20,
		Status:      models.SwapStatusPending,
	}, nil).Once()

	s := newSwapTestServer(mockRepo)
	app := fiber.New()
	app.Post("/swaps/:id/cancel", localUser(20), s.CancelSwap)

	req := httptest.NewRequest(http.MethodPost, "/swaps/3/cancel", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestCompleteSwapEitherParticipant(t *testing.T) {
	accepted := &models.SwapRequest{
		ID:          5,
		RequesterID: 1,
		ProviderID:  2,
		Status:      models.SwapStatusAccepted,
	}
	completed := &models.SwapRequest{
		ID:          5,
		RequesterID: 1,
		ProviderID:  2,
		Status:      models.SwapStatusCompleted,
	}

	for _, actorID := range []uint{1, 2} {
		mockRepo := new(MockSwapRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5)).Return(accepted, nil).Once()
		mockRepo.On("Complete", mock.Anything, uint(5)).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, uint(5)).Return(completed, nil).Once()

		s := newSwapTestServer(mockRepo)
		app := fiber.New()
		app.Post("/swaps/:id/complete", localUser(actorID), s.CompleteSwap)

		req := httptest.NewRequest(http.MethodPost, "/swaps/5/complete", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		_ = resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	}
}

func TestGetSwapHidesOthersSwaps(t *testing.T) {
	mockRepo := new(MockSwapRepository)
	mockRepo.On("GetByID", mock.Anything, uint(9)).Return(&models.SwapRequest{
		ID:          9,
		RequesterID: 1,
		ProviderID:  2,
		Status:      models.SwapStatusPending,
	}, nil).Once()

	s := newSwapTestServer(mockRepo)
	app := fiber.New()
	app.Get("/swaps/:id", localUser(99), s.GetSwap)

	req := httptest.NewRequest(http.MethodGet, "/swaps/9", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestListMySwapsRejectsBadRole(t *testing.T) {
	mockRepo := new(MockSwapRepository)
	s := newSwapTestServer(mockRepo)
	app := fiber.New()
	app.Get("/swaps", localUser(1), s.ListMySwaps)

	req := httptest.NewRequest(http.MethodGet, "/swaps?role=bystander", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListMySwapsPassesFilters(t *testing.T) {
	mockRepo := new(MockSwapRepository)
	mockRepo.On("ListForUser", mock.Anything, uint(1),
		models.SwapStatusAccepted, "requester", 2, 10).
		Return([]models.SwapRequest{{ID: 4}}, int64(11), nil).Once()

	s := newSwapTestServer(mockRepo)
	app := fiber.New()
	app.Get("/swaps", localUser(1), s.ListMySwaps)

	req := httptest.NewRequest(http.MethodGet,
		"/swaps?status=accepted&role=requester&page=2&page_size=10", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(11), body.Total)
	assert.Equal(t, 2, body.Page)
	mockRepo.AssertExpectations(t)
}

func TestCreateSwapInvalidBody(t *testing.T) {
	mockRepo := new(MockSwapRepository)
	s := newSwapTestServer(mockRepo)
	app := fiber.New()
	app.Post("/swaps", localUser(1), s.CreateSwap)

	req := httptest.NewRequest(http.MethodPost, "/swaps", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
