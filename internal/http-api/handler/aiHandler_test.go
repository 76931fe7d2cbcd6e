package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testReviewID = "4c1d2e3f-9a8b-4c5d-8e7f-0a1b2c3d4e5f"

// MockAIService mocks the AIService interface
type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) EnhanceReview(ctx context.Context, reviewID, businessID string, opts service.EnhanceOptions) (*models.AIGeneration, error) {
	args := m.Called(ctx, reviewID, businessID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIGeneration), args.Error(1)
}

func (m *MockAIService) Regenerate(ctx context.Context, reviewID, businessID string, opts service.EnhanceOptions) (*models.AIGeneration, error) {
	args := m.Called(ctx, reviewID, businessID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIGeneration), args.Error(1)
}

func (m *MockAIService) QuickEnhance(ctx context.Context, input service.QuickEnhanceInput) (*service.QuickEnhanceResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuickEnhanceResult), args.Error(1)
}

func (m *MockAIService) ListGenerations(reviewID, businessID string) ([]models.AIGeneration, error) {
	args := m.Called(reviewID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AIGeneration), args.Error(1)
}

func (m *MockAIService) DefaultModel(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockAIService) SetDefaultModel(ctx context.Context, model string) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

// MockQuotaService mocks the QuotaService interface
type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) CheckUsageLimit(businessID string, feature models.Feature) (*service.UsageCheck, error) {
	args := m.Called(businessID, feature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UsageCheck), args.Error(1)
}

func (m *MockQuotaService) RecordUsage(businessID string, feature models.Feature, success bool, latency time.Duration) {
	m.Called(businessID, feature, success, latency)
}

func (m *MockQuotaService) UsageSummary(businessID string) ([]service.UsageCheck, error) {
	args := m.Called(businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.UsageCheck), args.Error(1)
}

func (m *MockQuotaService) SnapshotMonth(month time.Time) (int, error) {
	args := m.Called(month)
	return args.Int(0), args.Error(1)
}

func TestEnhanceReview_Success_Handler(t *testing.T) {
	mockAI := new(MockAIService)
	handler := NewAIHandler(mockAI, new(MockReviewService), new(MockQuotaService))
	router := setupRouter()
	router.POST("/ai/enhance-review", injectAuth(testBusinessID, "user-1"), handler.EnhanceReview)

	generation := &models.AIGeneration{
		ID:           "gen-1",
		ReviewID:     testReviewID,
		EnhancedText: "A polished review.",
		Confidence:   0.9,
		Sentiment:    models.SentimentPositive,
		Status:       models.GenerationStatusPending,
		ModelUsed:    "gemini",
	}
	mockAI.On("EnhanceReview", mock.Anything, testReviewID, testBusinessID, service.EnhanceOptions{}).
		Return(generation, nil)

	body := []byte(`{"reviewId":"` + testReviewID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/ai/enhance-review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	assert.Equal(t, "A polished review.", data["enhanced_text"])
	assert.Equal(t, "gemini", data["model_used"])
}

func TestEnhanceReview_GateRejectionDetails(t *testing.T) {
	mockAI := new(MockAIService)
	handler := NewAIHandler(mockAI, new(MockReviewService), new(MockQuotaService))
	router := setupRouter()
	router.POST("/ai/enhance-review", injectAuth(testBusinessID, "user-1"), handler.EnhanceReview)

	mockAI.On("EnhanceReview", mock.Anything, testReviewID, testBusinessID, service.EnhanceOptions{}).
		Return(nil, &service.ContentError{
			Reasons:     []string{"feedback looks like keyboard mashing"},
			Suggestions: []string{"use normal words describing what you liked or disliked"},
		})

	body := []byte(`{"reviewId":"` + testReviewID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/ai/enhance-review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["reasons"])
	assert.NotEmpty(t, resp["suggestions"])
}

func TestEnhanceReview_ProviderFailure(t *testing.T) {
	mockAI := new(MockAIService)
	handler := NewAIHandler(mockAI, new(MockReviewService), new(MockQuotaService))
	router := setupRouter()
	router.POST("/ai/enhance-review", injectAuth(testBusinessID, "user-1"), handler.EnhanceReview)

	mockAI.On("EnhanceReview", mock.Anything, testReviewID, testBusinessID, service.EnhanceOptions{}).
		Return(nil, &service.EnhancementError{Reason: "provider call failed", Retryable: true})

	body := []byte(`{"reviewId":"` + testReviewID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/ai/enhance-review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["retryable"])
}

func TestQuotaMiddleware_BlocksAtLimit(t *testing.T) {
	mockAI := new(MockAIService)
	mockQuota := new(MockQuotaService)
	handler := NewAIHandler(mockAI, new(MockReviewService), mockQuota)
	router := setupRouter()

	authed := router.Group("", injectAuth(testBusinessID, "user-1"))
	handler.RegisterRoutes(authed)

	mockQuota.On("CheckUsageLimit", testBusinessID, models.FeatureAIEnhancement).
		Return(&service.UsageCheck{
			Allowed:  false,
			Feature:  models.FeatureAIEnhancement,
			Used:     10,
			Limit:    10,
			PlanName: "free",
		}, nil)

	body := []byte(`{"reviewId":"` + testReviewID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/ai/enhance-review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["upgradeRequired"])
	assert.Equal(t, "free", resp["plan"])
	mockAI.AssertNotCalled(t, "EnhanceReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuickEnhance_PublicFallback(t *testing.T) {
	mockAI := new(MockAIService)
	handler := NewAIHandler(mockAI, new(MockReviewService), new(MockQuotaService))
	router := setupRouter()
	router.POST("/ai/enhance-text", handler.QuickEnhance)

	mockAI.On("QuickEnhance", mock.Anything, service.QuickEnhanceInput{
		Text:         "great espresso and friendly staff",
		BusinessName: "Bar Centrale",
		Seed:         42,
	}).Return(&service.QuickEnhanceResult{
		EnhancedText: "I had a wonderful experience at Bar Centrale.",
		Sentiment:    models.SentimentPositive,
		Source:       "fallback",
	}, nil)

	body := []byte(`{"text":"great espresso and friendly staff","businessName":"Bar Centrale","seed":42}`)
	req := httptest.NewRequest(http.MethodPost, "/ai/enhance-text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	assert.Equal(t, "fallback", data["source"])
}

func TestApproveReview_NoPendingGeneration(t *testing.T) {
	mockReviews := new(MockReviewService)
	handler := NewAIHandler(new(MockAIService), mockReviews, new(MockQuotaService))
	router := setupRouter()
	router.POST("/ai/approve-review/:reviewId", injectAuth(testBusinessID, "user-1"), handler.ApproveReview)

	mockReviews.On("Approve", testReviewID, testBusinessID, "user-1").
		Return(nil, service.ErrNoPendingGeneration)

	req := httptest.NewRequest(http.MethodPost, "/ai/approve-review/"+testReviewID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSetDefaultModel_Handler(t *testing.T) {
	mockAI := new(MockAIService)
	handler := NewAIHandler(mockAI, new(MockReviewService), new(MockQuotaService))
	router := setupRouter()
	router.PUT("/ai/default-model", handler.SetDefaultModel)

	mockAI.On("SetDefaultModel", mock.Anything, "claude").Return(nil)

	body := []byte(`{"model":"claude"}`)
	req := httptest.NewRequest(http.MethodPut, "/ai/default-model", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAI.AssertExpectations(t)
}
