package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"
	"unicode"

	"reviewhub/internal/ai"
	"reviewhub/internal/http-api/cache"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// ContentError is a Text Quality Gate rejection; recoverable by the caller
// editing their input.
type ContentError struct {
	Reasons     []string
	Suggestions []string
}

func (e *ContentError) Error() string {
	return "invalid content: " + strings.Join(e.Reasons, "; ")
}

// EnhancementError is a provider-stage failure (call failed, empty output,
// timeout). Timeouts are retryable.
type EnhancementError struct {
	Reason    string
	Retryable bool
	Err       error
}

func (e *EnhancementError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("enhancement failed: %s: %v", e.Reason, e.Err)
	}
	return "enhancement failed: " + e.Reason
}

func (e *EnhancementError) Unwrap() error { return e.Err }

// EnhanceOptions tune one enhancement invocation.
type EnhanceOptions struct {
	PreferredModel string
	CustomPrompt   string
}

// QuickEnhanceInput is the public, unauthenticated enhance-text request.
type QuickEnhanceInput struct {
	Text         string
	BusinessName string
	Seed         int64
}

type QuickEnhanceResult struct {
	EnhancedText string           `json:"enhanced_text"`
	Sentiment    models.Sentiment `json:"sentiment"`
	Source       string           `json:"source"` // "ai" or "fallback"
}

type AIService interface {
	// EnhanceReview runs the full enhancement workflow for a PENDING review.
	EnhanceReview(ctx context.Context, reviewID, businessID string, opts EnhanceOptions) (*models.AIGeneration, error)
	// Regenerate supersedes the prior pending generation with a fresh attempt.
	Regenerate(ctx context.Context, reviewID, businessID string, opts EnhanceOptions) (*models.AIGeneration, error)
	// QuickEnhance is the public path: provider when possible, deterministic
	// fallback otherwise. Generation itself never fails.
	QuickEnhance(ctx context.Context, input QuickEnhanceInput) (*QuickEnhanceResult, error)
	ListGenerations(reviewID, businessID string) ([]models.AIGeneration, error)

	// Admin default-model override, persisted and read fresh per request.
	DefaultModel(ctx context.Context) string
	SetDefaultModel(ctx context.Context, model string) error
}

type aiService struct {
	reviews        ReviewService
	reviewRepo     repository.ReviewRepository
	generationRepo repository.GenerationRepository
	businessRepo   repository.BusinessRepository
	templateRepo   repository.TemplateRepository
	settingRepo    repository.SettingRepository
	quota          QuotaService
	providers      *ai.Registry
	cache          *cache.Store
	fallbackModel  string // from config, used when no override is stored
	logger         *slog.Logger
}

func NewAIService(
	reviews ReviewService,
	reviewRepo repository.ReviewRepository,
	generationRepo repository.GenerationRepository,
	businessRepo repository.BusinessRepository,
	templateRepo repository.TemplateRepository,
	settingRepo repository.SettingRepository,
	quota QuotaService,
	providers *ai.Registry,
	cacheStore *cache.Store,
	defaultModel string,
	logger *slog.Logger,
) AIService {
	return &aiService{
		reviews:        reviews,
		reviewRepo:     reviewRepo,
		generationRepo: generationRepo,
		businessRepo:   businessRepo,
		templateRepo:   templateRepo,
		settingRepo:    settingRepo,
		quota:          quota,
		providers:      providers,
		cache:          cacheStore,
		fallbackModel:  defaultModel,
		logger:         logger,
	}
}

func (s *aiService) EnhanceReview(ctx context.Context, reviewID, businessID string, opts EnhanceOptions) (*models.AIGeneration, error) {
	review, err := s.ownedReview(reviewID, businessID)
	if err != nil {
		return nil, err
	}
	if review.Status != models.ReviewStatusPending {
		return nil, &StateTransitionError{CurrentState: review.Status, Action: "enhance"}
	}
	return s.enhance(ctx, review, opts)
}

func (s *aiService) Regenerate(ctx context.Context, reviewID, businessID string, opts EnhanceOptions) (*models.AIGeneration, error) {
	review, err := s.ownedReview(reviewID, businessID)
	if err != nil {
		return nil, err
	}
	if review.Status != models.ReviewStatusAIGenerated && review.Status != models.ReviewStatusPending {
		return nil, &StateTransitionError{CurrentState: review.Status, Action: "regenerate"}
	}

	// A regeneration supersedes the prior attempt, it never overwrites it.
	prior, err := s.generationRepo.GetLatestPendingByReview(reviewID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if prior != nil {
		prior.Status = models.GenerationStatusRegenerated
		if err := s.generationRepo.Update(prior); err != nil {
			return nil, err
		}
	}

	return s.enhance(ctx, review, opts)
}

// enhance is the shared workflow core. Exactly one usage increment happens per
// provider invocation attempt, success or failure alike.
func (s *aiService) enhance(ctx context.Context, review *models.Review, opts EnhanceOptions) (*models.AIGeneration, error) {
	originalText := review.Feedback

	if gate := ValidateReviewText(originalText); !gate.IsValid {
		return nil, &ContentError{Reasons: gate.Errors, Suggestions: gate.Suggestions}
	}

	business, err := s.businessRepo.GetByID(review.BusinessID)
	if err != nil {
		return nil, err
	}

	prompt := s.resolvePrompt(business, originalText, opts.CustomPrompt)

	modelID := s.resolveModel(ctx, business, opts.PreferredModel)
	provider, err := s.providers.Get(modelID)
	if err != nil {
		s.quota.RecordUsage(business.ID, models.FeatureAIEnhancement, false, 0)
		return nil, &EnhancementError{Reason: "no such model", Err: err}
	}

	start := time.Now()
	output, err := provider.GenerateContent(ctx, prompt)
	latency := time.Since(start)
	if err != nil {
		s.quota.RecordUsage(business.ID, models.FeatureAIEnhancement, false, latency)
		return nil, &EnhancementError{Reason: "provider call failed", Retryable: isTimeout(err), Err: err}
	}

	output = strings.TrimSpace(output)
	if output == "" {
		s.quota.RecordUsage(business.ID, models.FeatureAIEnhancement, false, latency)
		return nil, &EnhancementError{Reason: "empty model response"}
	}

	analysis := s.analyze(ctx, provider, originalText)

	generation := &models.AIGeneration{
		ReviewID:     review.ID,
		BusinessID:   business.ID,
		OriginalText: originalText,
		EnhancedText: output,
		Confidence:   scoreConfidence(originalText, output),
		Sentiment:    analysis.sentiment,
		Keywords:     analysis.keywords,
		Improvements: analysis.improvements,
		Status:       models.GenerationStatusPending,
		ModelUsed:    provider.Name(),
		LatencyMS:    latency.Milliseconds(),
	}
	if err := s.generationRepo.Create(generation); err != nil {
		s.quota.RecordUsage(business.ID, models.FeatureAIEnhancement, false, latency)
		return nil, err
	}
	if err := s.reviews.MarkAIGenerated(review, output); err != nil {
		s.quota.RecordUsage(business.ID, models.FeatureAIEnhancement, false, latency)
		return nil, err
	}

	s.quota.RecordUsage(business.ID, models.FeatureAIEnhancement, true, latency)
	return generation, nil
}

func (s *aiService) QuickEnhance(ctx context.Context, input QuickEnhanceInput) (*QuickEnhanceResult, error) {
	if gate := ValidateReviewText(input.Text); !gate.IsValid {
		return nil, &ContentError{Reasons: gate.Errors, Suggestions: gate.Suggestions}
	}

	prompt := ai.FillTemplate(ai.DefaultEnhanceTemplate, input.BusinessName, "business", "general", input.Text)

	if provider, err := s.providers.Get(s.DefaultModel(ctx)); err == nil {
		if output, err := provider.GenerateContent(ctx, prompt); err == nil {
			if output = strings.TrimSpace(output); output != "" {
				return &QuickEnhanceResult{
					EnhancedText: output,
					Sentiment:    ClassifySentiment(input.Text),
					Source:       "ai",
				}, nil
			}
		} else {
			s.logger.Warn("quick enhance provider failed, using fallback", "error", err)
		}
	}

	text, sentiment := FallbackEnhance(input.Text, input.BusinessName, input.Seed)
	return &QuickEnhanceResult{
		EnhancedText: text,
		Sentiment:    sentiment,
		Source:       "fallback",
	}, nil
}

func (s *aiService) ListGenerations(reviewID, businessID string) ([]models.AIGeneration, error) {
	if _, err := s.ownedReview(reviewID, businessID); err != nil {
		return nil, err
	}
	return s.generationRepo.ListByReview(reviewID)
}

// DefaultModel reads the persisted admin override through the cache, falling
// back to the configured default.
func (s *aiService) DefaultModel(ctx context.Context) string {
	if value, hit, err := s.cache.GetString(ctx, cache.DefaultModelKey); err == nil && hit {
		return value
	}
	value, err := s.settingRepo.Get(models.SettingDefaultModel)
	if err != nil {
		return s.fallbackModel
	}
	if err := s.cache.SetString(ctx, cache.DefaultModelKey, value); err != nil {
		s.logger.Warn("failed to cache default model", "error", err)
	}
	return value
}

func (s *aiService) SetDefaultModel(ctx context.Context, model string) error {
	if _, err := s.providers.Get(model); err != nil {
		return err
	}
	if err := s.settingRepo.Set(models.SettingDefaultModel, model); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cache.DefaultModelKey); err != nil {
		s.logger.Warn("failed to invalidate default model cache", "error", err)
	}
	return nil
}

func (s *aiService) ownedReview(reviewID, businessID string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.BusinessID != businessID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// resolvePrompt picks the template: explicit custom prompt, then the
// business's active override (if its plan carries custom templates), then the
// stored global default, then the built-in one.
func (s *aiService) resolvePrompt(business *models.Business, originalText, customPrompt string) string {
	template := customPrompt
	if template == "" {
		if check, err := s.quota.CheckUsageLimit(business.ID, models.FeatureCustomTemplates); err == nil && check.Allowed {
			if row, err := s.templateRepo.GetActiveByBusiness(business.ID); err == nil {
				template = row.Template
			}
		}
	}
	if template == "" {
		if row, err := s.templateRepo.GetGlobalDefault(); err == nil {
			template = row.Template
		}
	}
	if template == "" {
		template = ai.DefaultEnhanceTemplate
	}
	return ai.FillTemplate(template, business.Name, business.BusinessType, business.Industry, originalText)
}

// resolveModel: explicit argument > business preference > stored default.
func (s *aiService) resolveModel(ctx context.Context, business *models.Business, preferred string) string {
	if preferred != "" {
		return preferred
	}
	if business.PreferredModel != "" {
		return business.PreferredModel
	}
	return s.DefaultModel(ctx)
}

type analysis struct {
	sentiment    models.Sentiment
	keywords     models.StringList
	improvements models.StringList
}

func neutralAnalysis() analysis {
	return analysis{sentiment: models.SentimentNeutral, keywords: models.StringList{}, improvements: models.StringList{}}
}

// analyze runs the secondary JSON-producing call; any failure falls back to a
// neutral analysis rather than failing the enhancement.
func (s *aiService) analyze(ctx context.Context, provider ai.Provider, originalText string) analysis {
	prompt := strings.Replace(ai.AnalyzePrompt, "{originalText}", originalText, 1)
	raw, err := provider.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn("analysis call failed, using neutral analysis", "error", err)
		return neutralAnalysis()
	}

	var parsed struct {
		Sentiment    string   `json:"sentiment"`
		Keywords     []string `json:"keywords"`
		Improvements []string `json:"improvements"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		s.logger.Warn("analysis response was not valid JSON, using neutral analysis", "error", err)
		return neutralAnalysis()
	}

	result := neutralAnalysis()
	switch models.Sentiment(parsed.Sentiment) {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		result.sentiment = models.Sentiment(parsed.Sentiment)
	}
	if len(parsed.Keywords) > 5 {
		parsed.Keywords = parsed.Keywords[:5]
	}
	if len(parsed.Improvements) > 3 {
		parsed.Improvements = parsed.Improvements[:3]
	}
	if parsed.Keywords != nil {
		result.keywords = models.StringList(parsed.Keywords)
	}
	if parsed.Improvements != nil {
		result.improvements = models.StringList(parsed.Improvements)
	}
	return result
}

// stripCodeFences tolerates models wrapping their JSON in markdown fences.
func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}

// scoreConfidence starts at 0.7, rewards output between 1x and 2x the input
// length and conventional sentence shape, capped at 1.0.
func scoreConfidence(original, enhanced string) float64 {
	confidence := 0.7

	originalWords := len(strings.Fields(original))
	enhancedWords := len(strings.Fields(enhanced))
	if originalWords > 0 && enhancedWords >= originalWords && enhancedWords <= 2*originalWords {
		confidence += 0.1
	}

	runes := []rune(enhanced)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) && strings.Contains(enhanced, ".") {
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
