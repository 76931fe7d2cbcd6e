package service

import (
	"errors"
	"fmt"
	"time"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrReviewExists        = errors.New("review already exists")
	ErrReviewNotFound      = errors.New("review not found")
	ErrBusinessNotFound    = errors.New("business not found")
	ErrNoPendingGeneration = errors.New("no pending AI generation for review")
)

// StateTransitionError reports an illegal review lifecycle move.
type StateTransitionError struct {
	CurrentState models.ReviewStatus
	Action       string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a review in state %s", e.Action, e.CurrentState)
}

// legalTransitions is the review status machine. PUBLISHED and REJECTED are
// terminal.
var legalTransitions = map[models.ReviewStatus][]models.ReviewStatus{
	models.ReviewStatusPending:     {models.ReviewStatusAIGenerated, models.ReviewStatusRejected},
	models.ReviewStatusAIGenerated: {models.ReviewStatusApproved, models.ReviewStatusPending, models.ReviewStatusRejected},
	models.ReviewStatusApproved:    {models.ReviewStatusPublished},
	models.ReviewStatusPublished:   {},
	models.ReviewStatusRejected:    {},
}

func canTransition(from, to models.ReviewStatus) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// SubmitReviewInput carries a customer submission.
type SubmitReviewInput struct {
	ID            string // optional; external id, generated when empty
	BusinessID    string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	Rating        int
	Feedback      string
	FormData      models.JSONMap
}

// SubmitResult pairs the stored review with the redirect decision.
type SubmitResult struct {
	Review      *models.Review
	Redirect    bool
	RedirectURL string
}

type ReviewService interface {
	CreateReview(input SubmitReviewInput) (*SubmitResult, error)
	GetReview(id, businessID string) (*models.Review, error)
	ListReviews(businessID string, status models.ReviewStatus, page, pageSize int) ([]models.Review, int64, error)
	// UpdateStatus performs a guarded transition, e.g. APPROVED -> PUBLISHED.
	UpdateStatus(id, businessID string, status models.ReviewStatus, generatedReview, moderatedBy string) (*models.Review, error)
	// MarkAIGenerated attaches enhanced text; only legal from PENDING.
	MarkAIGenerated(review *models.Review, generatedText string) error
	// Approve moves AI_GENERATED -> APPROVED and approves the pending generation.
	Approve(reviewID, businessID, approvedBy string) (*models.Review, error)
	// Reject rejects the pending generation and reverts the review to PENDING.
	Reject(reviewID, businessID, note, moderatedBy string) (*models.Review, error)
}

type reviewService struct {
	reviewRepo     repository.ReviewRepository
	generationRepo repository.GenerationRepository
	businessRepo   repository.BusinessRepository
	customerRepo   repository.CustomerRepository
	quota          QuotaService
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	generationRepo repository.GenerationRepository,
	businessRepo repository.BusinessRepository,
	customerRepo repository.CustomerRepository,
	quota QuotaService,
) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		generationRepo: generationRepo,
		businessRepo:   businessRepo,
		customerRepo:   customerRepo,
		quota:          quota,
	}
}

// CreateReview is the only entry point of the lifecycle; the review starts
// PENDING. Calling it again with the same id is an error.
func (s *reviewService) CreateReview(input SubmitReviewInput) (*SubmitResult, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	business, err := s.businessRepo.GetByID(input.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	if input.ID != "" {
		exists, err := s.reviewRepo.ExistsByID(input.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrReviewExists
		}
	}

	customerID := input.CustomerID
	if customerID == "" && input.CustomerEmail != "" {
		customer, err := s.customerRepo.FindOrCreateByEmail(business.ID, input.CustomerEmail, input.CustomerName)
		if err != nil {
			return nil, err
		}
		customerID = customer.ID
	}

	review := &models.Review{
		ID:         input.ID,
		BusinessID: business.ID,
		CustomerID: customerID,
		Rating:     input.Rating,
		Feedback:   input.Feedback,
		Status:     models.ReviewStatusPending,
		FormData:   input.FormData,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	// Usage bookkeeping only; review creation is never quota-blocked.
	s.quota.RecordUsage(business.ID, models.FeatureReviews, true, 0)

	result := &SubmitResult{Review: review}
	if ShouldRedirectExternally(business, input.Rating) {
		result.Redirect = true
		result.RedirectURL = business.GoogleReviewURL
	}
	return result, nil
}

func (s *reviewService) GetReview(id, businessID string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.BusinessID != businessID {
		// Ownership mismatch reads as not found.
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (s *reviewService) ListReviews(businessID string, status models.ReviewStatus, page, pageSize int) ([]models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.reviewRepo.ListByBusiness(businessID, status, page, pageSize)
}

func (s *reviewService) UpdateStatus(id, businessID string, status models.ReviewStatus, generatedReview, moderatedBy string) (*models.Review, error) {
	// Approval must also settle the pending generation, so it goes through
	// the same path as the dedicated approve endpoint.
	if status == models.ReviewStatusApproved {
		return s.Approve(id, businessID, moderatedBy)
	}

	review, err := s.GetReview(id, businessID)
	if err != nil {
		return nil, err
	}

	// Retried call that already landed in the requested state returns the
	// current record instead of erroring.
	if review.Status == status {
		return review, nil
	}
	if !canTransition(review.Status, status) {
		return nil, &StateTransitionError{CurrentState: review.Status, Action: "set status " + string(status)}
	}

	review.Status = status
	if generatedReview != "" {
		review.GeneratedReview = generatedReview
	}
	if moderatedBy != "" {
		now := time.Now().UTC()
		review.ModeratedBy = moderatedBy
		review.ModeratedAt = &now
	}
	if err := s.reviewRepo.UpdateStatus(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) MarkAIGenerated(review *models.Review, generatedText string) error {
	// AI_GENERATED is allowed as a regeneration re-entry; the text is replaced.
	if review.Status != models.ReviewStatusPending && review.Status != models.ReviewStatusAIGenerated {
		return &StateTransitionError{CurrentState: review.Status, Action: "mark AI generated"}
	}
	review.GeneratedReview = generatedText
	review.Status = models.ReviewStatusAIGenerated
	return s.reviewRepo.UpdateStatus(review)
}

func (s *reviewService) Approve(reviewID, businessID, approvedBy string) (*models.Review, error) {
	review, err := s.GetReview(reviewID, businessID)
	if err != nil {
		return nil, err
	}

	if review.Status == models.ReviewStatusApproved {
		return review, nil // idempotent retry
	}
	if review.Status != models.ReviewStatusAIGenerated {
		return nil, &StateTransitionError{CurrentState: review.Status, Action: "approve"}
	}

	generation, err := s.generationRepo.GetLatestPendingByReview(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingGeneration
		}
		return nil, err
	}

	now := time.Now().UTC()
	generation.Status = models.GenerationStatusApproved
	generation.ApprovedBy = approvedBy
	generation.ApprovedAt = &now
	if err := s.generationRepo.Update(generation); err != nil {
		return nil, err
	}

	review.Status = models.ReviewStatusApproved
	review.ModeratedBy = approvedBy
	review.ModeratedAt = &now
	if err := s.reviewRepo.UpdateStatus(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Reject rejects the pending generation; the review returns to PENDING so the
// customer's original feedback stays usable for manual review.
func (s *reviewService) Reject(reviewID, businessID, note, moderatedBy string) (*models.Review, error) {
	review, err := s.GetReview(reviewID, businessID)
	if err != nil {
		return nil, err
	}

	if review.Status == models.ReviewStatusPending {
		return review, nil // idempotent retry
	}
	if review.Status != models.ReviewStatusAIGenerated {
		return nil, &StateTransitionError{CurrentState: review.Status, Action: "reject generation"}
	}

	generation, err := s.generationRepo.GetLatestPendingByReview(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingGeneration
		}
		return nil, err
	}

	generation.Status = models.GenerationStatusRejected
	generation.RejectionNote = note
	if err := s.generationRepo.Update(generation); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review.Status = models.ReviewStatusPending
	review.ModerationNote = note
	review.ModeratedBy = moderatedBy
	review.ModeratedAt = &now
	if err := s.reviewRepo.UpdateStatus(review); err != nil {
		return nil, err
	}
	return review, nil
}
