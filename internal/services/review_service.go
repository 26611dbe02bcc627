package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/validation"
)

// errAlreadyReviewed is the one-review-per-author rule. Both the pre-check
// and the unique-index violation surface as this same validation error.
func errAlreadyReviewed() error {
	return apperr.Validation("you have already reviewed this title")
}

type ReviewService struct {
	db       *gorm.DB
	pageSize int
}

func NewReviewService(db *gorm.DB, pageSize int) *ReviewService {
	return &ReviewService{db: db, pageSize: pageSize}
}

// ensureTitle confirms the path-addressed parent exists.
func (s *ReviewService) ensureTitle(titleID uint) error {
	var count int64
	if err := s.db.Model(&models.Title{}).Where("id = ?", titleID).Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count == 0 {
		return apperr.NotFound("title")
	}
	return nil
}

func (s *ReviewService) List(titleID uint, page int) ([]models.Review, Page, error) {
	p := Page{Page: page, Limit: s.pageSize}

	if err := s.ensureTitle(titleID); err != nil {
		return nil, p, err
	}

	if err := s.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&p.Total).Error; err != nil {
		return nil, p, apperr.Internal(err)
	}

	var reviews []models.Review
	err := s.db.Preload("Author").
		Where("title_id = ?", titleID).
		Order("id").Offset(p.Offset()).Limit(p.Limit).
		Find(&reviews).Error
	if err != nil {
		return nil, p, apperr.Internal(err)
	}
	return reviews, p, nil
}

// Get returns the review only when it is a child of the named title.
func (s *ReviewService) Get(titleID, reviewID uint) (*models.Review, error) {
	if err := s.ensureTitle(titleID); err != nil {
		return nil, err
	}

	var review models.Review
	err := s.db.Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&review).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("review")
		}
		return nil, apperr.Internal(err)
	}
	return &review, nil
}

func (s *ReviewService) Create(titleID, authorID uint, req *dto.ReviewRequest) (*models.Review, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureTitle(titleID); err != nil {
		return nil, err
	}

	var count int64
	err := s.db.Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, errAlreadyReviewed()
	}

	review := models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.db.Create(&review).Error; err != nil {
		// Concurrent create by the same author: the unique index caught
		// what the pre-check could not.
		if isUniqueViolation(err) {
			return nil, errAlreadyReviewed()
		}
		return nil, apperr.Internal(fmt.Errorf("create review: %w", err))
	}

	if err := s.db.Preload("Author").First(&review, review.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &review, nil
}

// Update persists new text/score. Author and title are re-bound to their
// existing values: a payload can never move a review to another parent.
func (s *ReviewService) Update(review *models.Review, req *dto.ReviewUpdateRequest) (*models.Review, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title_id":  review.TitleID,
		"author_id": review.AuthorID,
	}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}

	if err := s.db.Model(review).Updates(updates).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("update review: %w", err))
	}
	return review, nil
}

// Delete removes the review; its comments cascade away.
func (s *ReviewService) Delete(review *models.Review) error {
	if err := s.db.Delete(review).Error; err != nil {
		return apperr.Internal(fmt.Errorf("delete review: %w", err))
	}
	return nil
}
