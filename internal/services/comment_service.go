package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/validation"
)

type CommentService struct {
	db       *gorm.DB
	reviews  *ReviewService
	pageSize int
}

func NewCommentService(db *gorm.DB, reviews *ReviewService, pageSize int) *CommentService {
	return &CommentService{db: db, reviews: reviews, pageSize: pageSize}
}

// ensureReview resolves the doubly-scoped path: 404 when the title is
// absent, the review is absent, or the review belongs to another title.
func (s *CommentService) ensureReview(titleID, reviewID uint) (*models.Review, error) {
	return s.reviews.Get(titleID, reviewID)
}

func (s *CommentService) List(titleID, reviewID uint, page int) ([]models.Comment, Page, error) {
	p := Page{Page: page, Limit: s.pageSize}

	if _, err := s.ensureReview(titleID, reviewID); err != nil {
		return nil, p, err
	}

	if err := s.db.Model(&models.Comment{}).Where("review_id = ?", reviewID).Count(&p.Total).Error; err != nil {
		return nil, p, apperr.Internal(err)
	}

	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("review_id = ?", reviewID).
		Order("id").Offset(p.Offset()).Limit(p.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, p, apperr.Internal(err)
	}
	return comments, p, nil
}

func (s *CommentService) Get(titleID, reviewID, commentID uint) (*models.Comment, error) {
	if _, err := s.ensureReview(titleID, reviewID); err != nil {
		return nil, err
	}

	var comment models.Comment
	err := s.db.Preload("Author").
		Where("id = ? AND review_id = ?", commentID, reviewID).
		First(&comment).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("comment")
		}
		return nil, apperr.Internal(err)
	}
	return &comment, nil
}

func (s *CommentService) Create(titleID, reviewID, authorID uint, req *dto.CommentRequest) (*models.Comment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.ensureReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     req.Text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("create comment: %w", err))
	}

	if err := s.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &comment, nil
}

func (s *CommentService) Update(comment *models.Comment, req *dto.CommentUpdateRequest) (*models.Comment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Text != nil {
		if err := s.db.Model(comment).Update("text", *req.Text).Error; err != nil {
			return nil, apperr.Internal(fmt.Errorf("update comment: %w", err))
		}
	}
	return comment, nil
}

func (s *CommentService) Delete(comment *models.Comment) error {
	if err := s.db.Delete(comment).Error; err != nil {
		return apperr.Internal(fmt.Errorf("delete comment: %w", err))
	}
	return nil
}
