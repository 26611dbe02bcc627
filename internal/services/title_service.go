package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/metrics"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/validation"
)

type TitleService struct {
	db       *gorm.DB
	pageSize int
}

func NewTitleService(db *gorm.DB, pageSize int) *TitleService {
	return &TitleService{db: db, pageSize: pageSize}
}

// List returns one page of titles with category and genres embedded and the
// rating refreshed (write-on-read).
func (s *TitleService) List(filter dto.TitleFilter, page int) ([]models.Title, Page, error) {
	p := Page{Page: page, Limit: s.pageSize}

	query := s.db.Model(&models.Title{})
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	if filter.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}

	// Count on a cloned session: Distinct("titles.id") would otherwise stick
	// to the shared statement and the Find below would fetch ids only.
	if err := query.Session(&gorm.Session{}).Distinct("titles.id").Count(&p.Total).Error; err != nil {
		return nil, p, apperr.Internal(err)
	}

	var titles []models.Title
	err := query.Distinct().
		Preload("Category").Preload("Genres").
		Order("titles.id").Offset(p.Offset()).Limit(p.Limit).
		Find(&titles).Error
	if err != nil {
		return nil, p, apperr.Internal(err)
	}

	for i := range titles {
		if err := s.refreshRating(&titles[i]); err != nil {
			return nil, p, err
		}
	}
	return titles, p, nil
}

func (s *TitleService) Get(id uint) (*models.Title, error) {
	var title models.Title
	err := s.db.Preload("Category").Preload("Genres").First(&title, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("title")
		}
		return nil, apperr.Internal(err)
	}
	if err := s.refreshRating(&title); err != nil {
		return nil, err
	}
	return &title, nil
}

func (s *TitleService) Create(req *dto.TitleRequest) (*models.Title, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	title := models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != nil {
		category, err := s.categoryBySlug(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.genresBySlugs(req.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.db.Create(&title).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("create title: %w", err))
	}
	return &title, nil
}

func (s *TitleService) Update(id uint, req *dto.TitleUpdateRequest) (*models.Title, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	title, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		category, err := s.categoryBySlug(*req.Category)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = category.ID
		title.Category = category
	}

	if len(updates) > 0 {
		if err := s.db.Model(title).Updates(updates).Error; err != nil {
			return nil, apperr.Internal(fmt.Errorf("update title: %w", err))
		}
	}

	if req.Genre != nil {
		genres, err := s.genresBySlugs(req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.db.Model(title).Association("Genres").Replace(genres); err != nil {
			return nil, apperr.Internal(fmt.Errorf("replace genres: %w", err))
		}
		title.Genres = genres
	}

	return title, nil
}

// Delete removes a title; its reviews and their comments cascade away.
func (s *TitleService) Delete(id uint) error {
	var title models.Title
	if err := s.db.First(&title, id).Error; err != nil {
		if isNotFound(err) {
			return apperr.NotFound("title")
		}
		return apperr.Internal(err)
	}
	if err := s.db.Select("Genres").Delete(&title).Error; err != nil {
		return apperr.Internal(fmt.Errorf("delete title: %w", err))
	}
	return nil
}

func (s *TitleService) categoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("category")
		}
		return nil, apperr.Internal(err)
	}
	return &category, nil
}

func (s *TitleService) genresBySlugs(slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var genres []models.Genre
	if err := s.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if len(genres) != len(slugs) {
		return nil, apperr.NotFound("genre")
	}
	return genres, nil
}

// refreshRating recomputes the mean review score and persists it when it
// changed. The single-column UPDATE keeps the write atomic per title; the
// call site is the only place that knows about the read-time trigger, so
// moving this to the review write path later is a local change.
func (s *TitleService) refreshRating(title *models.Title) error {
	var avg *float64
	err := s.db.Model(&models.Review{}).
		Where("title_id = ?", title.ID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return apperr.Internal(fmt.Errorf("aggregate rating: %w", err))
	}

	rating := RatingFromAverage(avg)
	if ratingEqual(title.Rating, rating) {
		return nil
	}

	if err := s.db.Model(title).Update("rating", rating).Error; err != nil {
		return apperr.Internal(fmt.Errorf("persist rating: %w", err))
	}
	title.Rating = rating
	metrics.RatingsRecomputed.Inc()
	return nil
}

// RatingFromAverage rounds a mean score to the nearest integer, ties round
// half up. Nil in (no reviews) means nil out.
func RatingFromAverage(avg *float64) *int {
	if avg == nil {
		return nil
	}
	r := int(math.Floor(*avg + 0.5))
	return &r
}

func ratingEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
