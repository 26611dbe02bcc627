package services

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/validation"
)

// CatalogService serves categories and genres: reference data that changes
// rarely, so list pages are cached and the cache is flushed on any write.
type CatalogService struct {
	db       *gorm.DB
	cache    *gocache.Cache
	pageSize int
}

func NewCatalogService(db *gorm.DB, pageSize int) *CatalogService {
	return &CatalogService{
		db:       db,
		cache:    gocache.New(5*time.Minute, 10*time.Minute),
		pageSize: pageSize,
	}
}

type catalogPage[T any] struct {
	Items []T
	Page  Page
}

func (s *CatalogService) ListCategories(search string, page int) ([]models.Category, Page, error) {
	return listCatalog[models.Category](s, "categories", search, page)
}

func (s *CatalogService) ListGenres(search string, page int) ([]models.Genre, Page, error) {
	return listCatalog[models.Genre](s, "genres", search, page)
}

func listCatalog[T any](s *CatalogService, kind, search string, page int) ([]T, Page, error) {
	key := fmt.Sprintf("%s|%s|%d", kind, search, page)
	if cached, ok := s.cache.Get(key); ok {
		entry := cached.(catalogPage[T])
		return entry.Items, entry.Page, nil
	}

	p := Page{Page: page, Limit: s.pageSize}

	var model T
	query := s.db.Model(&model)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, p, apperr.Internal(err)
	}

	var items []T
	if err := query.Order("id").Offset(p.Offset()).Limit(p.Limit).Find(&items).Error; err != nil {
		return nil, p, apperr.Internal(err)
	}

	s.cache.Set(key, catalogPage[T]{Items: items, Page: p}, gocache.DefaultExpiration)
	return items, p, nil
}

func (s *CatalogService) CreateCategory(req *dto.CatalogRequest) (*models.Category, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	category := models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.db.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Validation("category name or slug already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("create category: %w", err))
	}
	s.cache.Flush()
	return &category, nil
}

func (s *CatalogService) CreateGenre(req *dto.CatalogRequest) (*models.Genre, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	genre := models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.db.Create(&genre).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Validation("genre name or slug already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("create genre: %w", err))
	}
	s.cache.Flush()
	return &genre, nil
}

// DeleteCategory removes a category by slug. Titles referencing it keep
// existing with a null category (FK SET NULL).
func (s *CatalogService) DeleteCategory(slug string) error {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if isNotFound(err) {
			return apperr.NotFound("category")
		}
		return apperr.Internal(err)
	}
	if err := s.db.Delete(&category).Error; err != nil {
		return apperr.Internal(fmt.Errorf("delete category: %w", err))
	}
	s.cache.Flush()
	return nil
}

func (s *CatalogService) DeleteGenre(slug string) error {
	var genre models.Genre
	if err := s.db.Where("slug = ?", slug).First(&genre).Error; err != nil {
		if isNotFound(err) {
			return apperr.NotFound("genre")
		}
		return apperr.Internal(err)
	}
	if err := s.db.Delete(&genre).Error; err != nil {
		return apperr.Internal(fmt.Errorf("delete genre: %w", err))
	}
	s.cache.Flush()
	return nil
}
