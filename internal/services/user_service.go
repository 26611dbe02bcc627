package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/dto"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
	"github.com/oguzhanyilmaz/reviewdb/internal/validation"
)

type UserService struct {
	db       *gorm.DB
	pageSize int
}

func NewUserService(db *gorm.DB, pageSize int) *UserService {
	return &UserService{db: db, pageSize: pageSize}
}

func (s *UserService) List(page int) ([]models.User, Page, error) {
	p := Page{Page: page, Limit: s.pageSize}

	if err := s.db.Model(&models.User{}).Count(&p.Total).Error; err != nil {
		return nil, p, apperr.Internal(err)
	}

	var users []models.User
	err := s.db.Order("id").Offset(p.Offset()).Limit(p.Limit).Find(&users).Error
	if err != nil {
		return nil, p, apperr.Internal(err)
	}
	return users, p, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

func (s *UserService) Create(req *dto.UserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	credential, err := randomCredential()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		Username:   req.Username,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Bio:        req.Bio,
		Role:       role,
		Credential: credential,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Validation("username or email already taken")
		}
		return nil, apperr.Internal(fmt.Errorf("create user: %w", err))
	}
	return &user, nil
}

// Update applies a partial update. Used both by the admin surface and by
// /users/me; the latter never passes a Role change.
func (s *UserService) Update(user *models.User, req *dto.UserUpdateRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Validation("username or email already taken")
		}
		return nil, apperr.Internal(fmt.Errorf("update user: %w", err))
	}
	return user, nil
}

// Delete removes the user; their reviews and comments go with them via the
// FK cascade.
func (s *UserService) Delete(username string) error {
	user, err := s.GetByUsername(username)
	if err != nil {
		return err
	}
	if err := s.db.Delete(user).Error; err != nil {
		return apperr.Internal(fmt.Errorf("delete user: %w", err))
	}
	return nil
}
