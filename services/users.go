package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"sitesync-backend/models"
	"sitesync-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SignupInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Bio       string `json:"bio"`
}

// ContractorProfile is the public face of a contractor.
type ContractorProfile struct {
	ContractorMatch
	Projects []models.Project `json:"projects"`
}

type UserService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{db: db, logger: logger}
}

func (s *UserService) RegisterHomeowner(ctx context.Context, input SignupInput) (*models.User, error) {
	return s.register(ctx, input, models.RoleHomeowner)
}

func (s *UserService) RegisterContractor(ctx context.Context, input SignupInput) (*models.User, error) {
	return s.register(ctx, input, models.RoleContractor)
}

func (s *UserService) register(ctx context.Context, input SignupInput, role string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := ""
	if strings.TrimSpace(input.Phone) != "" {
		if !utils.ValidatePhone(input.Phone) {
			return nil, validationError("Invalid phone number", nil)
		}
		phone = utils.NormalizePhone(input.Phone)
	}

	user := models.User{
		Email:    email,
		Password: input.Password,
		Phone:    phone,
		Role:     role,
		IsActive: true,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailRegistered
		}

		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailRegistered
			}
			return err
		}

		first, last := strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName)
		if role == models.RoleContractor {
			return tx.Create(&models.Contractor{ID: user.ID, FirstName: first, LastName: last, Bio: strings.TrimSpace(input.Bio)}).Error
		}
		return tx.Create(&models.Homeowner{ID: user.ID, FirstName: first, LastName: last}).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", role))
	return &user, nil
}

// Authenticate checks credentials and stamps the login time.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("email = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(email)), true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		s.logger.Warn("failed to record login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	user.LastLogin = &now
	return &user, nil
}

func (s *UserService) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "User not found")
		}
		return nil, err
	}
	return &user, nil
}

// ContractorProfile lists the contractor's preferences and public projects.
func (s *UserService) ContractorProfile(ctx context.Context, contractorID uuid.UUID) (*ContractorProfile, error) {
	var profile *ContractorProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureContractor(tx, contractorID); err != nil {
			return err
		}
		matches, err := describeContractors(tx, []uuid.UUID{contractorID})
		if err != nil {
			return err
		}
		projects := []models.Project{}
		if err := tx.Preload("Booking").
			Where("contractor_id = ? AND is_public = ?", contractorID, true).
			Order("completed_at DESC").
			Find(&projects).Error; err != nil {
			return err
		}
		profile = &ContractorProfile{ContractorMatch: matches[0], Projects: projects}
		return nil
	})
	return profile, err
}
