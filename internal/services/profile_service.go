package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
)

// profileService handles sign-up, sign-in and profile business logic.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// CreateProfile registers a new user. The very first profile becomes the
// administrator; later ones are editors.
func (s *profileService) CreateProfile(email, password, name string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var total, taken int64
	if err := s.db.Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Profile{}).Where("email = ?", email).Count(&taken).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if taken > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	role := models.RoleEditor
	if total == 0 {
		role = models.RoleAdmin
	}
	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	profile := &models.Profile{
		Email:    email,
		Password: string(hashedPassword),
		Name:     strings.TrimSpace(name),
		Role:     role,
	}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profile, nil
}

// GetProfileByEmail retrieves a profile by email
func (s *profileService) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// GetProfileByID retrieves a profile by ID
func (s *profileService) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *profileService) VerifyPassword(profile *models.Profile, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password))
	return err == nil
}

// AttemptLogin checks the credentials and stamps the login time. Unknown
// emails and wrong passwords yield the same error.
func (s *profileService) AttemptLogin(email, password string) (*models.Profile, error) {
	profile, err := s.GetProfileByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.VerifyPassword(profile, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(profile).Update("last_login_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	profile.LastLoginAt = &now
	return profile, nil
}

// StoreRefreshTokenHash replaces the profile's refresh token hash. An empty
// hash revokes the current refresh token.
func (s *profileService) StoreRefreshTokenHash(profileID, tokenHash string) error {
	result := s.db.Model(&models.Profile{}).Where("id = ?", profileID).Update("refresh_token_hash", tokenHash)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash.
func (s *profileService) GetRefreshTokenHash(profileID string) (string, error) {
	profile, err := s.GetProfileByID(profileID)
	if err != nil {
		return "", err
	}
	return profile.RefreshTokenHash, nil
}

// UpdateProfile changes the display fields of a profile. An empty avatar URL
// clears it.
func (s *profileService) UpdateProfile(profileID string, fields ProfileUpdateFields) (*models.Profile, error) {
	profile, err := s.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name cannot be empty")
		}
		updates["name"] = name
	}
	if fields.AvatarURL != nil {
		if *fields.AvatarURL == "" {
			updates["avatar_url"] = nil
		} else {
			updates["avatar_url"] = *fields.AvatarURL
		}
	}
	if len(updates) == 0 {
		return profile, nil
	}

	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetProfileByID(profileID)
}

// UpdateRole changes a profile's role.
func (s *profileService) UpdateRole(profileID string, role models.Role) (*models.Profile, error) {
	result := s.db.Model(&models.Profile{}).Where("id = ?", profileID).Update("role", role)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrProfileNotFound
	}
	return s.GetProfileByID(profileID)
}

// ListProfiles returns all profiles ordered by name.
func (s *profileService) ListProfiles(page pagination.PageRequest) (*pagination.PageResponse[models.Profile], error) {
	result, err := pagination.Find[models.Profile](s.db.Model(&models.Profile{}), page, "name ASC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}
