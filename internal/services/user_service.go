package services

import (
	"strings"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = apperr.NotFound("User not found")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(req *dto.CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	user := models.User{
		Name:        req.Name,
		PhotoURL:    req.PhotoURL,
		AvatarEmoji: req.AvatarEmoji,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, wrapInternal("create user", err)
	}
	return &user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, wrapInternal("list users", err)
	}
	return users, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := findByID(s.db, &user, id, ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(id uint, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperr.Validation("name must not be empty")
	}

	u := updates{}
	u.setString("name", req.Name)
	u.setString("photo_url", req.PhotoURL)
	u.setString("avatar_emoji", req.AvatarEmoji)
	if err := apply(s.db, user, u); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPhoto records the URL of an uploaded photo.
func (s *UserService) SetPhoto(id uint, url string) (*models.User, error) {
	return s.Update(id, &dto.UpdateUserRequest{PhotoURL: &url})
}

// Delete removes the user and every row that references it in one
// transaction.
func (s *UserService) Delete(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		medicineIDs := tx.Model(&models.Medicine{}).Select("id").Where("user_id = ?", id)
		logIDs := tx.Model(&models.MedicineLog{}).Select("id").Where("user_id = ? OR medicine_id IN (?)", id, medicineIDs)

		if err := tx.Where("user_id = ?", id).Delete(&models.InsulinLog{}).Error; err != nil {
			return err
		}
		// Readings of other users can still point at this user's medicine logs.
		err := tx.Model(&models.InsulinLog{}).
			Where("medicine_log_id IN (?)", logIDs).
			Update("medicine_log_id", nil).Error
		if err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR medicine_id IN (?)", id, medicineIDs).Delete(&models.MedicineLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("medicine_id IN (?)", medicineIDs).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Medicine{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	return wrapInternal("delete user", err)
}
