package services

import (
	"strings"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrMedicineNotFound = apperr.NotFound("Medicine not found")

type MedicineFilter struct {
	UserID   *uint
	IsActive *bool
}

type MedicineService struct {
	db *gorm.DB
}

func NewMedicineService(db *gorm.DB) *MedicineService {
	return &MedicineService{db: db}
}

func (s *MedicineService) Create(req *dto.CreateMedicineRequest) (*models.Medicine, error) {
	if req.UserID == 0 {
		return nil, apperr.Validation("user_id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("name is required")
	}
	if !req.Type.Valid() {
		return nil, apperr.Validationf("type must be one of tablet, injection, insulin; got %q", req.Type)
	}
	if err := ensureExists(s.db, &models.User{}, req.UserID, ErrUserNotFound); err != nil {
		return nil, err
	}

	medicine := models.Medicine{
		UserID:       req.UserID,
		Name:         req.Name,
		Type:         req.Type,
		Dosage:       req.Dosage,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		IsActive:     true,
	}
	if err := s.db.Create(&medicine).Error; err != nil {
		return nil, wrapInternal("create medicine", err)
	}
	return &medicine, nil
}

func (s *MedicineService) List(filter MedicineFilter) ([]models.Medicine, error) {
	query := s.db.Model(&models.Medicine{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var medicines []models.Medicine
	if err := query.Order("id").Find(&medicines).Error; err != nil {
		return nil, wrapInternal("list medicines", err)
	}
	return medicines, nil
}

// Get returns the medicine whether or not it is still active.
func (s *MedicineService) Get(id uint) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := findByID(s.db, &medicine, id, ErrMedicineNotFound); err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (s *MedicineService) Update(id uint, req *dto.UpdateMedicineRequest) (*models.Medicine, error) {
	medicine, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperr.Validation("name must not be empty")
	}

	u := updates{}
	u.setString("name", req.Name)
	u.setString("dosage", req.Dosage)
	u.setString("instructions", req.Instructions)
	u.setString("image_url", req.ImageURL)
	u.setBool("is_active", req.IsActive)
	if err := apply(s.db, medicine, u); err != nil {
		return nil, err
	}
	return medicine, nil
}

func (s *MedicineService) SetImage(id uint, url string) (*models.Medicine, error) {
	return s.Update(id, &dto.UpdateMedicineRequest{ImageURL: &url})
}

// Delete deactivates the medicine. The row and its reminders stay.
func (s *MedicineService) Delete(id uint) error {
	medicine, err := s.Get(id)
	if err != nil {
		return err
	}
	return wrapInternal("delete medicine", s.db.Model(medicine).Update("is_active", false).Error)
}
