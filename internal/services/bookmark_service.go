package services

import (
	"strings"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrBookmarkNotFound = apperr.NotFound("Bookmark not found")

type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

func (s *BookmarkService) Create(req *dto.CreateBookmarkRequest) (*models.Bookmark, error) {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return nil, apperr.Validation("name is required")
	case strings.TrimSpace(req.PhoneNumber) == "":
		return nil, apperr.Validation("phone_number is required")
	case strings.TrimSpace(req.ContactType) == "":
		return nil, apperr.Validation("contact_type is required")
	}

	bookmark := models.Bookmark{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		ContactType: req.ContactType,
		PhotoURL:    req.PhotoURL,
		AvatarEmoji: req.AvatarEmoji,
		IsActive:    true,
	}
	if err := s.db.Create(&bookmark).Error; err != nil {
		return nil, wrapInternal("create bookmark", err)
	}
	return &bookmark, nil
}

func (s *BookmarkService) List(isActive *bool) ([]models.Bookmark, error) {
	query := s.db.Model(&models.Bookmark{})
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var bookmarks []models.Bookmark
	if err := query.Order("id").Find(&bookmarks).Error; err != nil {
		return nil, wrapInternal("list bookmarks", err)
	}
	return bookmarks, nil
}

func (s *BookmarkService) Get(id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	if err := findByID(s.db, &bookmark, id, ErrBookmarkNotFound); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (s *BookmarkService) Update(id uint, req *dto.UpdateBookmarkRequest) (*models.Bookmark, error) {
	bookmark, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	u := updates{}
	u.setString("name", req.Name)
	u.setString("phone_number", req.PhoneNumber)
	u.setString("contact_type", req.ContactType)
	u.setString("photo_url", req.PhotoURL)
	u.setString("avatar_emoji", req.AvatarEmoji)
	u.setBool("is_active", req.IsActive)
	if err := apply(s.db, bookmark, u); err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *BookmarkService) Delete(id uint) error {
	bookmark, err := s.Get(id)
	if err != nil {
		return err
	}
	return wrapInternal("delete bookmark", s.db.Model(bookmark).Update("is_active", false).Error)
}
