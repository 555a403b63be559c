package social

import (
	"context"
	"errors"

	"autovad-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCarNotFound  = errors.New("Car not found")
	ErrAlreadyLiked = errors.New("Already liked")
	ErrNotLiked     = errors.New("Not liked")
)

// Service covers the social counters on listings: likes and views.
// Comments live in a separate product surface and only a counter is
// tracked here.
type Service struct {
	DB *gorm.DB
}

// IncrementViews bumps views_count by one.
func (s *Service) IncrementViews(ctx context.Context, carID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&domain.Car{}).
		Where("id = ?", carID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCarNotFound
	}
	return nil
}

// Like records user's like and bumps likes_count, atomically.
func (s *Service) Like(ctx context.Context, carID, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var car domain.Car
		if err := tx.Where("id = ?", carID).First(&car).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return err
		}
		var existing domain.Like
		err := tx.Where("car_id = ? AND user_id = ?", carID, userID).First(&existing).Error
		if err == nil {
			return ErrAlreadyLiked
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&domain.Like{CarID: carID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Car{}).Where("id = ?", carID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
}

// Unlike removes user's like and decrements likes_count, floored at zero.
func (s *Service) Unlike(ctx context.Context, carID, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("car_id = ? AND user_id = ?", carID, userID).Delete(&domain.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotLiked
		}
		return tx.Model(&domain.Car{}).
			Where("id = ? AND likes_count > 0", carID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
	})
}
