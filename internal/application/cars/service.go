package cars

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autovad-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrCarNotFound is returned by GetByID when no row matches.
var ErrCarNotFound = errors.New("Car not found")

// Service encapsulates listing queries against the cars store.
type Service struct {
	DB *gorm.DB
}

// ListParams is a validated page request. Search is already sanitized
// by the handler; Page and Limit are within bounds.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

// ListResult carries one page of listings plus the derived cursor state.
type ListResult struct {
	Cars       []domain.Car
	TotalCount int64
	Page       int
	Limit      int
	HasMore    bool
}

// List returns one page of active cars, newest first. A non-empty search term
// matches make OR model case-insensitively as a substring.
func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Car{}).
		Where("status = ?", domain.StatusActive)
	if p.Search != "" {
		pattern := "%" + strings.ToLower(p.Search) + "%"
		q = q.Where("LOWER(make) LIKE ? OR LOWER(model) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count cars: %w", err)
	}

	offset := (p.Page - 1) * p.Limit
	var cars []domain.Car
	if err := q.Order("created_at DESC").Offset(offset).Limit(p.Limit).Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("fetch cars: %w", err)
	}

	return &ListResult{
		Cars:       cars,
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		HasMore:    int64(offset+p.Limit) < total,
	}, nil
}

// GetByID returns a single car. The handler accepts numeric or UUID
// ids; this store keys cars by UUID, so anything else is simply not
// found rather than a driver type error.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	carID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrCarNotFound
	}
	var car domain.Car
	if err := s.DB.WithContext(ctx).Where("id = ?", carID).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}
