package repository

import (
	"context"
	"fmt"

	"github.com/keylian15/le-garde-manger/internal/model"
	"gorm.io/gorm"
)

const foodListLimit = 200

// FoodStore owns the foods table.
type FoodStore interface {
	List(ctx context.Context, query, foodType string) ([]model.Food, error)
	Create(ctx context.Context, food *model.Food) error
	Update(ctx context.Context, food *model.Food) error
	Delete(ctx context.Context, id int64) error
}

type foodStore struct {
	db *gorm.DB
}

// NewFoodStore creates a gorm-backed FoodStore.
func NewFoodStore(db *gorm.DB) FoodStore {
	return &foodStore{db: db}
}

func (s *foodStore) List(ctx context.Context, query, foodType string) ([]model.Food, error) {
	tx := s.db.WithContext(ctx).Model(&model.Food{})

	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	if foodType != "" {
		tx = tx.Where("type = ?", foodType)
	}

	var foods []model.Food
	err := tx.Order("name").Limit(foodListLimit).Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	return foods, nil
}

func (s *foodStore) Create(ctx context.Context, food *model.Food) error {
	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return fmt.Errorf("failed to create food: %w", err)
	}

	return nil
}

func (s *foodStore) Update(ctx context.Context, food *model.Food) error {
	r := s.db.WithContext(ctx).
		Model(&model.Food{}).
		Where("id = ?", food.ID).
		Updates(map[string]any{
			"name":        food.Name,
			"description": food.Description,
			"calories":    food.Calories,
			"type":        food.Type,
		})
	if r.Error != nil {
		return fmt.Errorf("failed to update food %d: %w", food.ID, r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *foodStore) Delete(ctx context.Context, id int64) error {
	r := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Food{})
	if r.Error != nil {
		return fmt.Errorf("failed to delete food %d: %w", id, r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
