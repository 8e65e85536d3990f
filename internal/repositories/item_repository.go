package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lostfound_backend/internal/models"
)

var ErrItemNotFound = errors.New("item not found")

type ItemRepository interface {
	Create(item *models.Item) error
	FindByID(id string) (*models.Item, error)
	ListByType(itemType models.ItemType) ([]models.Item, error)
	Save(item *models.Item) error
	Delete(id string) error
}

type ItemRepositoryImpl struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &ItemRepositoryImpl{db: db}
}

func (r *ItemRepositoryImpl) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

func (r *ItemRepositoryImpl) FindByID(id string) (*models.Item, error) {
	var item models.Item
	err := r.db.Preload("CreatedBy").First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepositoryImpl) ListByType(itemType models.ItemType) ([]models.Item, error) {
	var items []models.Item
	err := r.db.Preload("CreatedBy").
		Where("type = ?", itemType).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *ItemRepositoryImpl) Save(item *models.Item) error {
	return r.db.Save(item).Error
}

func (r *ItemRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
