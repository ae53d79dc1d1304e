package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cocktail-bar-api/models"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func itemsInPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

func (r *GormOrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items", itemsInPosition)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TableNumber > 0 {
		query = query.Where("table_number = ?", filter.TableNumber)
	}

	var orders []models.Order
	if err := query.Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id uint) (models.Order, error) {
	return getOrder(r.db.WithContext(ctx), id)
}

func getOrder(db *gorm.DB, id uint) (models.Order, error) {
	var order models.Order
	if err := db.Preload("Items", itemsInPosition).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order, entry models.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		numberItems(order.Items)
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		entry.OrderID = order.ID
		return tx.Create(&entry).Error
	})
}

func (r *GormOrderRepository) Replace(ctx context.Context, order *models.Order, entry *models.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"table_number": order.TableNumber,
				"status":       order.Status,
				"updated_at":   time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		numberItems(order.Items)
		for i := range order.Items {
			order.Items[i].ID = 0
			order.Items[i].OrderID = order.ID
		}
		if len(order.Items) > 0 {
			if err := tx.Create(&order.Items).Error; err != nil {
				return err
			}
		}

		if entry != nil {
			entry.OrderID = order.ID
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}

		stored, err := getOrder(tx, order.ID)
		if err != nil {
			return err
		}
		*order = stored
		return nil
	})
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uint, entry models.OrderStatusHistory) (models.Order, error) {
	var updated models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getOrder(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     entry.ToStatus,
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			return err
		}

		entry.OrderID = id
		entry.FromStatus = current.Status
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		updated, err = getOrder(tx, id)
		return err
	})
	if err != nil {
		return models.Order{}, err
	}
	return updated, nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderStatusHistory{}).Error
	})
}

func (r *GormOrderRepository) History(ctx context.Context, id uint) ([]models.OrderStatusHistory, error) {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	var history []models.OrderStatusHistory
	if err := db.Where("order_id = ?", id).Order("id asc").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func numberItems(items []models.OrderItem) {
	for i := range items {
		items[i].Position = i
	}
}
