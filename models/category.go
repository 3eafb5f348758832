package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/shoptrack_backend/config"
)

// ProductCategory is master data owned by the admin screens; the engine only
// reads it for low-stock filtering and name resolution.
type ProductCategory struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255;default:null" json:"description"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const categoryNameMapRedisKey = "categoryNameMap"

// getCategoryNameMap returns id => name for all categories, redis-cached.
// Category names change rarely enough that a short TTL is safe.
func getCategoryNameMap(ctx context.Context) (map[int]string, error) {
	nameMap := make(map[int]string)
	exists, err := config.GetRedisObject(categoryNameMapRedisKey, &nameMap)
	if err != nil {
		return nil, err
	}
	if exists {
		return nameMap, nil
	}

	db := config.GetDB()
	var categories []*ProductCategory
	if err := db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	for _, c := range categories {
		nameMap[c.ID] = c.Name
	}
	if err := config.SetRedisObject(categoryNameMapRedisKey, &nameMap, 5*time.Minute); err != nil {
		return nil, err
	}
	return nameMap, nil
}
