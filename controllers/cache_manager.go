package controllers

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"motogear-backend/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	CategoryListCacheKey = "categories:all"
	ProductCachePrefix   = "product:detail:"

	// DefaultCacheTTL bounds staleness if an invalidation is ever missed.
	DefaultCacheTTL = time.Hour
)

// CacheManager handles Redis caching for the category list and product
// details. Every method degrades to a miss on any Redis failure; caching is
// never allowed to fail a request.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCacheManager creates a CacheManager with the default TTL.
func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{redis: redis, ttl: DefaultCacheTTL}
}

// GetCategoryList retrieves the cached category list.
func (cm *CacheManager) GetCategoryList(ctx context.Context) ([]models.Category, bool) {
	cached, err := cm.redis.Get(ctx, CategoryListCacheKey).Result()
	if err != nil {
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal([]byte(cached), &categories); err != nil {
		zap.L().Warn("Failed to unmarshal cached category list", zap.Error(err))
		return nil, false
	}
	return categories, true
}

// SetCategoryListAsync caches the category list in the background.
func (cm *CacheManager) SetCategoryListAsync(categories []models.Category) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(categories)
		if err != nil {
			zap.L().Warn("Failed to marshal category list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, CategoryListCacheKey, data, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache category list", zap.Error(err))
		}
	}()
}

// InvalidateCategories drops the cached category list after any write.
func (cm *CacheManager) InvalidateCategories(ctx context.Context) {
	if err := cm.redis.Del(ctx, CategoryListCacheKey).Err(); err != nil {
		zap.L().Warn("Failed to invalidate category cache", zap.Error(err))
	}
}

// GetProduct retrieves a cached product detail.
func (cm *CacheManager) GetProduct(ctx context.Context, id uint) (*models.Product, bool) {
	cached, err := cm.redis.Get(ctx, productCacheKey(id)).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cached), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Uint("id", id), zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a product detail in the background.
func (cm *CacheManager) SetProductAsync(product *models.Product) {
	id := product.ID
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Uint("id", id), zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, productCacheKey(id), data, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Uint("id", id), zap.Error(err))
		}
	}()
}

// InvalidateProduct drops a cached product detail after a write.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, id uint) {
	if err := cm.redis.Del(ctx, productCacheKey(id)).Err(); err != nil {
		zap.L().Warn("Failed to invalidate product cache", zap.Uint("id", id), zap.Error(err))
	}
}

func productCacheKey(id uint) string {
	return ProductCachePrefix + strconv.FormatUint(uint64(id), 10)
}
