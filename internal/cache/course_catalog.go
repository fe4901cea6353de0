// Package cache holds Redis-backed read-through caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
)

// CourseCatalog caches the mapped course list under a single key.
type CourseCatalog struct {
	rdb redis.Cmdable
	key string
	ttl time.Duration
}

// NewCourseCatalog creates a CourseCatalog. ttl must be positive; see
// config.Config.CatalogCacheEnabled.
func NewCourseCatalog(rdb redis.Cmdable, ttl time.Duration) *CourseCatalog {
	return &CourseCatalog{
		rdb: rdb,
		key: config.CacheKey.CourseCatalogKey(),
		ttl: ttl,
	}
}

// Get returns the cached catalog. ok is false on a miss.
func (c *CourseCatalog) Get(ctx context.Context) ([]model.CourseDTO, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get course catalog: %w", err)
	}

	var courses []model.CourseDTO
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, false, fmt.Errorf("decode course catalog: %w", err)
	}
	if courses == nil {
		courses = []model.CourseDTO{}
	}
	return courses, true, nil
}

// Set stores the catalog.
func (c *CourseCatalog) Set(ctx context.Context, courses []model.CourseDTO) error {
	raw, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("encode course catalog: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set course catalog: %w", err)
	}
	return nil
}

// Invalidate drops the cached catalog.
func (c *CourseCatalog) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("invalidate course catalog: %w", err)
	}
	return nil
}
