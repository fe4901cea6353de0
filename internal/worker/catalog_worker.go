package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/angelina-scw/course-enroll-backend-project/internal/model"
)

// CatalogSource rebuilds the cached course catalog.
type CatalogSource interface {
	InvalidateCatalog(ctx context.Context) error
	ListCourses(ctx context.Context) ([]model.CourseDTO, error)
}

// CatalogWorker keeps the course catalog cache warm so list requests
// rarely fall through to the database.
type CatalogWorker struct {
	source   CatalogSource
	interval time.Duration
	log      zerolog.Logger
}

func NewCatalogWorker(source CatalogSource, interval time.Duration, log zerolog.Logger) *CatalogWorker {
	return &CatalogWorker{
		source:   source,
		interval: interval,
		log:      log.With().Str("component", "catalog_worker").Logger(),
	}
}

// Start warms the cache immediately, then every interval until ctx is done.
func (w *CatalogWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("CatalogWorker started")
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("CatalogWorker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CatalogWorker) refresh(ctx context.Context) {
	if err := w.source.InvalidateCatalog(ctx); err != nil {
		if ctx.Err() == nil {
			w.log.Warn().Err(err).Msg("Catalog invalidation failed")
		}
		return
	}
	courses, err := w.source.ListCourses(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Catalog refresh failed")
		}
		return
	}
	w.log.Debug().Int("courses", len(courses)).Msg("Catalog refreshed")
}
