package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
)

const (
	defaultTopCount = 10
	maxTopCount     = 100
)

// GetMostViewedUseCase строит рейтинг объектов по числу просмотров.
// При равенстве счетчиков выше стоит объект с более свежим просмотром.
type GetMostViewedUseCase struct {
	views port.ViewRepositoryPort
}

func NewGetMostViewedUseCase(views port.ViewRepositoryPort) *GetMostViewedUseCase {
	return &GetMostViewedUseCase{views: views}
}

func (uc *GetMostViewedUseCase) Execute(ctx context.Context, topCount int, from, to *time.Time) ([]domain.MostViewedProperty, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "GetMostViewed",
		"top_count": topCount,
	})

	if topCount < 1 {
		topCount = defaultTopCount
	}
	if topCount > maxTopCount {
		topCount = maxTopCount
	}

	rows, err := uc.views.AggregateByProperty(ctx, from, to)
	if err != nil {
		ucLogger.Error("Failed to aggregate property views", err, nil)
		return nil, fmt.Errorf("failed to aggregate property views: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ViewsCount != rows[j].ViewsCount {
			return rows[i].ViewsCount > rows[j].ViewsCount
		}
		return rows[i].LastViewedAt.After(rows[j].LastViewedAt)
	})

	if len(rows) > topCount {
		rows = rows[:topCount]
	}

	ucLogger.Info("Most viewed ranking built", port.Fields{"rows": len(rows)})
	return rows, nil
}
