package controllers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/amaumene/moviemate/internal/metrics"
	"github.com/amaumene/moviemate/internal/models"
	"github.com/amaumene/moviemate/internal/validation"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ItemController owns the item lifecycle: creation defaults, progress and
// review rules, and listing queries. All state lives in the repository.
type ItemController struct {
	repo   models.Repository
	tracer trace.Tracer
	logger zerolog.Logger
	now    func() time.Time
}

// NewItemController creates a new item controller
func NewItemController(repo models.Repository, tracer trace.Tracer, logger zerolog.Logger) *ItemController {
	return &ItemController{
		repo:   repo,
		tracer: tracer,
		logger: logger.With().Str("component", "items").Logger(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Create stores a new item built from fields. Title is required; every
// other field falls back to its default.
func (c *ItemController) Create(ctx context.Context, fields models.ItemFields) (item *models.Item, err error) {
	ctx, span := c.start(ctx, "create", 0)
	defer func() { c.finish(span, "create", err) }()

	item = models.NewItem(c.now())
	fields.Apply(item)
	if err := validation.ValidateItem(item); err != nil {
		return nil, err
	}

	if err := c.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	span.SetAttributes(attribute.Int64("item.id", int64(item.ID)))

	c.logger.Info().
		Uint64("item_id", item.ID).
		Str("title", item.Title).
		Str("kind", item.Kind).
		Msg("Item created")
	return item, nil
}

// Get returns the item with the given id
func (c *ItemController) Get(ctx context.Context, id uint64) (item *models.Item, err error) {
	ctx, span := c.start(ctx, "get", id)
	defer func() { c.finish(span, "get", err) }()

	return c.repo.GetItem(ctx, id)
}

// List returns the items matching every filter of query
func (c *ItemController) List(ctx context.Context, query models.ItemQuery) (items []*models.Item, err error) {
	ctx, span := c.start(ctx, "list", 0)
	defer func() { c.finish(span, "list", err) }()

	span.SetAttributes(
		attribute.String("query.genre", query.Genre),
		attribute.String("query.platform", query.Platform),
		attribute.String("query.status", query.Status),
		attribute.String("query.kind", query.Kind),
		attribute.String("query.sort", string(query.Sort)),
	)

	items, err = c.repo.FindItems(ctx, query)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

// Update overwrites every supplied field. No cross-field rule is applied:
// status and episodes_watched may be set independently of total_episodes.
func (c *ItemController) Update(ctx context.Context, id uint64, fields models.ItemFields) (item *models.Item, err error) {
	ctx, span := c.start(ctx, "update", id)
	defer func() { c.finish(span, "update", err) }()

	item, err = c.repo.MutateItem(ctx, id, func(item *models.Item) error {
		fields.Apply(item)
		if err := validation.ValidateItem(item); err != nil {
			return err
		}
		item.UpdatedAt = c.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info().Uint64("item_id", id).Msg("Item updated")
	return item, nil
}

// Delete removes the item with the given id
func (c *ItemController) Delete(ctx context.Context, id uint64) (err error) {
	ctx, span := c.start(ctx, "delete", id)
	defer func() { c.finish(span, "delete", err) }()

	if err := c.repo.DeleteItem(ctx, id); err != nil {
		return err
	}

	c.logger.Info().Uint64("item_id", id).Msg("Item deleted")
	return nil
}

// AdvanceProgress adds delta to the watched episode count, clamping at
// zero. Once every episode of an item with a known episode count has been
// watched the item is marked completed.
func (c *ItemController) AdvanceProgress(ctx context.Context, id uint64, delta int) (item *models.Item, err error) {
	ctx, span := c.start(ctx, "progress", id)
	defer func() { c.finish(span, "progress", err) }()
	span.SetAttributes(attribute.Int("progress.delta", delta))

	item, err = c.repo.MutateItem(ctx, id, func(item *models.Item) error {
		item.EpisodesWatched = addEpisodes(item.EpisodesWatched, delta)
		if item.TotalEpisodes > 0 && item.EpisodesWatched >= item.TotalEpisodes {
			item.Status = models.StatusCompleted
		}
		item.UpdatedAt = c.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Uint64("item_id", id).
		Int("delta", delta).
		Int("episodes_watched", item.EpisodesWatched).
		Int("total_episodes", item.TotalEpisodes).
		Str("status", item.Status).
		Msg("Progress updated")
	return item, nil
}

// addEpisodes returns watched+delta clamped to [0, math.MaxInt]
func addEpisodes(watched, delta int) int {
	if delta > 0 && watched > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, watched+delta)
}

// RecordReview stores whichever of rating, review and notes were supplied
func (c *ItemController) RecordReview(ctx context.Context, id uint64, review models.ReviewFields) (item *models.Item, err error) {
	ctx, span := c.start(ctx, "review", id)
	defer func() { c.finish(span, "review", err) }()

	item, err = c.repo.MutateItem(ctx, id, func(item *models.Item) error {
		if review.Rating != nil {
			item.Rating = review.Rating
		}
		if review.Review != nil {
			item.Review = review.Review
		}
		if review.Notes != nil {
			item.Notes = review.Notes
		}
		item.UpdatedAt = c.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info().Uint64("item_id", id).Msg("Review recorded")
	return item, nil
}

// Recommend returns up to RecommendationLimit items that are not completed,
// best rated first, optionally restricted to a genre substring.
func (c *ItemController) Recommend(ctx context.Context, genre string) (items []*models.Item, err error) {
	ctx, span := c.start(ctx, "recommend", 0)
	defer func() { c.finish(span, "recommend", err) }()
	span.SetAttributes(attribute.String("query.genre", genre))

	return c.repo.FindItems(ctx, models.ItemQuery{
		Genre:         genre,
		ExcludeStatus: models.StatusCompleted,
		Sort:          models.SortRatingDesc,
		Limit:         models.RecommendationLimit,
	})
}

// Ping checks that storage is reachable
func (c *ItemController) Ping(ctx context.Context) error {
	return c.repo.Ping(ctx)
}

func (c *ItemController) start(ctx context.Context, operation string, id uint64) (context.Context, trace.Span) {
	ctx, span := c.tracer.Start(ctx, "items."+operation)
	if id != 0 {
		span.SetAttributes(attribute.Int64("item.id", int64(id)))
	}
	return ctx, span
}

// finish records the outcome of an operation on its span and in metrics
func (c *ItemController) finish(span trace.Span, operation string, err error) {
	defer span.End()

	result := metrics.ResultOK
	switch {
	case err == nil:
	case models.IsValidation(err):
		result = metrics.ResultInvalid
	case errors.Is(err, models.ErrNotFound):
		result = metrics.ResultNotFound
	default:
		result = metrics.ResultError
		c.logger.Error().Err(err).Str("operation", operation).Msg("Item operation failed")
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	metrics.ItemOperations.WithLabelValues(operation, result).Inc()
}
