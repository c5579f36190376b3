// Package service contains the application services: the per-kind domain
// coordinator, search with generation fallback, admin auth, and comparison.
package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"github.com/globaldefense/index-server/internal/id"
	"github.com/globaldefense/index-server/internal/realtime"
	"github.com/globaldefense/index-server/internal/util"
	"github.com/globaldefense/index-server/internal/validation"
)

// DomainService coordinates one kind's schema registry and entity list.
// The app runs exactly two instances (nations, aircraft) over one shared
// syncer; they never touch each other's collections.
type DomainService struct {
	kind      domain.Kind
	syncer    *realtime.Syncer
	validator *validation.Validator
	logger    *slog.Logger
}

// NewDomainService creates the coordinator for one kind.
func NewDomainService(kind domain.Kind, syncer *realtime.Syncer, validator *validation.Validator, logger *slog.Logger) *DomainService {
	return &DomainService{
		kind:      kind,
		syncer:    syncer,
		validator: validator,
		logger:    logger.With(slog.String("kind", string(kind))),
	}
}

// Kind returns the kind this coordinator owns.
func (s *DomainService) Kind() domain.Kind {
	return s.kind
}

// collection loads this kind's slice of the dataset. A missing document reads
// as an empty collection so admin mutations work before first seed.
func (s *DomainService) collection(ctx context.Context) (domain.Collection, error) {
	ds, err := s.syncer.Load(ctx)
	if err != nil {
		return domain.Collection{}, err
	}
	if ds == nil {
		return domain.Collection{
			Entities:   []domain.Entity{},
			Stats:      []domain.StatDefinition{},
			Categories: []string{},
		}, nil
	}
	return ds.Collection(s.kind), nil
}

// Entities returns the entity list sorted by rank.
func (s *DomainService) Entities(ctx context.Context) ([]domain.Entity, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	entities := col.Entities
	slices.SortStableFunc(entities, func(a, b domain.Entity) int {
		return a.Rank - b.Rank
	})
	return entities, nil
}

// Entity returns one entity by id.
func (s *DomainService) Entity(ctx context.Context, entityID string) (*domain.Entity, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	for i := range col.Entities {
		if col.Entities[i].ID == entityID {
			return &col.Entities[i], nil
		}
	}
	return nil, domainerrors.NotFoundf("entity %q not found", entityID)
}

// Stats returns the stat definitions in insertion order.
func (s *DomainService) Stats(ctx context.Context) ([]domain.StatDefinition, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	return col.Stats, nil
}

// Categories returns the category tags in insertion order.
func (s *DomainService) Categories(ctx context.Context) ([]string, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	return col.Categories, nil
}

// NewEntityTemplate builds a fresh entity for the admin "add new" path with
// every currently defined stat seeded to its format's starting value.
func (s *DomainService) NewEntityTemplate(ctx context.Context) (*domain.Entity, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	entityID, err := id.Generate("new")
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate entity id")
	}

	template := &domain.Entity{
		ID:          entityID,
		Score:       50,
		Rank:        len(col.Entities) + 1,
		Description: "Description...",
		Stats:       domain.SeedStats(col.Stats),
	}
	if s.kind == domain.KindAircraft {
		template.Name = "New Aircraft"
		template.Origin = "Unknown"
	} else {
		template.Name = "New Nation"
		template.FlagCode = "un"
	}
	return template, nil
}

// UpsertRequest is a wholesale entity replacement.
type UpsertRequest struct {
	Name        string             `json:"name" validate:"required,min=1,max=200"`
	FlagCode    string             `json:"flagCode,omitempty" validate:"omitempty,len=2"`
	Origin      string             `json:"origin,omitempty" validate:"omitempty,max=100"`
	Score       float64            `json:"score" validate:"gte=0"`
	Description string             `json:"description"`
	Stats       map[string]float64 `json:"stats"`
	IsGenerated bool               `json:"isGenerated,omitempty"`
}

// UpsertEntity replaces the entity with the given id wholesale, or appends it
// when absent, then reranks the whole list before anyone can observe it.
func (s *DomainService) UpsertEntity(ctx context.Context, entityID string, req UpsertRequest) (*domain.Entity, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	entity := domain.Entity{
		ID:          entityID,
		Name:        req.Name,
		FlagCode:    req.FlagCode,
		Origin:      req.Origin,
		Score:       req.Score,
		Description: req.Description,
		Stats:       req.Stats,
		IsGenerated: req.IsGenerated,
	}
	if entity.Stats == nil {
		entity.Stats = map[string]float64{}
	}

	return s.upsert(ctx, entity)
}

// upsert inserts or replaces without request validation; the search flow uses
// it to admit validated candidates (duplicate ids overwrite, last write wins).
func (s *DomainService) upsert(ctx context.Context, entity domain.Entity) (*domain.Entity, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	entities := col.Entities
	idx := slices.IndexFunc(entities, func(e domain.Entity) bool { return e.ID == entity.ID })
	if idx >= 0 {
		entities[idx] = entity
	} else {
		entities = append(entities, entity)
	}

	ranked := domain.Rerank(entities)

	saved, err := s.syncer.Save(ctx, domain.EntitiesPatch(s.kind, ranked))
	if err != nil {
		return nil, err
	}

	s.logger.Info("entity upserted", "entity_id", entity.ID, "score", entity.Score)

	result := saved.Collection(s.kind)
	for i := range result.Entities {
		if result.Entities[i].ID == entity.ID {
			return &result.Entities[i], nil
		}
	}
	return nil, domainerrors.Internal("upserted entity missing from merged document")
}

// DeleteEntity removes an entity and reranks. Deleting an absent id is a
// no-op, never an error.
func (s *DomainService) DeleteEntity(ctx context.Context, entityID string) error {
	col, err := s.collection(ctx)
	if err != nil {
		return err
	}

	entities := slices.DeleteFunc(col.Entities, func(e domain.Entity) bool {
		return e.ID == entityID
	})
	if len(entities) == len(col.Entities) {
		return nil
	}

	ranked := domain.Rerank(entities)
	if _, err := s.syncer.Save(ctx, domain.EntitiesPatch(s.kind, ranked)); err != nil {
		return err
	}

	s.logger.Info("entity deleted", "entity_id", entityID)
	return nil
}

// AddStatRequest registers a new stat definition. ID defaults to a slug
// derived from the label.
type AddStatRequest struct {
	ID       string `json:"id,omitempty" validate:"omitempty,max=100"`
	Label    string `json:"label" validate:"required,min=1,max=100"`
	Category string `json:"category" validate:"max=100"`
	Format   string `json:"format" validate:"omitempty,oneof=number currency slider"`
}

// AddStat registers a stat definition and backfills every entity with the
// format's seed value. A colliding id fails with DUPLICATE_ID.
func (s *DomainService) AddStat(ctx context.Context, req AddStatRequest) (*domain.StatDefinition, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	statID := strings.TrimSpace(req.ID)
	if statID == "" {
		statID = util.StatSlug(req.Label)
	}
	if statID == "" {
		return nil, domainerrors.Validation("stat id cannot be derived from label")
	}

	format := domain.StatFormat(req.Format)
	if format == "" {
		format = domain.FormatNumber
	}

	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	if slices.ContainsFunc(col.Stats, func(d domain.StatDefinition) bool { return d.ID == statID }) {
		return nil, domainerrors.DuplicateIDf("stat %q is already defined", statID)
	}

	def := domain.StatDefinition{
		ID:       statID,
		Label:    req.Label,
		Category: req.Category,
		Format:   format,
	}
	defs := append(col.Stats, def)

	// Backfill so the new stat is immediately editable on every record.
	entities := col.Entities
	seed := format.SeedValue()
	for i := range entities {
		if entities[i].Stats == nil {
			entities[i].Stats = map[string]float64{}
		}
		entities[i].Stats[statID] = seed
	}

	patch := domain.StatsPatch(s.kind, defs)
	merge(&patch, domain.EntitiesPatch(s.kind, domain.Rerank(entities)))

	if _, err := s.syncer.Save(ctx, patch); err != nil {
		return nil, err
	}

	s.logger.Info("stat added", "stat_id", statID, "format", string(format))
	return &def, nil
}

// DeleteStat removes a stat definition and cascade-strips its id from every
// entity in the same save. Deleting an absent id is a no-op.
func (s *DomainService) DeleteStat(ctx context.Context, statID string) error {
	col, err := s.collection(ctx)
	if err != nil {
		return err
	}

	defs := slices.DeleteFunc(col.Stats, func(d domain.StatDefinition) bool {
		return d.ID == statID
	})
	if len(defs) == len(col.Stats) {
		return nil
	}

	stripped := domain.StripStat(col.Entities, statID)

	patch := domain.StatsPatch(s.kind, defs)
	merge(&patch, domain.EntitiesPatch(s.kind, domain.Rerank(stripped)))

	if _, err := s.syncer.Save(ctx, patch); err != nil {
		return err
	}

	s.logger.Info("stat deleted", "stat_id", statID)
	return nil
}

// AddCategory appends a category tag. Blank or duplicate names are a silent
// no-op.
func (s *DomainService) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	col, err := s.collection(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(col.Categories, name) {
		return nil
	}

	cats := append(col.Categories, name)
	if _, err := s.syncer.Save(ctx, domain.CategoriesPatch(s.kind, cats)); err != nil {
		return err
	}

	s.logger.Info("category added", "category", name)
	return nil
}

// DeleteCategory removes a category tag. Stat definitions referencing it are
// left untouched; orphaned references are accepted behavior.
func (s *DomainService) DeleteCategory(ctx context.Context, name string) error {
	col, err := s.collection(ctx)
	if err != nil {
		return err
	}

	cats := slices.DeleteFunc(col.Categories, func(c string) bool { return c == name })
	if len(cats) == len(col.Categories) {
		return nil
	}

	if _, err := s.syncer.Save(ctx, domain.CategoriesPatch(s.kind, cats)); err != nil {
		return err
	}

	s.logger.Info("category deleted", "category", name)
	return nil
}

// merge copies src's set fields into dst so one save carries a whole mutation.
func merge(dst *domain.Patch, src domain.Patch) {
	if src.Countries != nil {
		dst.Countries = src.Countries
	}
	if src.StatDefinitions != nil {
		dst.StatDefinitions = src.StatDefinitions
	}
	if src.Categories != nil {
		dst.Categories = src.Categories
	}
	if src.Aircrafts != nil {
		dst.Aircrafts = src.Aircrafts
	}
	if src.AircraftStats != nil {
		dst.AircraftStats = src.AircraftStats
	}
	if src.AircraftCats != nil {
		dst.AircraftCats = src.AircraftCats
	}
}
