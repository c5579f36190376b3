package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/service"
)

func (s *Server) registerDomainRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEntities",
		Method:      http.MethodGet,
		Path:        "/api/v1/domains/{kind}/entities",
		Summary:     "List entities",
		Description: "Returns the ranked entity list for a domain",
		Tags:        []string{"Entities"},
	}, s.handleListEntities)

	huma.Register(s.api, huma.Operation{
		OperationID: "newEntityTemplate",
		Method:      http.MethodGet,
		Path:        "/api/v1/domains/{kind}/entities/new",
		Summary:     "New entity template",
		Description: "Returns a fresh entity pre-filled with seed stat values",
		Tags:        []string{"Entities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleNewEntityTemplate)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEntity",
		Method:      http.MethodGet,
		Path:        "/api/v1/domains/{kind}/entities/{id}",
		Summary:     "Get entity",
		Description: "Returns a single entity by ID",
		Tags:        []string{"Entities"},
	}, s.handleGetEntity)

	huma.Register(s.api, huma.Operation{
		OperationID: "upsertEntity",
		Method:      http.MethodPut,
		Path:        "/api/v1/domains/{kind}/entities/{id}",
		Summary:     "Upsert entity",
		Description: "Replaces the entity wholesale and reranks the domain",
		Tags:        []string{"Entities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpsertEntity)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteEntity",
		Method:      http.MethodDelete,
		Path:        "/api/v1/domains/{kind}/entities/{id}",
		Summary:     "Delete entity",
		Description: "Removes an entity and reranks; deleting an absent ID is a no-op",
		Tags:        []string{"Entities"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteEntity)

	huma.Register(s.api, huma.Operation{
		OperationID: "listStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/domains/{kind}/stats",
		Summary:     "List stat definitions",
		Description: "Returns the domain's stat registry in insertion order",
		Tags:        []string{"Stats"},
	}, s.handleListStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "addStat",
		Method:      http.MethodPost,
		Path:        "/api/v1/domains/{kind}/stats",
		Summary:     "Add stat definition",
		Description: "Registers a stat and backfills every entity with its seed value",
		Tags:        []string{"Stats"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddStat)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteStat",
		Method:      http.MethodDelete,
		Path:        "/api/v1/domains/{kind}/stats/{id}",
		Summary:     "Delete stat definition",
		Description: "Removes a stat and strips its values from all entities",
		Tags:        []string{"Stats"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteStat)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/domains/{kind}/categories",
		Summary:     "List categories",
		Description: "Returns the domain's category tags in insertion order",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "addCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/domains/{kind}/categories",
		Summary:     "Add category",
		Description: "Appends a category tag; blank or duplicate names are ignored",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCategory",
		Method:      http.MethodDelete,
		Path:        "/api/v1/domains/{kind}/categories/{name}",
		Summary:     "Delete category",
		Description: "Removes a category tag; stat definitions keep their references",
		Tags:        []string{"Categories"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCategory)
}

// === DTOs ===

type ListEntitiesInput struct {
	Kind string `path:"kind" doc:"Domain kind (nations or aircraft)"`
}

type EntitiesResponse struct {
	Entities []domain.Entity `json:"entities" doc:"Entities sorted by rank"`
}

type ListEntitiesOutput struct {
	Body EntitiesResponse
}

type GetEntityInput struct {
	Kind string `path:"kind" doc:"Domain kind"`
	ID   string `path:"id" doc:"Entity ID"`
}

type EntityOutput struct {
	Body domain.Entity
}

type NewEntityTemplateInput struct {
	Authorization string `header:"Authorization"`
	Kind          string `path:"kind" doc:"Domain kind"`
}

type UpsertEntityRequest struct {
	Name        string             `json:"name" validate:"required,min=1,max=200" doc:"Display name"`
	FlagCode    string             `json:"flagCode,omitempty" doc:"ISO 3166-1 alpha-2 flag code (nations)"`
	Origin      string             `json:"origin,omitempty" doc:"Country of origin (aircraft)"`
	Score       float64            `json:"score" doc:"Composite strength score"`
	Description string             `json:"description" doc:"Short description"`
	Stats       map[string]float64 `json:"stats" doc:"Stat values keyed by stat ID"`
	IsGenerated bool               `json:"isGenerated,omitempty" doc:"Whether the entity was AI-generated"`
}

type UpsertEntityInput struct {
	Authorization string `header:"Authorization"`
	Kind          string `path:"kind" doc:"Domain kind"`
	ID            string `path:"id" doc:"Entity ID"`
	Body          UpsertEntityRequest
}

type DeleteEntityInput struct {
	Authorization string `header:"Authorization"`
	Kind          string `path:"kind" doc:"Domain kind"`
	ID            string `path:"id" doc:"Entity ID"`
}

type ListStatsInput struct {
	Kind string `path:"kind" doc:"Domain kind"`
}

type StatsResponse struct {
	Stats []domain.StatDefinition `json:"stats" doc:"Stat definitions in insertion order"`
}

type ListStatsOutput struct {
	Body StatsResponse
}

type AddStatRequest struct {
	ID       string `json:"id,omitempty" doc:"Stat ID (derived from label when omitted)"`
	Label    string `json:"label" validate:"required,min=1,max=100" doc:"Display label"`
	Category string `json:"category,omitempty" doc:"Category tag"`
	Format   string `json:"format,omitempty" validate:"omitempty,oneof=number currency slider" doc:"Value format"`
}

type AddStatInput struct {
	Authorization string `header:"Authorization"`
	Kind          string `path:"kind" doc:"Domain kind"`
	Body          AddStatRequest
}

type StatOutput struct {
	Body domain.StatDefinition
}

type DeleteStatInput struct {
	Authorization string `header:"Authorization"`
	Kind          string `path:"kind" doc:"Domain kind"`
	ID            string `path:"id" doc:"Stat ID"`
}

type ListCategoriesInput struct {
	Kind string `path:"kind" doc:"Domain kind"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories" doc:"Category tags in insertion order"`
}

type ListCategoriesOutput struct {
	Body CategoriesResponse
}

type AddCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100" doc:"Category name"`
}

type AddCategoryInput struct {
	Authorization string `header:"Authorization"`
	Kind          string `path:"kind" doc:"Domain kind"`
	Body          AddCategoryRequest
}

type DeleteCategoryInput struct {
	Authorization string `header:"Authorization"`
	Kind          string `path:"kind" doc:"Domain kind"`
	Name          string `path:"name" doc:"Category name"`
}

// === Handlers ===

func (s *Server) handleListEntities(ctx context.Context, input *ListEntitiesInput) (*ListEntitiesOutput, error) {
	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	entities, err := svc.Entities(ctx)
	if err != nil {
		return nil, err
	}

	return &ListEntitiesOutput{Body: EntitiesResponse{Entities: entities}}, nil
}

func (s *Server) handleGetEntity(ctx context.Context, input *GetEntityInput) (*EntityOutput, error) {
	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	entity, err := svc.Entity(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &EntityOutput{Body: *entity}, nil
}

func (s *Server) handleNewEntityTemplate(ctx context.Context, input *NewEntityTemplateInput) (*EntityOutput, error) {
	if _, err := s.authenticateAdmin(input.Authorization); err != nil {
		return nil, err
	}

	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	template, err := svc.NewEntityTemplate(ctx)
	if err != nil {
		return nil, err
	}

	return &EntityOutput{Body: *template}, nil
}

func (s *Server) handleUpsertEntity(ctx context.Context, input *UpsertEntityInput) (*EntityOutput, error) {
	if _, err := s.authenticateAdmin(input.Authorization); err != nil {
		return nil, err
	}

	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	entity, err := svc.UpsertEntity(ctx, input.ID, service.UpsertRequest{
		Name:        input.Body.Name,
		FlagCode:    input.Body.FlagCode,
		Origin:      input.Body.Origin,
		Score:       input.Body.Score,
		Description: input.Body.Description,
		Stats:       input.Body.Stats,
		IsGenerated: input.Body.IsGenerated,
	})
	if err != nil {
		return nil, err
	}

	return &EntityOutput{Body: *entity}, nil
}

func (s *Server) handleDeleteEntity(ctx context.Context, input *DeleteEntityInput) (*MessageOutput, error) {
	if _, err := s.authenticateAdmin(input.Authorization); err != nil {
		return nil, err
	}

	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := svc.DeleteEntity(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Entity deleted"}}, nil
}

func (s *Server) handleListStats(ctx context.Context, input *ListStatsInput) (*ListStatsOutput, error) {
	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &ListStatsOutput{Body: StatsResponse{Stats: stats}}, nil
}

func (s *Server) handleAddStat(ctx context.Context, input *AddStatInput) (*StatOutput, error) {
	if _, err := s.authenticateAdmin(input.Authorization); err != nil {
		return nil, err
	}

	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	def, err := svc.AddStat(ctx, service.AddStatRequest{
		ID:       input.Body.ID,
		Label:    input.Body.Label,
		Category: input.Body.Category,
		Format:   input.Body.Format,
	})
	if err != nil {
		return nil, err
	}

	return &StatOutput{Body: *def}, nil
}

func (s *Server) handleDeleteStat(ctx context.Context, input *DeleteStatInput) (*MessageOutput, error) {
	if _, err := s.authenticateAdmin(input.Authorization); err != nil {
		return nil, err
	}

	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := svc.DeleteStat(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Stat deleted"}}, nil
}

func (s *Server) handleListCategories(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	categories, err := svc.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &ListCategoriesOutput{Body: CategoriesResponse{Categories: categories}}, nil
}

func (s *Server) handleAddCategory(ctx context.Context, input *AddCategoryInput) (*MessageOutput, error) {
	if _, err := s.authenticateAdmin(input.Authorization); err != nil {
		return nil, err
	}

	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := svc.AddCategory(ctx, input.Body.Name); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Category added"}}, nil
}

func (s *Server) handleDeleteCategory(ctx context.Context, input *DeleteCategoryInput) (*MessageOutput, error) {
	if _, err := s.authenticateAdmin(input.Authorization); err != nil {
		return nil, err
	}

	svc, err := s.resolveDomain(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := svc.DeleteCategory(ctx, input.Name); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Category deleted"}}, nil
}
