// Package rnd implementa el desarrollo de muestras y recetas de I+D. La
// numeración de recetas y hojas de cata la hace la DB bajo advisory lock;
// aquí nunca se calculan consecutivos.
package rnd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

// UseCase casos de uso de I+D.
type UseCase struct {
	requestRepo repository.RDRequestRepository
	recipeRepo  repository.RecipeRepository
	sampleRepo  repository.SampleRepository
	eventRepo   repository.RDEventRepository
	profileRepo repository.ProfileRepository
	workflow    repository.WorkflowStore
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de I+D.
func NewUseCase(
	requestRepo repository.RDRequestRepository,
	recipeRepo repository.RecipeRepository,
	sampleRepo repository.SampleRepository,
	eventRepo repository.RDEventRepository,
	profileRepo repository.ProfileRepository,
	workflow repository.WorkflowStore,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		recipeRepo:  recipeRepo,
		sampleRepo:  sampleRepo,
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		workflow:    workflow,
		log:         log.Component("rnd"),
	}
}

// CreateRequest crea una solicitud de I+D y registra el evento.
func (uc *UseCase) CreateRequest(ctx context.Context, in dto.CreateRDRequestRequest, requesterID string) (*dto.RDRequestResponse, error) {
	now := time.Now()
	r := &entity.RDRequest{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Brief:       in.Brief,
		Status:      "new",
		RequesterID: requesterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.requestRepo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("crear solicitud I+D: %w", err)
	}
	uc.recordEvent(ctx, r.ID, "request_created", requesterID)
	return toRequestResponse(r), nil
}

// GetRequest devuelve una solicitud; ErrNotFound si no existe.
func (uc *UseCase) GetRequest(ctx context.Context, id string) (*dto.RDRequestResponse, error) {
	r, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRequestResponse(r), nil
}

// ListRequests lista solicitudes con filtro opcional de estado.
func (uc *UseCase) ListRequests(ctx context.Context, status string, page dto.PageRequest) ([]*dto.RDRequestResponse, error) {
	page.DefaultPage()
	rows, err := uc.requestRepo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RDRequestResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRequestResponse(r))
	}
	return out, nil
}

// Transition aplica una acción de workflow sobre la solicitud (asignar,
// pasar a pruebas, cerrar...). La DB valida y devuelve el nuevo estado.
func (uc *UseCase) Transition(ctx context.Context, requestID, action, actorID string) (*dto.TransitionResponse, error) {
	newStatus, err := uc.workflow.Transition(ctx, entity.AttachRDRequest, requestID, action, actorID)
	if err != nil {
		return nil, fmt.Errorf("transición %q: %w", action, err)
	}
	uc.recordEvent(ctx, requestID, action, actorID)
	return &dto.TransitionResponse{Status: newStatus}, nil
}

// CreateRecipe crea una receta vía RPC: la DB asigna id y secuencia bajo
// advisory lock y devuelve ambos.
func (uc *UseCase) CreateRecipe(ctx context.Context, in dto.CreateRecipeRequest, createdBy string) (*dto.RecipeResponse, error) {
	recipeID, sequence, err := uc.workflow.CreateRecipeSequence(ctx, in.RequestID, in.Name, createdBy)
	if err != nil {
		return nil, fmt.Errorf("crear receta: %w", err)
	}
	uc.recordEvent(ctx, in.RequestID, "recipe_created", createdBy)
	r, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		// La RPC confirmó la creación; devolver lo mínimo conocido.
		return &dto.RecipeResponse{ID: recipeID, RequestID: in.RequestID, Name: in.Name, Sequence: sequence, CreatedBy: createdBy}, nil
	}
	return toRecipeResponse(r), nil
}

// CopyRecipe copia una receta existente con secuencia nueva (RPC con advisory lock).
func (uc *UseCase) CopyRecipe(ctx context.Context, recipeID, createdBy string) (*dto.RecipeResponse, error) {
	source, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: receta %s", domain.ErrNotFound, recipeID)
	}
	newID, sequence, err := uc.workflow.CopyRecipe(ctx, recipeID, createdBy)
	if err != nil {
		return nil, fmt.Errorf("copiar receta: %w", err)
	}
	uc.recordEvent(ctx, source.RequestID, "recipe_copied", createdBy)
	copied, err := uc.recipeRepo.GetByID(ctx, newID)
	if err != nil {
		return nil, err
	}
	if copied == nil {
		return &dto.RecipeResponse{ID: newID, RequestID: source.RequestID, Name: source.Name, Sequence: sequence, ParentID: recipeID, CreatedBy: createdBy}, nil
	}
	return toRecipeResponse(copied), nil
}

// ListRecipes recetas de una solicitud.
func (uc *UseCase) ListRecipes(ctx context.Context, requestID string) ([]*dto.RecipeResponse, error) {
	rows, err := uc.recipeRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RecipeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRecipeResponse(r))
	}
	return out, nil
}

// CreateSample registra una muestra de una receta; el número de hoja de cata
// lo genera la DB (RPC next_tasting_sheet_number).
func (uc *UseCase) CreateSample(ctx context.Context, in dto.CreateSampleRequest, createdBy string) (*dto.SampleResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("%w: receta %s", domain.ErrNotFound, in.RecipeID)
	}
	now := time.Now()
	s := &entity.Sample{
		ID:        uuid.New().String(),
		RecipeID:  in.RecipeID,
		Code:      in.Code,
		Status:    "created",
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sampleRepo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("crear muestra: %w", err)
	}
	sheetNo, err := uc.workflow.NextTastingSheetNumber(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("número de hoja de cata: %w", err)
	}
	s.TastingSheetNo = sheetNo
	if err := uc.sampleRepo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar hoja de cata: %w", err)
	}
	uc.recordEvent(ctx, recipe.RequestID, "sample_created", createdBy)
	return toSampleResponse(s), nil
}

// ListSamples muestras de una receta.
func (uc *UseCase) ListSamples(ctx context.Context, recipeID string) ([]*dto.SampleResponse, error) {
	rows, err := uc.sampleRepo.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SampleResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, toSampleResponse(s))
	}
	return out, nil
}

// recordEvent registra el evento de I+D con id y email del actor (la analítica
// cruza por email) y encola la notificación. Los fallos no abortan la
// operación principal, pero quedan en el log: un evento perdido también
// desaparece de la analítica.
func (uc *UseCase) recordEvent(ctx context.Context, requestID, action, actorID string) {
	actorEmail := ""
	if p, err := uc.profileRepo.GetByID(ctx, actorID); err == nil && p != nil {
		actorEmail = p.Email
	}
	if err := uc.eventRepo.Append(ctx, &entity.RDEvent{
		ID:         uuid.New().String(),
		RequestID:  requestID,
		Action:     action,
		ActorID:    actorID,
		ActorEmail: actorEmail,
		CreatedAt:  time.Now(),
	}); err != nil {
		uc.log.Warn().Err(err).Str("request_id", requestID).Str("action", action).Msg("registro de evento de I+D falló")
	}
	if err := uc.workflow.EnqueueNotification(ctx, "rd_"+action, requestID, actorID); err != nil {
		uc.log.Warn().Err(err).Str("request_id", requestID).Str("action", action).Msg("encolado de notificación falló")
	}
}

func toRequestResponse(r *entity.RDRequest) *dto.RDRequestResponse {
	return &dto.RDRequestResponse{
		ID:          r.ID,
		Number:      r.Number,
		Title:       r.Title,
		Brief:       r.Brief,
		Status:      r.Status,
		RequesterID: r.RequesterID,
		AssigneeID:  r.AssigneeID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	return &dto.RecipeResponse{
		ID:        r.ID,
		RequestID: r.RequestID,
		Name:      r.Name,
		Sequence:  r.Sequence,
		ParentID:  r.ParentID,
		Status:    r.Status,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}

func toSampleResponse(s *entity.Sample) *dto.SampleResponse {
	return &dto.SampleResponse{
		ID:             s.ID,
		RecipeID:       s.RecipeID,
		Code:           s.Code,
		TastingSheetNo: s.TastingSheetNo,
		Status:         s.Status,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
	}
}
