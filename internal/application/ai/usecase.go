package ai

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// historyWindow mensajes previos que se envían al modelo como contexto.
const historyWindow = 50

// UseCase casos de uso de asistentes, conversaciones y créditos.
type UseCase struct {
	assistantRepo repository.AssistantRepository
	convRepo      repository.ConversationRepository
	creditRepo    repository.CreditRepository
	providers     ProviderRegistry
	initialGrant  int64
	log           zerolog.Logger
}

// NewUseCase construye el caso de uso. initialGrant son los créditos que se
// otorgan a un perfil la primera vez que usa el chat.
func NewUseCase(
	assistantRepo repository.AssistantRepository,
	convRepo repository.ConversationRepository,
	creditRepo repository.CreditRepository,
	providers ProviderRegistry,
	initialGrant int64,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		assistantRepo: assistantRepo,
		convRepo:      convRepo,
		creditRepo:    creditRepo,
		providers:     providers,
		initialGrant:  initialGrant,
		log:           log,
	}
}

// CreateAssistant crea un asistente del actor.
func (uc *UseCase) CreateAssistant(actorID string, in dto.CreateAssistantRequest) (*dto.AssistantResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	model := in.Model
	if model == "" {
		model = ModelAuto
	}
	if model != ModelAuto {
		if _, ok := LookupModel(model); !ok {
			return nil, domain.ErrUnknownModel
		}
	}
	now := time.Now()
	a := &entity.Assistant{
		ID:           uuid.New().String(),
		ActorID:      actorID,
		Name:         in.Name,
		SystemPrompt: in.SystemPrompt,
		Model:        model,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.assistantRepo.Create(a); err != nil {
		return nil, err
	}
	return toAssistantResponse(a), nil
}

// GetAssistant obtiene un asistente por ID.
func (uc *UseCase) GetAssistant(id string) (*dto.AssistantResponse, error) {
	a, err := uc.assistantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toAssistantResponse(a), nil
}

// UpdateAssistant actualiza un asistente; solo su dueño.
func (uc *UseCase) UpdateAssistant(callerActorID, id string, in dto.UpdateAssistantRequest) (*dto.AssistantResponse, error) {
	a, err := uc.assistantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if a.ActorID != callerActorID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		a.Name = *in.Name
	}
	if in.SystemPrompt != nil {
		a.SystemPrompt = *in.SystemPrompt
	}
	if in.Model != nil {
		if *in.Model != ModelAuto {
			if _, ok := LookupModel(*in.Model); !ok {
				return nil, domain.ErrUnknownModel
			}
		}
		a.Model = *in.Model
	}
	a.UpdatedAt = time.Now()
	if err := uc.assistantRepo.Update(a); err != nil {
		return nil, err
	}
	return toAssistantResponse(a), nil
}

// ListAssistants lista los asistentes de un actor.
func (uc *UseCase) ListAssistants(actorID string, page dto.PageRequest) ([]dto.AssistantResponse, int, error) {
	list, total, err := uc.assistantRepo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.AssistantResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssistantResponse(a))
	}
	return items, total, nil
}

// DeleteAssistant elimina un asistente; solo su dueño.
func (uc *UseCase) DeleteAssistant(callerActorID, id string) error {
	a, err := uc.assistantRepo.GetByID(id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if a.ActorID != callerActorID {
		return domain.ErrForbidden
	}
	return uc.assistantRepo.Delete(id)
}

// Chat procesa un mensaje: resuelve conversación y modelo, cobra créditos
// (salvo BYOK), llama al proveedor y persiste ambos mensajes.
func (uc *UseCase) Chat(ctx context.Context, profileID string, in dto.ChatRequest) (*dto.ChatResponse, error) {
	if in.Content == "" {
		return nil, domain.ErrInvalidInput
	}

	conv, assistant, err := uc.resolveConversation(profileID, in)
	if err != nil {
		return nil, err
	}

	model, err := uc.resolveModel(in, conv, assistant)
	if err != nil {
		return nil, err
	}

	byok := in.BYOKKey != ""
	if model.Premium && !byok {
		return nil, domain.ErrBYOKRequired
	}

	// Verificación temprana del saldo para no llamar al proveedor en vano.
	if !byok {
		account, err := uc.ensureAccount(profileID)
		if err != nil {
			return nil, err
		}
		if account.Balance < model.CreditCost {
			return nil, domain.ErrInsufficientCredits
		}
	}

	provider, ok := uc.providers.Provider(model.Provider)
	if !ok {
		return nil, domain.ErrUnknownModel
	}

	history, err := uc.history(conv.ID)
	if err != nil {
		return nil, err
	}
	history = append(history, ports.ChatMessage{Role: entity.MessageRoleUser, Content: in.Content})

	system := ""
	if assistant != nil {
		system = assistant.SystemPrompt
	}

	reply, err := provider.Chat(ctx, in.BYOKKey, model.ID, system, history)
	if err != nil {
		uc.log.Error().Err(err).Str("provider", model.Provider).Str("model", model.ID).
			Msg("el proveedor de chat falló")
		return nil, err
	}

	cost := model.CreditCost
	if byok {
		cost = 0
	}
	if cost > 0 {
		if err := uc.creditRepo.Adjust(profileID, -cost, entity.CreditReasonChat); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	userMsg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Role:           entity.MessageRoleUser,
		Content:        in.Content,
		Model:          model.ID,
		CreatedAt:      now,
	}
	botMsg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Role:           entity.MessageRoleAssistant,
		Content:        reply,
		Model:          model.ID,
		CreditsUsed:    cost,
		CreatedAt:      now,
	}
	if err := uc.convRepo.AddMessage(userMsg); err != nil {
		return nil, err
	}
	if err := uc.convRepo.AddMessage(botMsg); err != nil {
		return nil, err
	}
	if err := uc.convRepo.Touch(conv.ID); err != nil {
		uc.log.Warn().Err(err).Str("conversation_id", conv.ID).Msg("no se pudo actualizar la conversación")
	}

	left := int64(0)
	if account, err := uc.creditRepo.GetAccount(profileID); err == nil && account != nil {
		left = account.Balance
	}

	return &dto.ChatResponse{
		ConversationID: conv.ID,
		Model:          model.ID,
		Message:        *toMessageResponse(botMsg),
		CreditsUsed:    cost,
		CreditsLeft:    left,
	}, nil
}

// ListConversations lista las conversaciones del perfil.
func (uc *UseCase) ListConversations(profileID string, page dto.PageRequest) ([]dto.ConversationResponse, int, error) {
	list, total, err := uc.convRepo.ListByProfile(profileID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ConversationResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toConversationResponse(c))
	}
	return items, total, nil
}

// ListMessages lista los mensajes de una conversación del perfil.
func (uc *UseCase) ListMessages(profileID, conversationID string, page dto.PageRequest) ([]dto.MessageResponse, int, error) {
	conv, err := uc.convRepo.GetByID(conversationID)
	if err != nil {
		return nil, 0, err
	}
	if conv == nil {
		return nil, 0, domain.ErrNotFound
	}
	if conv.ProfileID != profileID {
		return nil, 0, domain.ErrForbidden
	}
	list, total, err := uc.convRepo.ListMessages(conversationID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.MessageResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMessageResponse(m))
	}
	return items, total, nil
}

// Credits devuelve el saldo del perfil, otorgando el grant inicial si aún no
// tiene cuenta.
func (uc *UseCase) Credits(profileID string) (*dto.CreditAccountResponse, error) {
	account, err := uc.ensureAccount(profileID)
	if err != nil {
		return nil, err
	}
	return &dto.CreditAccountResponse{
		ProfileID: account.ProfileID,
		Balance:   account.Balance,
		UpdatedAt: account.UpdatedAt,
	}, nil
}

// Models expone el registro de modelos.
func (uc *UseCase) Models() []dto.ModelInfo {
	return ListModels()
}

func (uc *UseCase) resolveConversation(profileID string, in dto.ChatRequest) (*entity.Conversation, *entity.Assistant, error) {
	var assistant *entity.Assistant
	if in.AssistantID != "" {
		a, err := uc.assistantRepo.GetByID(in.AssistantID)
		if err != nil {
			return nil, nil, err
		}
		if a == nil || a.Status != entity.StatusActive {
			return nil, nil, domain.ErrNotFound
		}
		assistant = a
	}

	if in.ConversationID != "" {
		conv, err := uc.convRepo.GetByID(in.ConversationID)
		if err != nil {
			return nil, nil, err
		}
		if conv == nil {
			return nil, nil, domain.ErrNotFound
		}
		if conv.ProfileID != profileID {
			return nil, nil, domain.ErrForbidden
		}
		if assistant == nil && conv.AssistantID != nil {
			a, err := uc.assistantRepo.GetByID(*conv.AssistantID)
			if err != nil {
				return nil, nil, err
			}
			assistant = a
		}
		return conv, assistant, nil
	}

	now := time.Now()
	conv := &entity.Conversation{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Title:     conversationTitle(in.Content),
		Model:     in.Model,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if assistant != nil {
		conv.AssistantID = &assistant.ID
	}
	if err := uc.convRepo.Create(conv); err != nil {
		return nil, nil, err
	}
	return conv, assistant, nil
}

// resolveModel precedencia: modelo del request, luego el del asistente, luego
// el del hilo; "auto" (o vacío) enruta por palabras clave.
func (uc *UseCase) resolveModel(in dto.ChatRequest, conv *entity.Conversation, assistant *entity.Assistant) (Model, error) {
	id := in.Model
	if id == "" && assistant != nil {
		id = assistant.Model
	}
	if id == "" && conv != nil {
		id = conv.Model
	}
	if id == "" || id == ModelAuto {
		return Route(in.Content), nil
	}
	m, ok := LookupModel(id)
	if !ok {
		return Model{}, domain.ErrUnknownModel
	}
	return m, nil
}

func (uc *UseCase) ensureAccount(profileID string) (*entity.CreditAccount, error) {
	account, err := uc.creditRepo.GetAccount(profileID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		if err := uc.creditRepo.Adjust(profileID, uc.initialGrant, entity.CreditReasonGrant); err != nil {
			return nil, err
		}
		account, err = uc.creditRepo.GetAccount(profileID)
		if err != nil {
			return nil, err
		}
	}
	return account, nil
}

// history arma el contexto para el proveedor con los mensajes más recientes.
func (uc *UseCase) history(conversationID string) ([]ports.ChatMessage, error) {
	msgs, err := uc.convRepo.RecentMessages(conversationID, historyWindow)
	if err != nil {
		return nil, err
	}
	out := make([]ports.ChatMessage, 0, len(msgs)+1)
	for _, m := range msgs {
		out = append(out, ports.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out, nil
}

func conversationTitle(content string) string {
	const max = 60
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max])
}

func toAssistantResponse(a *entity.Assistant) *dto.AssistantResponse {
	if a == nil {
		return nil
	}
	return &dto.AssistantResponse{
		ID:           a.ID,
		ActorID:      a.ActorID,
		Name:         a.Name,
		SystemPrompt: a.SystemPrompt,
		Model:        a.Model,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toConversationResponse(c *entity.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		ID:          c.ID,
		ProfileID:   c.ProfileID,
		AssistantID: c.AssistantID,
		Title:       c.Title,
		Model:       c.Model,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		Model:          m.Model,
		CreditsUsed:    m.CreditsUsed,
		CreatedAt:      m.CreatedAt,
	}
}
