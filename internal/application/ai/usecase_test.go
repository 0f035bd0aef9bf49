package ai

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssistantRepo struct {
	assistants map[string]*entity.Assistant
}

func (r *fakeAssistantRepo) Create(a *entity.Assistant) error { r.assistants[a.ID] = a; return nil }
func (r *fakeAssistantRepo) GetByID(id string) (*entity.Assistant, error) {
	return r.assistants[id], nil
}
func (r *fakeAssistantRepo) Update(a *entity.Assistant) error { r.assistants[a.ID] = a; return nil }
func (r *fakeAssistantRepo) ListByActor(string, int, int) ([]*entity.Assistant, int, error) {
	return nil, 0, nil
}
func (r *fakeAssistantRepo) Delete(id string) error { delete(r.assistants, id); return nil }

type fakeConvRepo struct {
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *fakeConvRepo) Create(c *entity.Conversation) error { r.conversations[c.ID] = c; return nil }
func (r *fakeConvRepo) GetByID(id string) (*entity.Conversation, error) {
	return r.conversations[id], nil
}
func (r *fakeConvRepo) Touch(id string) error { return nil }
func (r *fakeConvRepo) ListByProfile(string, int, int) ([]*entity.Conversation, int, error) {
	return nil, 0, nil
}
func (r *fakeConvRepo) AddMessage(m *entity.Message) error {
	r.messages[m.ConversationID] = append(r.messages[m.ConversationID], m)
	return nil
}
func (r *fakeConvRepo) ListMessages(conversationID string, limit, offset int) ([]*entity.Message, int, error) {
	msgs := r.messages[conversationID]
	total := len(msgs)
	if offset >= total {
		return nil, total, nil
	}
	msgs = msgs[offset:]
	if limit < len(msgs) {
		msgs = msgs[:limit]
	}
	return msgs, total, nil
}
func (r *fakeConvRepo) RecentMessages(conversationID string, limit int) ([]*entity.Message, error) {
	msgs := r.messages[conversationID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

// fakeCreditRepo replica la invariante del repositorio real: el saldo nunca
// baja de cero.
type fakeCreditRepo struct {
	accounts map[string]*entity.CreditAccount
	entries  []*entity.CreditEntry
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{accounts: make(map[string]*entity.CreditAccount)}
}

func (r *fakeCreditRepo) GetAccount(profileID string) (*entity.CreditAccount, error) {
	return r.accounts[profileID], nil
}

func (r *fakeCreditRepo) Adjust(profileID string, delta int64, reason string) error {
	acc, ok := r.accounts[profileID]
	if !ok {
		acc = &entity.CreditAccount{ProfileID: profileID}
		r.accounts[profileID] = acc
	}
	if acc.Balance+delta < 0 {
		return domain.ErrInsufficientCredits
	}
	acc.Balance += delta
	acc.UpdatedAt = time.Now()
	r.entries = append(r.entries, &entity.CreditEntry{ProfileID: profileID, Delta: delta, Reason: reason})
	return nil
}

func (r *fakeCreditRepo) ListEntries(string, int, int) ([]*entity.CreditEntry, int, error) {
	return r.entries, len(r.entries), nil
}

// fakeProvider registra la última llamada y responde un texto fijo.
type fakeProvider struct {
	lastModel  string
	lastSystem string
	lastAPIKey string
	lastMsgs   []ports.ChatMessage
	reply      string
}

func (p *fakeProvider) Chat(_ context.Context, apiKey, model, system string, messages []ports.ChatMessage) (string, error) {
	p.lastAPIKey = apiKey
	p.lastModel = model
	p.lastSystem = system
	p.lastMsgs = messages
	return p.reply, nil
}

type fakeRegistry struct {
	provider *fakeProvider
}

func (r *fakeRegistry) Provider(name string) (ports.ChatProvider, bool) {
	return r.provider, true
}

const (
	testProfile      = "profile-1"
	testActor        = "actor-1"
	testInitialGrant = int64(10)
)

func newChatUseCase() (*UseCase, *fakeProvider, *fakeCreditRepo, *fakeConvRepo) {
	provider := &fakeProvider{reply: "hola desde el modelo"}
	credits := newFakeCreditRepo()
	convs := newFakeConvRepo()
	uc := NewUseCase(
		&fakeAssistantRepo{assistants: make(map[string]*entity.Assistant)},
		convs,
		credits,
		&fakeRegistry{provider: provider},
		testInitialGrant,
		zerolog.Nop(),
	)
	return uc, provider, credits, convs
}

// ──────────────────────────────────────────────────────────────────────────────
// Chat
// ──────────────────────────────────────────────────────────────────────────────

// Primer mensaje: crea conversación, otorga el grant inicial y debita el
// costo del modelo enrutado.
func TestChat_PrimerMensaje_GrantYDebito(t *testing.T) {
	uc, provider, credits, convs := newChatUseCase()

	out, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{
		Content: "hola, ¿qué puedes hacer?",
	})
	require.NoError(t, err)

	assert.Equal(t, "llama-3.1-8b-instant", out.Model, "chat genérico enruta al más barato")
	assert.Equal(t, int64(1), out.CreditsUsed)
	assert.Equal(t, testInitialGrant-1, out.CreditsLeft)
	assert.Equal(t, "hola desde el modelo", out.Message.Content)
	assert.Equal(t, entity.MessageRoleAssistant, out.Message.Role)

	acc, _ := credits.GetAccount(testProfile)
	assert.Equal(t, testInitialGrant-1, acc.Balance)

	// Mensaje del usuario + respuesta persistidos en el hilo nuevo.
	require.NotEmpty(t, out.ConversationID)
	msgs := convs.messages[out.ConversationID]
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.MessageRoleUser, msgs[0].Role)

	// El proveedor recibió el mensaje del usuario al final del historial.
	require.NotEmpty(t, provider.lastMsgs)
	assert.Equal(t, "hola, ¿qué puedes hacer?", provider.lastMsgs[len(provider.lastMsgs)-1].Content)
}

// El segundo mensaje en el mismo hilo envía el historial previo como contexto.
func TestChat_SegundoMensaje_LlevaHistorial(t *testing.T) {
	uc, provider, _, _ := newChatUseCase()

	first, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{Content: "hola"})
	require.NoError(t, err)

	_, err = uc.Chat(context.Background(), testProfile, dto.ChatRequest{
		ConversationID: first.ConversationID,
		Content:        "sigue por favor",
	})
	require.NoError(t, err)

	// 2 mensajes previos + el nuevo del usuario.
	assert.Len(t, provider.lastMsgs, 3)
}

// Con un hilo más largo que la ventana, el contexto son los mensajes más
// recientes, no los más antiguos.
func TestChat_HiloLargo_EnviaLosMasRecientes(t *testing.T) {
	uc, provider, _, convs := newChatUseCase()

	convs.conversations["conv-1"] = &entity.Conversation{ID: "conv-1", ProfileID: testProfile}
	base := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		require.NoError(t, convs.AddMessage(&entity.Message{
			ID:             fmt.Sprintf("msg-%02d", i),
			ConversationID: "conv-1",
			Role:           entity.MessageRoleUser,
			Content:        fmt.Sprintf("mensaje %02d", i),
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}))
	}

	_, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{
		ConversationID: "conv-1",
		Content:        "y ahora qué",
	})
	require.NoError(t, err)

	// 50 de historial + el nuevo del usuario.
	require.Len(t, provider.lastMsgs, historyWindow+1)
	assert.Equal(t, "mensaje 10", provider.lastMsgs[0].Content,
		"los 10 mensajes más viejos quedan fuera de la ventana")
	assert.Equal(t, "mensaje 59", provider.lastMsgs[historyWindow-1].Content)
	assert.Equal(t, "y ahora qué", provider.lastMsgs[historyWindow].Content)
}

func TestChat_SinSaldo_RetornaError(t *testing.T) {
	uc, _, credits, _ := newChatUseCase()
	// Cuenta existente con saldo cero: no aplica el grant inicial.
	credits.accounts[testProfile] = &entity.CreditAccount{ProfileID: testProfile, Balance: 0}

	_, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{Content: "hola"})
	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
}

func TestChat_ModeloPremiumSinBYOK_RetornaError(t *testing.T) {
	uc, _, _, _ := newChatUseCase()

	_, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{
		Model:   "claude-3-5-sonnet",
		Content: "hola",
	})
	assert.ErrorIs(t, err, domain.ErrBYOKRequired)
}

// Con BYOK no se debitan créditos y la llave viaja al proveedor.
func TestChat_BYOK_NoDebita(t *testing.T) {
	uc, provider, credits, _ := newChatUseCase()

	out, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{
		Model:   "claude-3-5-sonnet",
		Content: "hola",
		BYOKKey: "sk-mi-llave",
	})
	require.NoError(t, err)

	assert.Zero(t, out.CreditsUsed)
	assert.Equal(t, "sk-mi-llave", provider.lastAPIKey)
	_, ok := credits.accounts[testProfile]
	assert.False(t, ok, "BYOK no debe crear cuenta ni debitar")
}

func TestChat_ModeloDesconocido_RetornaError(t *testing.T) {
	uc, _, _, _ := newChatUseCase()

	_, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{
		Model:   "gpt-9000",
		Content: "hola",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownModel)
}

func TestChat_ConversacionAjena_RetornaForbidden(t *testing.T) {
	uc, _, _, convs := newChatUseCase()
	convs.conversations["conv-1"] = &entity.Conversation{ID: "conv-1", ProfileID: "otro-perfil"}

	_, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{
		ConversationID: "conv-1",
		Content:        "hola",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChat_ContenidoVacio_RetornaError(t *testing.T) {
	uc, _, _, _ := newChatUseCase()
	_, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El prompt de sistema del asistente viaja al proveedor.
func TestChat_ConAsistente_UsaSuPrompt(t *testing.T) {
	uc, provider, _, _ := newChatUseCase()
	require.NoError(t, uc.assistantRepo.Create(&entity.Assistant{
		ID:           "asst-1",
		ActorID:      testActor,
		Name:         "Mentor",
		SystemPrompt: "responde siempre en español",
		Model:        ModelAuto,
		Status:       entity.StatusActive,
	}))

	_, err := uc.Chat(context.Background(), testProfile, dto.ChatRequest{
		AssistantID: "asst-1",
		Content:     "hola",
	})
	require.NoError(t, err)
	assert.Equal(t, "responde siempre en español", provider.lastSystem)
}

// ──────────────────────────────────────────────────────────────────────────────
// Credits / Assistants
// ──────────────────────────────────────────────────────────────────────────────

// La primera consulta de saldo otorga el grant inicial.
func TestCredits_OtorgaGrantInicial(t *testing.T) {
	uc, _, credits, _ := newChatUseCase()

	out, err := uc.Credits(testProfile)
	require.NoError(t, err)
	assert.Equal(t, testInitialGrant, out.Balance)

	require.Len(t, credits.entries, 1)
	assert.Equal(t, entity.CreditReasonGrant, credits.entries[0].Reason)

	// Segunda consulta: sin grant adicional.
	out, err = uc.Credits(testProfile)
	require.NoError(t, err)
	assert.Equal(t, testInitialGrant, out.Balance)
	assert.Len(t, credits.entries, 1)
}

func TestCreateAssistant_ModeloInvalido_RetornaError(t *testing.T) {
	uc, _, _, _ := newChatUseCase()

	_, err := uc.CreateAssistant(testActor, dto.CreateAssistantRequest{
		Name:  "Mentor",
		Model: "gpt-9000",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownModel)
}

func TestCreateAssistant_ModeloPorDefectoEsAuto(t *testing.T) {
	uc, _, _, _ := newChatUseCase()

	out, err := uc.CreateAssistant(testActor, dto.CreateAssistantRequest{Name: "Mentor"})
	require.NoError(t, err)
	assert.Equal(t, ModelAuto, out.Model)
}

func TestUpdateAssistant_SoloElDueno(t *testing.T) {
	uc, _, _, _ := newChatUseCase()

	created, err := uc.CreateAssistant(testActor, dto.CreateAssistantRequest{Name: "Mentor"})
	require.NoError(t, err)

	nuevo := "Tutor"
	_, err = uc.UpdateAssistant("otro-actor", created.ID, dto.UpdateAssistantRequest{Name: &nuevo})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.UpdateAssistant(testActor, created.ID, dto.UpdateAssistantRequest{Name: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "Tutor", out.Name)
}
