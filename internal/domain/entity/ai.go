package entity

import "time"

// Assistant asistente de IA configurado por un actor: prompt de sistema y
// modelo por defecto (id del registro de modelos, o "auto").
type Assistant struct {
	ID           string
	ActorID      string
	Name         string
	SystemPrompt string
	Model        string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Conversation hilo de chat de un perfil, opcionalmente con un asistente.
type Conversation struct {
	ID          string
	ProfileID   string
	AssistantID *string
	Title       string
	Model       string // modelo efectivo del hilo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Roles de mensaje según el protocolo de chat.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message mensaje persistido de una conversación. CreditsUsed es el costo
// debitado al generarlo (0 para mensajes de usuario y modelos BYOK).
type Message struct {
	ID             string
	ConversationID string
	Role           string
	Content        string
	Model          string
	CreditsUsed    int64
	CreatedAt      time.Time
}

// CreditAccount saldo de créditos de IA de un perfil.
type CreditAccount struct {
	ProfileID string
	Balance   int64
	UpdatedAt time.Time
}

// Motivos de asiento en el libro de créditos.
const (
	CreditReasonGrant = "grant"
	CreditReasonChat  = "chat"
)

// CreditEntry asiento del libro de créditos (Delta negativo = débito).
type CreditEntry struct {
	ID        string
	ProfileID string
	Delta     int64
	Reason    string
	CreatedAt time.Time
}
