package dto

import "time"

// CreateAssistantRequest entrada para crear un asistente.
type CreateAssistantRequest struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
	Model        string `json:"model"` // id del registro o "auto"
}

// UpdateAssistantRequest entrada para actualizar un asistente.
type UpdateAssistantRequest struct {
	Name         *string `json:"name"`
	SystemPrompt *string `json:"system_prompt"`
	Model        *string `json:"model"`
}

// AssistantResponse salida de un asistente.
type AssistantResponse struct {
	ID           string    `json:"id"`
	ActorID      string    `json:"actor_id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt"`
	Model        string    `json:"model"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChatRequest mensaje del usuario hacia una conversación.
// ConversationID vacío crea una conversación nueva. Model sobreescribe el del
// hilo ("auto" activa el enrutamiento por palabras clave). BYOKKey es la llave
// propia del usuario para modelos premium; nunca se persiste.
type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	AssistantID    string `json:"assistant_id"`
	Model          string `json:"model"`
	Content        string `json:"content"`
	BYOKKey        string `json:"byok_key"`
}

// ChatResponse respuesta del modelo más el estado de la conversación.
type ChatResponse struct {
	ConversationID string          `json:"conversation_id"`
	Model          string          `json:"model"`
	Message        MessageResponse `json:"message"`
	CreditsUsed    int64           `json:"credits_used"`
	CreditsLeft    int64           `json:"credits_left"`
}

// MessageResponse salida de un mensaje persistido.
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Model          string    `json:"model"`
	CreditsUsed    int64     `json:"credits_used"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationResponse salida de una conversación.
type ConversationResponse struct {
	ID          string    `json:"id"`
	ProfileID   string    `json:"profile_id"`
	AssistantID *string   `json:"assistant_id"`
	Title       string    `json:"title"`
	Model       string    `json:"model"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreditAccountResponse saldo de créditos.
type CreditAccountResponse struct {
	ProfileID string    `json:"profile_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ModelInfo entrada del registro de modelos expuesta por la API.
type ModelInfo struct {
	ID           string   `json:"id"`
	Provider     string   `json:"provider"`
	Capabilities []string `json:"capabilities"`
	CreditCost   int64    `json:"credit_cost"`
	Premium      bool     `json:"premium"`
}
