package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// AssistantRepository puerto de persistencia para Assistant.
type AssistantRepository interface {
	Create(a *entity.Assistant) error
	GetByID(id string) (*entity.Assistant, error)
	Update(a *entity.Assistant) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Assistant, int, error)
	Delete(id string) error
}

// ConversationRepository puerto de persistencia para conversaciones y mensajes.
type ConversationRepository interface {
	Create(c *entity.Conversation) error
	GetByID(id string) (*entity.Conversation, error)
	Touch(id string) error
	ListByProfile(profileID string, limit, offset int) ([]*entity.Conversation, int, error)

	AddMessage(m *entity.Message) error
	ListMessages(conversationID string, limit, offset int) ([]*entity.Message, int, error)
	// RecentMessages devuelve los últimos limit mensajes en orden cronológico.
	RecentMessages(conversationID string, limit int) ([]*entity.Message, error)
}

// CreditRepository puerto de persistencia del libro de créditos de IA.
type CreditRepository interface {
	GetAccount(profileID string) (*entity.CreditAccount, error)
	// Adjust aplica delta al saldo y registra el asiento en una sola operación.
	// Con delta negativo falla con dominio ErrInsufficientCredits si el saldo
	// quedaría por debajo de cero.
	Adjust(profileID string, delta int64, reason string) error
	ListEntries(profileID string, limit, offset int) ([]*entity.CreditEntry, int, error)
}
