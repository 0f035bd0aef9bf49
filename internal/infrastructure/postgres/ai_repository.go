package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

var _ repository.AssistantRepository = (*AssistantRepo)(nil)

// AssistantRepo implementación de AssistantRepository sobre PostgreSQL.
type AssistantRepo struct {
	q Querier
}

// NewAssistantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssistantRepository(q Querier) *AssistantRepo {
	return &AssistantRepo{q: q}
}

const assistantColumns = `id, actor_id, name, system_prompt, model, status, created_at, updated_at`

// Create persiste un nuevo asistente.
func (r *AssistantRepo) Create(a *entity.Assistant) error {
	query := `
		INSERT INTO assistants (` + assistantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ActorID, a.Name, a.SystemPrompt, a.Model, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assistant: %w", err)
	}
	return nil
}

// GetByID obtiene un asistente por ID.
func (r *AssistantRepo) GetByID(id string) (*entity.Assistant, error) {
	query := `SELECT ` + assistantColumns + ` FROM assistants WHERE id = $1`
	var a entity.Assistant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ActorID, &a.Name, &a.SystemPrompt, &a.Model, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assistant: %w", err)
	}
	return &a, nil
}

// Update actualiza un asistente existente.
func (r *AssistantRepo) Update(a *entity.Assistant) error {
	query := `
		UPDATE assistants SET name = $2, system_prompt = $3, model = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Name, a.SystemPrompt, a.Model, a.Status, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assistant: %w", err)
	}
	return nil
}

// ListByActor lista los asistentes de un actor.
func (r *AssistantRepo) ListByActor(actorID string, limit, offset int) ([]*entity.Assistant, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM assistants WHERE actor_id = $1 AND status <> 'deleted'`, actorID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count assistants: %w", err)
	}

	query := `
		SELECT ` + assistantColumns + ` FROM assistants
		WHERE actor_id = $1 AND status <> 'deleted' ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list assistants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Assistant
	for rows.Next() {
		var a entity.Assistant
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Name, &a.SystemPrompt, &a.Model, &a.Status,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan assistant: %w", err)
		}
		list = append(list, &a)
	}
	return list, total, rows.Err()
}

// Delete marca el asistente como eliminado.
func (r *AssistantRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE assistants SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assistant: %w", err)
	}
	return nil
}

var _ repository.ConversationRepository = (*ConversationRepo)(nil)

// ConversationRepo implementación de ConversationRepository sobre PostgreSQL.
type ConversationRepo struct {
	q Querier
}

// NewConversationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConversationRepository(q Querier) *ConversationRepo {
	return &ConversationRepo{q: q}
}

// Create persiste una nueva conversación.
func (r *ConversationRepo) Create(c *entity.Conversation) error {
	query := `
		INSERT INTO conversations (id, profile_id, assistant_id, title, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ProfileID, c.AssistantID, c.Title, c.Model, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// GetByID obtiene una conversación por ID.
func (r *ConversationRepo) GetByID(id string) (*entity.Conversation, error) {
	query := `
		SELECT id, profile_id, assistant_id, title, model, created_at, updated_at
		FROM conversations WHERE id = $1`
	var c entity.Conversation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ProfileID, &c.AssistantID, &c.Title, &c.Model, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &c, nil
}

// Touch actualiza updated_at (ordena el listado por actividad reciente).
func (r *ConversationRepo) Touch(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE conversations SET updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

// ListByProfile lista las conversaciones de un perfil, más activas primero.
func (r *ConversationRepo) ListByProfile(profileID string, limit, offset int) ([]*entity.Conversation, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM conversations WHERE profile_id = $1`, profileID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count conversations: %w", err)
	}

	query := `
		SELECT id, profile_id, assistant_id, title, model, created_at, updated_at
		FROM conversations WHERE profile_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Conversation
	for rows.Next() {
		var c entity.Conversation
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.AssistantID, &c.Title, &c.Model,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan conversation: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// AddMessage persiste un mensaje.
func (r *ConversationRepo) AddMessage(m *entity.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, role, content, model, credits_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ConversationID, m.Role, m.Content, m.Model, m.CreditsUsed, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages lista los mensajes de una conversación en orden cronológico.
func (r *ConversationRepo) ListMessages(conversationID string, limit, offset int) ([]*entity.Message, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, conversationID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	query := `
		SELECT id, conversation_id, role, content, model, credits_used, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, conversationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Model,
			&m.CreditsUsed, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// RecentMessages devuelve los últimos limit mensajes de la conversación en
// orden cronológico. Se consulta DESC y se invierte en memoria.
func (r *ConversationRepo) RecentMessages(conversationID string, limit int) ([]*entity.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, model, credits_used, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Model,
			&m.CreditsUsed, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

var _ repository.CreditRepository = (*CreditRepo)(nil)

// CreditRepo implementación de CreditRepository sobre PostgreSQL.
type CreditRepo struct {
	q Querier
}

// NewCreditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

// GetAccount obtiene la cuenta de créditos de un perfil.
func (r *CreditRepo) GetAccount(profileID string) (*entity.CreditAccount, error) {
	query := `SELECT profile_id, balance, updated_at FROM credit_accounts WHERE profile_id = $1`
	var a entity.CreditAccount
	err := r.q.QueryRow(context.Background(), query, profileID).Scan(&a.ProfileID, &a.Balance, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit account: %w", err)
	}
	return &a, nil
}

// Adjust aplica delta al saldo y registra el asiento. El guard del UPDATE
// impide saldos negativos: cero filas afectadas con delta negativo significa
// créditos insuficientes.
func (r *CreditRepo) Adjust(profileID string, delta int64, reason string) error {
	upsert := `
		INSERT INTO credit_accounts (profile_id, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (profile_id) DO UPDATE
			SET balance = credit_accounts.balance + EXCLUDED.balance, updated_at = now()
			WHERE credit_accounts.balance + EXCLUDED.balance >= 0`
	if delta < 0 {
		// Sin cuenta no hay de dónde debitar.
		cmd, err := r.q.Exec(context.Background(),
			`UPDATE credit_accounts SET balance = balance + $2, updated_at = now()
			 WHERE profile_id = $1 AND balance + $2 >= 0`, profileID, delta)
		if err != nil {
			return fmt.Errorf("debit credits: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrInsufficientCredits
		}
	} else {
		if _, err := r.q.Exec(context.Background(), upsert, profileID, delta); err != nil {
			return fmt.Errorf("grant credits: %w", err)
		}
	}

	_, err := r.q.Exec(context.Background(),
		`INSERT INTO credit_entries (id, profile_id, delta, reason, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		uuid.New().String(), profileID, delta, reason)
	if err != nil {
		return fmt.Errorf("insert credit entry: %w", err)
	}
	return nil
}

// ListEntries lista los asientos del libro de créditos de un perfil.
func (r *CreditRepo) ListEntries(profileID string, limit, offset int) ([]*entity.CreditEntry, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM credit_entries WHERE profile_id = $1`, profileID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count credit entries: %w", err)
	}

	query := `
		SELECT id, profile_id, delta, reason, created_at
		FROM credit_entries WHERE profile_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list credit entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.CreditEntry
	for rows.Next() {
		var e entity.CreditEntry
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Delta, &e.Reason, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan credit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
