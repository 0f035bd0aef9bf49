package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
)

// Verificar en tiempo de compilación que OpenAICompatService implementa ChatProvider.
var _ ports.ChatProvider = (*OpenAICompatService)(nil)

// Bases públicas de los proveedores con protocolo chat-completions compatible.
const (
	OpenAIBaseURL     = "https://api.openai.com/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	GroqBaseURL       = "https://api.groq.com/openai/v1"
)

// OpenAICompatService adaptador del protocolo chat-completions de OpenAI.
// OpenAI, OpenRouter y Groq hablan el mismo JSON; solo cambian base URL y llave.
type OpenAICompatService struct {
	name       string // para mensajes de error
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAICompatService construye el adaptador para un proveedor compatible.
func NewOpenAICompatService(name, baseURL, apiKey string) *OpenAICompatService {
	return &OpenAICompatService{
		name:    name,
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Chat envía system + historial y devuelve el texto de la primera choice.
func (s *OpenAICompatService) Chat(ctx context.Context, apiKey, model, system string, messages []ports.ChatMessage) (string, error) {
	key := apiKey
	if key == "" {
		key = s.apiKey
	}
	if key == "" {
		return "", fmt.Errorf("AI: llave de %s no configurada", s.name)
	}

	msgs := make([]openaiMessage, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, openaiMessage{Role: "system", Content: system})
	}
	for _, m := range messages {
		msgs = append(msgs, openaiMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(openaiRequest{Model: model, Messages: msgs})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	var parsed openaiResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &parsed); jsonErr == nil && parsed.Error != nil {
			return "", fmt.Errorf("AI: %s error (%s): %s", s.name, parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("AI: %s HTTP %d: %s", s.name, resp.StatusCode, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return "", fmt.Errorf("AI: parsear respuesta: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("AI: respuesta de %s sin choices", s.name)
	}
	return parsed.Choices[0].Message.Content, nil
}
