// Package ai contiene los adaptadores HTTP hacia los proveedores de LLM y el
// registro unificado que los expone al caso de uso de chat. Usa net/http de la
// librería estándar; no requiere SDKs oficiales.
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

// Verificar en tiempo de compilación que AnthropicService implementa ChatProvider.
var _ ports.ChatProvider = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	anthropicMaxTokens   = 2048
)

// AnthropicService adaptador del protocolo Anthropic Messages API.
type AnthropicService struct {
	apiKey     string // llave de plataforma; puede estar vacía si solo se usa BYOK
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador con la llave de plataforma.
func NewAnthropicService(apiKey string) *AnthropicService {
	return &AnthropicService{
		apiKey:  apiKey,
		baseURL: anthropicMessagesURL,
		httpClient: &http.Client{
			// Timeout de red de 60 s; el handler impone además su propio context.
			Timeout: 60 * time.Second,
		},
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Chat envía system + historial y devuelve el texto de la respuesta.
// apiKey no vacío (BYOK) tiene prioridad sobre la llave de plataforma.
func (s *AnthropicService) Chat(ctx context.Context, apiKey, model, system string, messages []ports.ChatMessage) (string, error) {
	key := apiKey
	if key == "" {
		key = s.apiKey
	}
	if key == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	msgs := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, anthropicMessage{Role: m.Role, Content: m.Content})
	}
	payload := anthropicRequest{
		Model:     model,
		MaxTokens: anthropicMaxTokens,
		System:    system,
		Messages:  msgs,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", key)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

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

	var parsed anthropicResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &parsed); jsonErr == nil && parsed.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return "", fmt.Errorf("AI: parsear respuesta: %w", err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("AI: respuesta de Anthropic sin contenido de texto")
}
