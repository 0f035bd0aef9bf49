package ports

import "context"

// ChatMessage mensaje del protocolo de chat-completions, neutral al proveedor.
type ChatMessage struct {
	Role    string // "user" | "assistant"
	Content string
}

// ChatProvider puerto de salida hacia un proveedor de LLM. Cada adaptador
// (Anthropic, OpenAI, OpenRouter, Groq, mock) implementa esta interfaz; el
// cliente unificado elige el adaptador según el registro de modelos.
// El contexto debe llevar timeout: las llamadas externas pueden demorar.
type ChatProvider interface {
	// Chat envía system + historial y devuelve el texto de la respuesta.
	// apiKey es la llave a usar en esa llamada (de plataforma o BYOK).
	Chat(ctx context.Context, apiKey, model, system string, messages []ChatMessage) (string, error)
}
