package ai

import (
	appai "github.com/orangecat-xyz/orangecat-api/internal/application/ai"
	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
	"github.com/orangecat-xyz/orangecat-api/pkg/config"
)

// Verificar en tiempo de compilación que Registry implementa ProviderRegistry.
var _ appai.ProviderRegistry = (*Registry)(nil)

// Registry mapa proveedor → adaptador. Los proveedores sin llave de
// plataforma igual quedan registrados: las llamadas con BYOK funcionan y las
// demás fallan con un error descriptivo.
type Registry struct {
	providers map[string]ports.ChatProvider
}

// NewRegistry construye todos los adaptadores desde la configuración.
func NewRegistry(cfg config.AIConfig) *Registry {
	return &Registry{providers: map[string]ports.ChatProvider{
		appai.ProviderAnthropic:  NewAnthropicService(cfg.AnthropicAPIKey),
		appai.ProviderOpenAI:     NewOpenAICompatService("openai", OpenAIBaseURL, cfg.OpenAIAPIKey),
		appai.ProviderOpenRouter: NewOpenAICompatService("openrouter", OpenRouterBaseURL, cfg.OpenRouterAPIKey),
		appai.ProviderGroq:       NewOpenAICompatService("groq", GroqBaseURL, cfg.GroqAPIKey),
	}}
}

// Provider devuelve el adaptador de un proveedor.
func (r *Registry) Provider(name string) (ports.ChatProvider, bool) {
	p, ok := r.providers[name]
	return p, ok
}
