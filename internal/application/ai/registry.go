// Package ai implementa los asistentes conversacionales: registro estático de
// modelos, enrutamiento "auto" por palabras clave, conversaciones con
// historial persistido y libro de créditos por perfil.
package ai

import (
	"sort"
	"strings"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
)

// Proveedores de LLM soportados.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGroq       = "groq"
)

// Capacidades declaradas por modelo; la tabla de enrutamiento mapea palabras
// clave del mensaje a una de estas.
const (
	CapChat     = "chat"
	CapCode     = "code"
	CapAnalysis = "analysis"
	CapCreative = "creative"
)

// ModelAuto activa el enrutamiento por palabras clave.
const ModelAuto = "auto"

// Model entrada del registro: proveedor, capacidades, costo en créditos por
// mensaje generado y si requiere llave propia del usuario (BYOK).
type Model struct {
	ID           string
	Provider     string
	Capabilities []string
	CreditCost   int64
	Premium      bool
}

// registry registro estático. Los premium no se pagan con créditos de la
// plataforma: exigen BYOK.
var registry = map[string]Model{
	"claude-3-5-haiku": {
		ID:           "claude-3-5-haiku",
		Provider:     ProviderAnthropic,
		Capabilities: []string{CapChat, CapCode},
		CreditCost:   2,
	},
	"claude-3-5-sonnet": {
		ID:           "claude-3-5-sonnet",
		Provider:     ProviderAnthropic,
		Capabilities: []string{CapChat, CapCode, CapAnalysis, CapCreative},
		CreditCost:   10,
		Premium:      true,
	},
	"gpt-4o-mini": {
		ID:           "gpt-4o-mini",
		Provider:     ProviderOpenAI,
		Capabilities: []string{CapChat, CapAnalysis},
		CreditCost:   2,
	},
	"gpt-4o": {
		ID:           "gpt-4o",
		Provider:     ProviderOpenAI,
		Capabilities: []string{CapChat, CapCode, CapAnalysis, CapCreative},
		CreditCost:   8,
		Premium:      true,
	},
	"deepseek/deepseek-chat": {
		ID:           "deepseek/deepseek-chat",
		Provider:     ProviderOpenRouter,
		Capabilities: []string{CapChat, CapCode, CapAnalysis},
		CreditCost:   3,
	},
	"llama-3.1-8b-instant": {
		ID:           "llama-3.1-8b-instant",
		Provider:     ProviderGroq,
		Capabilities: []string{CapChat},
		CreditCost:   1,
	},
	"llama-3.3-70b-versatile": {
		ID:           "llama-3.3-70b-versatile",
		Provider:     ProviderGroq,
		Capabilities: []string{CapChat, CapCreative},
		CreditCost:   2,
	},
}

// routingRules palabras clave → capacidad requerida. Se evalúan en orden y
// gana la primera que matchee; sin match se enruta a chat.
var routingRules = []struct {
	keywords   []string
	capability string
}{
	{[]string{"code", "código", "bug", "function", "función", "refactor", "compila", "stack trace"}, CapCode},
	{[]string{"analyze", "analiza", "explain", "explica", "summary", "resumen", "report", "informe", "compara"}, CapAnalysis},
	{[]string{"write", "escribe", "story", "historia", "poem", "poema", "idea", "slogan"}, CapCreative},
}

// LookupModel busca en el registro.
func LookupModel(id string) (Model, bool) {
	m, ok := registry[id]
	return m, ok
}

// ListModels devuelve el registro ordenado por id, listo para la API.
func ListModels() []dto.ModelInfo {
	out := make([]dto.ModelInfo, 0, len(registry))
	for _, m := range registry {
		out = append(out, dto.ModelInfo{
			ID:           m.ID,
			Provider:     m.Provider,
			Capabilities: m.Capabilities,
			CreditCost:   m.CreditCost,
			Premium:      m.Premium,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Route elige modelo para un mensaje en modo auto: detecta la capacidad por
// palabras clave y devuelve el modelo no premium más barato que la tenga.
func Route(content string) Model {
	lower := strings.ToLower(content)
	capability := CapChat
	for _, rule := range routingRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				capability = rule.capability
				break
			}
		}
		if capability != CapChat {
			break
		}
	}
	return cheapestWith(capability)
}

func cheapestWith(capability string) Model {
	var best Model
	found := false
	for _, m := range registry {
		if m.Premium || !hasCapability(m, capability) {
			continue
		}
		if !found || m.CreditCost < best.CreditCost || (m.CreditCost == best.CreditCost && m.ID < best.ID) {
			best = m
			found = true
		}
	}
	if !found {
		// chat siempre tiene al menos un modelo no premium
		return cheapestWith(CapChat)
	}
	return best
}

func hasCapability(m Model, capability string) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}
