package ai

import "github.com/orangecat-xyz/orangecat-api/internal/application/ports"

// ProviderRegistry resuelve el adaptador de chat de cada proveedor. El
// cliente unificado de infraestructura lo implementa con los adaptadores
// configurados (los proveedores sin llave de plataforma igual se registran:
// sirven con BYOK).
type ProviderRegistry interface {
	Provider(name string) (ports.ChatProvider, bool)
}
