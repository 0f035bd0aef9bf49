package ai

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupModel(t *testing.T) {
	m, ok := LookupModel("claude-3-5-haiku")
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, m.Provider)
	assert.False(t, m.Premium)

	_, ok = LookupModel("gpt-9000")
	assert.False(t, ok)
}

func TestListModels_OrdenadoPorID(t *testing.T) {
	models := ListModels()
	require.NotEmpty(t, models)

	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	assert.True(t, sort.StringsAreSorted(ids), "el catálogo debe salir ordenado por id")
}

// El enrutamiento auto detecta la capacidad por palabras clave y elige el
// modelo no premium más barato que la tenga.
func TestRoute_PorPalabrasClave(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"código en inglés", "please fix this function, it has a bug", "claude-3-5-haiku"},
		{"código en español", "el código no compila, ayúdame", "claude-3-5-haiku"},
		{"análisis", "analiza este informe de ventas", "gpt-4o-mini"},
		{"creativo", "escribe un poema sobre bitcoin", "llama-3.3-70b-versatile"},
		{"chat genérico", "hola, ¿cómo estás?", "llama-3.1-8b-instant"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Route(tc.content)
			assert.Equal(t, tc.want, m.ID)
			assert.False(t, m.Premium, "auto nunca enruta a modelos premium")
		})
	}
}

// La primera regla que matchea gana: "bug" (code) antes que "explain" (analysis).
func TestRoute_PrimeraReglaGana(t *testing.T) {
	m := Route("explain this bug to me")
	assert.Equal(t, "claude-3-5-haiku", m.ID)
}

// Las palabras clave se comparan sin distinción de mayúsculas.
func TestRoute_CaseInsensitive(t *testing.T) {
	m := Route("REFACTOR este módulo")
	assert.Equal(t, "claude-3-5-haiku", m.ID)
}
