package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hola Mundo", "hola-mundo"},
		{"Educación Ñandú", "educacion-nandu"},
		{"  espacios   múltiples  ", "espacios-multiples"},
		{"Ya-con-guiones", "ya-con-guiones"},
		{"Proyecto #1 (beta)", "proyecto-1-beta"},
		{"CamelCaseTitle", "camelcasetitle"},
		{"números 123", "numeros-123"},
		{"---", ""},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.in), "Make(%q)", tc.in)
	}
}

// El resultado nunca empieza ni termina con guion.
func TestMake_SinGuionesEnBordes(t *testing.T) {
	got := Make("¡Hola!")
	assert.Equal(t, "hola", got)
}
