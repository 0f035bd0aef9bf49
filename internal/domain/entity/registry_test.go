package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityTable(t *testing.T) {
	cases := map[string]string{
		"project":      "projects",
		"product":      "user_products",
		"service":      "user_services",
		"loan":         "loans",
		"asset":        "assets",
		"cause":        "user_causes",
		"wishlist":     "wishlists",
		"organization": "organizations",
	}
	for typ, table := range cases {
		got, ok := EntityTable(typ)
		assert.True(t, ok, "tipo %q debe estar registrado", typ)
		assert.Equal(t, table, got)
	}

	_, ok := EntityTable("spaceship")
	assert.False(t, ok)
	assert.False(t, IsRegisteredEntity("spaceship"))
}

// Solo product y service se pagan por unidades; el resto acepta monto libre.
func TestIsUnitPriced(t *testing.T) {
	assert.True(t, IsUnitPriced("product"))
	assert.True(t, IsUnitPriced("service"))
	assert.False(t, IsUnitPriced("project"))
	assert.False(t, IsUnitPriced("cause"))
	assert.False(t, IsUnitPriced("spaceship"))
}
