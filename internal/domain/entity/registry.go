package entity

// Registro estático de entidades: tipo lógico → tabla que lo respalda.
// Lo usan pagos, wishlists y timeline para validar referencias por tipo+id
// sin acoplarse a cada repositorio.
var entityTables = map[string]string{
	"project":      "projects",
	"product":      "user_products",
	"service":      "user_services",
	"loan":         "loans",
	"asset":        "assets",
	"cause":        "user_causes",
	"wishlist":     "wishlists",
	"organization": "organizations",
}

// Entidades con precio unitario: el total de un pedido es precio × cantidad.
// El resto acepta montos libres (donaciones).
var unitPriced = map[string]bool{
	"product": true,
	"service": true,
}

// EntityTable devuelve la tabla de un tipo lógico.
func EntityTable(entityType string) (string, bool) {
	t, ok := entityTables[entityType]
	return t, ok
}

// IsRegisteredEntity indica si el tipo existe en el registro.
func IsRegisteredEntity(entityType string) bool {
	_, ok := entityTables[entityType]
	return ok
}

// IsUnitPriced indica si el tipo se paga por unidades con precio fijo.
func IsUnitPriced(entityType string) bool {
	return unitPriced[entityType]
}
