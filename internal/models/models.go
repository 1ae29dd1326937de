package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Supplier{},
		&MaterialAllocation{},
		&AllocationShare{},
		&MaterialForecast{},
	}
}

// RequiredTables are the tables the service refuses to run without.
var RequiredTables = []string{"suppliers", "material_allocations", "allocation_shares", "material_forecasts"}
