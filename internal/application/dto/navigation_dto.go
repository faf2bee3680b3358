package dto

// NavigationEntry una entrada visible del menú, con la ruta ya resuelta para el rol.
type NavigationEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
}

// NavigationResponse lista ordenada de entradas más el id de la entrada activa
// ("" si la ruta actual no corresponde a ningún módulo).
type NavigationResponse struct {
	Entries  []NavigationEntry `json:"entries"`
	ActiveID string            `json:"active_id"`
}
