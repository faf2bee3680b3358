package dto

// UserActivityDTO contadores de actividad de un usuario dentro de la ventana móvil.
type UserActivityDTO struct {
	UserID                string `json:"user_id"`
	Email                 string `json:"email"`
	DisplayName           string `json:"display_name"`
	RDEventsCount         int    `json:"rd_events_count"`
	PurchaseRequestsCount int    `json:"purchase_requests_count"`
	PurchaseInvoicesCount int    `json:"purchase_invoices_count"`
	PurchaseLogsCount     int    `json:"purchase_logs_count"`
	LastActivity          string `json:"last_activity,omitempty"` // ISO-8601; vacío si no hubo actividad
}

// TimelineBucketDTO eventos agregados de un día calendario (serie densa: los
// días sin eventos aparecen con cero).
type TimelineBucketDTO struct {
	Date           string `json:"date"` // YYYY-MM-DD
	RDEvents       int    `json:"rd_events"`
	PurchaseEvents int    `json:"purchase_events"`
}

// MostActiveUserDTO usuario con más actividad en la ventana.
type MostActiveUserDTO struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	EventsCount int    `json:"events_count"`
}

// ActivitySummaryDTO resumen de uso de la ventana móvil.
type ActivitySummaryDTO struct {
	ActiveUsersCount int                `json:"active_users_count"`
	TotalUsersCount  int                `json:"total_users_count"`
	TotalEventsCount int                `json:"total_events_count"`
	MostActive       *MostActiveUserDTO `json:"most_active,omitempty"` // nil si nadie tuvo actividad
}
