package dto

// LimitQuery límite de resultados para listados cortos (recientes, ranking).
type LimitQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// DefaultLimit aplica el valor por defecto si Limit es cero.
func (q *LimitQuery) DefaultLimit(def int) {
	if q.Limit <= 0 {
		q.Limit = def
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
