package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit es cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit == 0 {
		p.Limit = 20
	}
}

// Validate aplica valores por defecto y valida los límites.
func (p *PageRequest) Validate() error {
	p.DefaultPage()
	return validateStruct(p)
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
