package http

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"viagens/internal/catalog"
	"viagens/internal/chat"
	"viagens/internal/core"
)

// sanitizeInput removes control characters except tab and newlines, and
// trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// isHTMXRequest reports whether the dashboard issued the request and
// expects an HTML partial.
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// errorStatus maps domain errors to the status and message shown to the
// client. Unknown errors are internal.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrUnknownCategory):
		return http.StatusUnprocessableEntity, "Categoria inválida"
	case errors.Is(err, core.ErrEmptyDescription):
		return http.StatusUnprocessableEntity, "Descrição obrigatória"
	case errors.Is(err, core.ErrDescriptionTooLong):
		return http.StatusUnprocessableEntity, "Descrição muito longa"
	case errors.Is(err, core.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, "Valor inválido"
	case errors.Is(err, catalog.ErrUnknownScenario):
		return http.StatusUnprocessableEntity, "Cenário de ônibus desconhecido"
	case errors.Is(err, catalog.ErrUnknownStay):
		return http.StatusNotFound, "Hospedagem não encontrada"
	case errors.Is(err, chat.ErrEmptyQuestion):
		return http.StatusUnprocessableEntity, "Pergunta vazia"
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "Requisição muito grande"
	case errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, "Formato de requisição inválido"
	}
	return http.StatusInternalServerError, "Erro interno"
}

var templateFuncs = template.FuncMap{
	"brl": core.FormatBRL,
	"rating": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
	"inc": func(i int) int {
		return i + 1
	},
	"isUser": func(role chat.Role) bool {
		return role == chat.RoleUser
	},
}
