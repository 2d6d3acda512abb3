package api

import (
	"net/http"

	"github.com/seantiz/abacus/internal/calc"
)

type keypadResponse struct {
	Buttons []calc.Button `json:"buttons"`
	Rows    int           `json:"rows"`
	Columns int           `json:"columns"`
}

func (s *Server) handleGetKeypad(w http.ResponseWriter, r *http.Request) {
	buttons := calc.Keypad()

	var rows, cols int
	for _, b := range buttons {
		rows = max(rows, b.Row+b.RowSpan)
		cols = max(cols, b.Column+1)
	}

	s.writeJSON(w, http.StatusOK, keypadResponse{
		Buttons: buttons,
		Rows:    rows,
		Columns: cols,
	})
}
