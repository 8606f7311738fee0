package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// convertRequest is the JSON body of POST /api/convert/{category}. Value may
// be a JSON number or a string.
type convertRequest struct {
	Value    json.RawMessage `json:"value"`
	FromUnit string          `json:"from_unit"`
	ToUnit   string          `json:"to_unit"`
}

type convertResponse struct {
	Result    string          `json:"result"`
	Category  domain.Category `json:"category"`
	FromUnit  string          `json:"from_unit"`
	ToUnit    string          `json:"to_unit"`
	Value     float64         `json:"value"`
	Converted float64         `json:"converted"`
	Formatted string          `json:"formatted"`
}

type errorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
}

func (s *Server) handleAPIConvert(w http.ResponseWriter, r *http.Request) {
	var body convertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.converter.Convert(r.Context(), domain.Request{
		Category: domain.Category(r.PathValue("category")),
		FromUnit: body.FromUnit,
		ToUnit:   body.ToUnit,
		RawValue: rawValue(body.Value),
	})
	if err != nil {
		kind := domain.KindOf(err)
		status := http.StatusUnprocessableEntity
		switch kind {
		case domain.KindUnknownCategory:
			status = http.StatusNotFound
		case domain.KindInternal:
			s.logger.Error("conversion failed", "error", err)
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: domain.UserMessage(err), Kind: kind})
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Result:    result.Text,
		Category:  result.Category,
		FromUnit:  result.FromUnit,
		ToUnit:    result.ToUnit,
		Value:     result.Value,
		Converted: result.Converted,
		Formatted: result.Formatted,
	})
}

func (s *Server) handleAPIUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.converter.Units(domain.Category(r.PathValue("category")))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.UserMessage(err), Kind: domain.KindOf(err)})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"units": units})
}

// rawValue turns the JSON value back into the text the engine validates:
// strings are unquoted, numbers pass through verbatim, a missing value is blank.
func rawValue(m json.RawMessage) string {
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(m))
}
