package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the {status, data} response shape used by auth, order and
// content endpoints. Catalog reads answer bare entities instead; existing
// clients depend on both shapes, so neither is unified into the other.
type Envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// ErrorBody is the JSON error shape shared by every handler.
type ErrorBody struct {
	Msg   string `json:"msg"`
	Error string `json:"error,omitempty"`
}

// RespondJSON writes a bare JSON payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondSuccess writes the {status:"success", data} envelope.
func RespondSuccess(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, Envelope{Status: "success", Data: data})
}

// RespondError writes the {msg, error?} error body. err may be nil when the
// failure carries no diagnostic beyond the message.
func RespondError(w http.ResponseWriter, status int, msg string, err error) {
	body := ErrorBody{Msg: msg}
	if err != nil {
		body.Error = err.Error()
	}
	RespondJSON(w, status, body)
}
