package api

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Envelope selects the outer response shape of a route. It is fixed when
// the route is registered.
type Envelope int

const (
	// Legacy wraps payloads as {"code":0,"data":...}. Failures carry the
	// HTTP status in code plus a message.
	Legacy Envelope = iota
	// Modern wraps payloads as {"data":...,"error_code":0,"error_message":""}.
	Modern
)

// SuccessCode is the code of a successful legacy response.
const SuccessCode = 0

// LegacyResponse is the Legacy envelope.
type LegacyResponse struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// ModernResponse is the Modern envelope.
type ModernResponse struct {
	Data         any    `json:"data"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func (e Envelope) String() string {
	if e == Modern {
		return "modern"
	}
	return "legacy"
}

func (e Envelope) success(data any) any {
	if e == Modern {
		return ModernResponse{Data: data}
	}
	return LegacyResponse{Code: SuccessCode, Data: data}
}

func (e Envelope) failure(status int, msg string) any {
	if e == Modern {
		return ModernResponse{ErrorCode: status, ErrorMessage: msg}
	}
	return LegacyResponse{Code: status, Message: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
