package fogapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// envelope accepts both response shapes:
//
//	{"code":0,"data":...,"message":"..."}
//	{"data":...,"error_code":0,"error_message":""}
type envelope struct {
	Code         *int            `json:"code"`
	Message      string          `json:"message"`
	ErrorCode    *int            `json:"error_code"`
	ErrorMessage string          `json:"error_message"`
	Data         json.RawMessage `json:"data"`
}

func (e envelope) code() int {
	switch {
	case e.ErrorCode != nil:
		return *e.ErrorCode
	case e.Code != nil:
		return *e.Code
	default:
		return 0
	}
}

func (e envelope) message() string {
	if e.ErrorMessage != "" {
		return e.ErrorMessage
	}
	return e.Message
}

func decodeEnvelope(req *Request, status int, raw []byte, out any) error {
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	ok := status >= http.StatusOK && status < http.StatusMultipleChoices
	if !ok || decodeErr != nil || env.code() != 0 {
		apiErr := &APIError{
			Method: req.Method,
			Path:   req.Path,
			Status: status,
			Code:   env.code(),
		}
		switch {
		case decodeErr == nil && env.message() != "":
			apiErr.Message = env.message()
		case decodeErr != nil && ok:
			apiErr.Message = "malformed envelope: " + decodeErr.Error()
		default:
			apiErr.Message = strings.TrimSpace(http.StatusText(status))
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("fogapi: decode %s %s payload: %w", req.Method, req.Path, err)
	}
	return nil
}
