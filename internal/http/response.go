package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// WriteJsonResponse writes the shared response envelope. Clients branch on
// the "ok" field; "statusCode" doubles as the HTTP status.
func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Add(KeyHeaderContentType, ValueHeaderJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if _, ok := body["ok"]; !ok {
		if v, exists := body["statusCode"]; exists {
			code, isInt := v.(int)
			body["ok"] = isInt && code < http.StatusBadRequest
		}
	}
	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}
