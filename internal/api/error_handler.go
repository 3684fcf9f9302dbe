package api

import (
	"encoding/json"
	"net/http"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/logger"
	"go.uber.org/zap"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error", zap.Error(appErr))
	} else {
		log.Warn("client error", zap.Error(appErr))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
