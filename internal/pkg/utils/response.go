package utils

import (
	"errors"
	"net/http"

	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/responses"
	"ehrbridge-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildSuccessResponseWithTotal(w http.ResponseWriter, code int, message string, total int, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
		Total:   &total,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	response := responses.ErrorResponseDTO{
		Success: false,
		Message: err.Error(),
	}

	var ehrErr *exceptions.EHRError
	if errors.As(err, &ehrErr) {
		code = ehrErr.HTTPStatus()
		response.Kind = ehrErr.Kind.String()
		response.Code = ehrErr.Code
		response.Field = ehrErr.Field
		log.Error("request failed",
			zap.String("kind", ehrErr.Kind.String()),
			zap.Int(constvars.LoggingStatusCodeKey, code),
			zap.Error(err),
		)
	} else {
		log.Error("request failed", zap.Error(err))
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}
