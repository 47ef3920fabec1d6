package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rental-booking-backend/internal/domain"
	"rental-booking-backend/internal/logger"
)

// envelope is the uniform JSON body for every API response.
type envelope struct {
	Status   string      `json:"status"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeData(w http.ResponseWriter, statusCode int, data interface{}, warnings []string) {
	writeJSON(w, statusCode, envelope{Status: "success", Data: data, Warnings: warnings})
}

// writeError maps a domain error kind to an HTTP status. Unclassified
// errors are reported as internal without leaking their message.
func writeError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	var de *domain.Error
	if errors.As(err, &de) {
		message = de.Message
		switch de.Kind {
		case domain.KindValidation:
			statusCode = http.StatusBadRequest
		case domain.KindNotFound:
			statusCode = http.StatusNotFound
		case domain.KindConflict:
			statusCode = http.StatusConflict
		case domain.KindState, domain.KindIneligibleCustomer,
			domain.KindInvalidExchange, domain.KindInvalidRefund:
			statusCode = http.StatusUnprocessableEntity
		default:
			statusCode = http.StatusInternalServerError
			message = "internal server error"
		}
	}
	if statusCode == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}
	writeJSON(w, statusCode, envelope{Status: "error", Message: message})
}
