package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

func SendJSON(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	_, err := SendJSON(w, http.StatusOK, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, mines.ErrOutOfRange),
		errors.Is(err, mines.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, mines.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func sendErrorOrLog(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := errorStatus(err)
	if _, sendErr := SendJSON(w, status, wrapError(err)); sendErr != nil {
		logger.Error(
			"failed to send error message",
			slog.Any("sent error", err),
			slog.Any("error", sendErr),
		)
	}
}
