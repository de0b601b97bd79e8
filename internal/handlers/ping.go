package handlers

import (
	"fmt"
	"net/http"

	"github.com/grafbee/procurement-service/internal/utils"

	"github.com/rs/zerolog/log"
)

// PingHandler обрабатывает GET запрос к /api/ping
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "ok"); err != nil {
		log.Error().Err(err).Msg("failed to write ping response")
	}
}
