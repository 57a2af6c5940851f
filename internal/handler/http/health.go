package http

import (
	"net/http"

	"github.com/altech-app/cloudsync/internal/utils"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, healthResponse{
		Status:  "ok",
		Version: h.app.Version,
	}, http.StatusOK)
}
