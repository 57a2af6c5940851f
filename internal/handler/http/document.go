package http

import (
	"encoding/json"
	"net/http"

	"github.com/altech-app/cloudsync/internal/app"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/utils"
	"github.com/altech-app/cloudsync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getDocument").Msg(app.MsgNoAccountIDProvided)
		http.Error(w, app.MsgNoAccountIDProvided, http.StatusBadRequest)
		return
	}

	kind := models.DocumentKind(chi.URLParam(r, "kind"))

	document, err := h.services.DocumentService.GetDocument(ctx, accountID, kind)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDocument").Str("kind", string(kind)).Msg("error getting document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, document, http.StatusOK)
}

func (h *Handler) setDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.setDocument").Msg(app.MsgNoAccountIDProvided)
		http.Error(w, app.MsgNoAccountIDProvided, http.StatusBadRequest)
		return
	}

	kind := models.DocumentKind(chi.URLParam(r, "kind"))

	var setRequest models.SetDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&setRequest); err != nil {
		log.Err(err).Str("func", "*Handler.setDocument").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	writtenAt, err := h.services.DocumentService.SetDocument(ctx, accountID, kind, setRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.setDocument").Str("kind", string(kind)).Msg("error setting document")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SetDocumentResponse{WrittenAt: writtenAt}, http.StatusOK)
}
