package http

import (
	"encoding/json"
	"net/http"

	"github.com/altech-app/cloudsync/internal/app"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/utils"
	"github.com/altech-app/cloudsync/models"
)

func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listQuotes").Msg(app.MsgNoAccountIDProvided)
		http.Error(w, app.MsgNoAccountIDProvided, http.StatusBadRequest)
		return
	}

	quotes, err := h.services.QuoteService.ListQuotes(ctx, accountID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listQuotes").Msg("error listing quotes")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	response := models.QuoteListResponse{
		Quotes: quotes,
		Length: len(quotes),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) upsertQuotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.upsertQuotes").Msg(app.MsgNoAccountIDProvided)
		http.Error(w, app.MsgNoAccountIDProvided, http.StatusBadRequest)
		return
	}

	var upsertRequest models.UpsertQuotesRequest
	if err := json.NewDecoder(r.Body).Decode(&upsertRequest); err != nil {
		log.Err(err).Str("func", "*Handler.upsertQuotes").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	writtenAt, err := h.services.QuoteService.UpsertQuotes(ctx, accountID, upsertRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upsertQuotes").Msg("error upserting quotes")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.UpsertQuotesResponse{WrittenAt: writtenAt}, http.StatusOK)
}
