package http

import (
	"net/http"

	"github.com/altech-app/cloudsync/internal/app"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/utils"
)

// deleteAccountData removes every synced document and quote stored for the
// authenticated account. Per-document deletion is not supported; a device
// that wants a clean slate wipes the whole account and re-pushes.
func (h *Handler) deleteAccountData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, found := utils.GetAccountIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteAccountData").Msg(app.MsgNoAccountIDProvided)
		http.Error(w, app.MsgNoAccountIDProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.DocumentService.DeleteDocuments(ctx, accountID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteAccountData").Msg("error deleting account documents")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if err := h.services.QuoteService.DeleteQuotes(ctx, accountID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteAccountData").Msg("error deleting account quotes")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
