package controllers

import (
	"net/http"

	"github.com/novamart/orderhub-backend/api/responses"
	"github.com/novamart/orderhub-backend/api/validators"
	"github.com/novamart/orderhub-backend/internal/search"
	"github.com/novamart/orderhub-backend/pkg/logger"
)

// SearchItems answers substring searches over the item catalog. The blank
// query check lives in the service so every caller gets the same answer.
func SearchItems(svc search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.SanitizeString(r.URL.Query().Get("query"), 200)
		responses.WriteEnvelope(w, svc.Search(r.Context(), query))
	}
}
