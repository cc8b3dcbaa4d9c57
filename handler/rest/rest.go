package rest

import (
	"errors"
	"net/http"

	"vcop/core"
	"vcop/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	assets core.IAssetService,
	prices core.IPriceService,
	risks core.IRiskService,
	positions core.IPositionService,
	psm core.IPSMService,
	calls core.ICallService,
	preferences core.IPreferenceService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/assets", assetsHandler(assets))
	router.Get("/prices", pricesHandler(assets, prices))
	router.Get("/prices/{symbol}", priceHandler(assets, prices))
	router.Get("/risk", riskHandler(risks))
	router.Get("/positions/{owner}", positionsHandler(positions))
	router.Get("/psm", psmHandler(psm))
	router.Get("/psm/quote", psmQuoteHandler(psm))
	router.Post("/calls/{action}", callsHandler(calls))
	router.Get("/preferences", preferencesHandler(preferences))
	router.Get("/preferences/{key}", preferenceHandler(preferences))
	router.Put("/preferences/{key}", updatePreferenceHandler(preferences))

	return router
}
