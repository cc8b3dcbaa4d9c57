package rest

import (
	"net/http"

	"vcop/core"
	"vcop/handler/param"
	"vcop/handler/render"
	"vcop/pkg/number"
)

func psmHandler(psm core.IPSMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := psm.Stats(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, stats)
	}
}

func psmQuoteHandler(psm core.IPSMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Action string `schema:"action"`
			Amount string `schema:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := number.Parse(params.Amount)
		if err != nil {
			render.Error(w, core.ErrInvalidAmount)
			return
		}

		quote, err := psm.Quote(r.Context(), core.Action(params.Action), amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, quote)
	}
}
