package rest

import (
	"net/http"

	"vcop/core"
	"vcop/handler/param"
	"vcop/handler/render"
	"vcop/handler/views"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

func riskHandler(risks core.IRiskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input core.RiskInput
		if err := param.Binding(r, &input); err != nil {
			render.BadRequest(w, err)
			return
		}

		metrics, err := risks.Estimate(r.Context(), &input)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Risk{Input: input, Metrics: metrics})
	}
}

func positionsHandler(positions core.IPositionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := chi.URLParam(r, "owner")
		if !common.IsHexAddress(owner) {
			render.Error(w, twirp.InvalidArgumentError("owner", "must be a hex address"))
			return
		}

		list, err := positions.List(r.Context(), common.HexToAddress(owner))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}
