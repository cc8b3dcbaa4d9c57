package rest

import (
	"net/http"

	"vcop/core"
	"vcop/handler/render"
	"vcop/handler/views"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
)

func assetsHandler(assets core.IAssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := assets.All(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, all)
	}
}

// pricesHandler an asset whose price is unavailable is listed with its error
func pricesHandler(assets core.IAssetService, prices core.IPriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		all, err := assets.All(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		list := make([]*views.Price, 0, len(all))
		for _, asset := range all {
			view := &views.Price{Symbol: asset.Symbol}
			if view.Price, err = prices.GetPriceUSD(ctx, asset); err != nil {
				log.WithError(err).Errorln("GetPriceUSD", asset.Symbol)
				view.Error = err.Error()
			}

			list = append(list, view)
		}

		render.JSON(w, list)
	}
}

func priceHandler(assets core.IAssetService, prices core.IPriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		asset, err := assets.FindBySymbol(ctx, chi.URLParam(r, "symbol"))
		if err != nil {
			render.Error(w, err)
			return
		}

		price, err := prices.GetPriceUSD(ctx, asset)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Price{Symbol: asset.Symbol, Price: price})
	}
}
