package rest

import (
	"net/http"

	"vcop/core"
	"vcop/handler/param"
	"vcop/handler/render"
	"vcop/handler/views"
	"vcop/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
)

func callsHandler(calls core.ICallService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req core.CallRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		req.Action = core.Action(chi.URLParam(r, "action"))

		list, err := calls.Build(ctx, &req)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Infoln("build calls", req.Action)
			render.Error(w, err)
			return
		}

		render.JSON(w, views.CallBundle{
			ID:     id.BundleID(list),
			Action: req.Action,
			Calls:  list,
		})
	}
}
