package rest

import (
	"encoding/json"
	"net/http"

	"vcop/core"
	"vcop/handler/render"
	"vcop/handler/views"

	"github.com/fatih/structs"
	"github.com/go-chi/chi"
	"github.com/spf13/cast"
)

func preferencesHandler(preferences core.IPreferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, preferences.Get())
	}
}

func preferenceHandler(preferences core.IPreferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		prefs := structs.New(preferences.Get())
		prefs.TagName = "json"

		value, ok := prefs.Map()[key]
		if !ok {
			render.Error(w, core.ErrInvalidParams)
			return
		}

		render.JSON(w, views.Preference{Key: key, Value: value})
	}
}

func updatePreferenceHandler(preferences core.IPreferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Value interface{} `json:"value"`
		}

		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.BadRequest(w, err)
			return
		}

		prefs, err := preferences.Update(r.Context(), chi.URLParam(r, "key"), cast.ToString(body.Value))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, prefs)
	}
}
