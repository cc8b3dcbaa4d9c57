package handler

import (
	"net/http"

	"vcop/core"
	"vcop/handler/rest"
)

// Server server
type Server struct {
	assets      core.IAssetService
	prices      core.IPriceService
	risks       core.IRiskService
	positions   core.IPositionService
	psm         core.IPSMService
	calls       core.ICallService
	preferences core.IPreferenceService
}

// New new server function
func New(
	assets core.IAssetService,
	prices core.IPriceService,
	risks core.IRiskService,
	positions core.IPositionService,
	psm core.IPSMService,
	calls core.ICallService,
	preferences core.IPreferenceService,
) Server {
	return Server{
		assets:      assets,
		prices:      prices,
		risks:       risks,
		positions:   positions,
		psm:         psm,
		calls:       calls,
		preferences: preferences,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	return rest.Handle(s.assets, s.prices, s.risks, s.positions, s.psm, s.calls, s.preferences)
}
