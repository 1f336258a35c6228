package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"wayfinder.app/internal/appconf"
	"wayfinder.app/internal/webui"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every endpoint on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)

	router.Handler(http.MethodGet, "/api/where/current-time.json", validateAPIKey(api, api.currentTimeHandler))

	router.Handler(http.MethodGet, "/api/where/navigation.json", validateAPIKey(api, api.navigationHandler))
	router.Handler(http.MethodGet, "/api/where/projection.json", validateAPIKey(api, api.projectionHandler))
	router.Handler(http.MethodGet, "/api/where/path.json", validateAPIKey(api, api.pathHandler))

	router.Handler(http.MethodGet, "/api/where/targets.json", validateAPIKey(api, api.targetsHandler))
	router.Handler(http.MethodGet, "/api/where/targets-for-location.json", validateAPIKey(api, api.targetsForLocationHandler))
	router.Handler(http.MethodGet, "/api/where/target/:id", validateAPIKey(api, api.targetHandler))

	router.Handler(http.MethodPost, "/api/where/sessions.json", validateAPIKey(api, api.createSessionHandler))
	router.Handler(http.MethodGet, "/api/where/session/:id", validateAPIKey(api, api.sessionHandler))
	router.Handler(http.MethodDelete, "/api/where/session/:id", validateAPIKey(api, api.deleteSessionHandler))
	router.Handler(http.MethodPost, "/api/where/session/:id/location", validateAPIKey(api, api.sessionLocationHandler))
	router.Handler(http.MethodPost, "/api/where/session/:id/heading", validateAPIKey(api, api.sessionHeadingHandler))
	router.Handler(http.MethodPost, "/api/where/session/:id/target", validateAPIKey(api, api.sessionTargetHandler))
}

// Routes returns the full handler chain: security headers, request logging,
// per-key rate limiting and gzip around the router. The debug pages are only
// mounted in development.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	if api.Config.Env() == appconf.Development {
		webui.New(api.Application).SetWebUIRoutes(router)
	}

	var handler http.Handler = CompressionMiddleware(router)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return api.WithSecurityHeaders(handler)
}
