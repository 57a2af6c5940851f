package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] intended to be registered as
// the router's MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// Chi's default behaviour is to respond with HTTP 405 Method Not Allowed
// whenever a request path matches a registered route but the HTTP method is
// not handled. This function overrides that: if the requested method is not
// registered for the matched route, it responds with HTTP 404 Not Found
// instead, hiding the existence of the route from callers that probe with
// unsupported methods.
//
// If the requested method IS registered for the matched route, the request is
// forwarded to the router's normal ServeHTTP pipeline.
//
// The lookup compares each registered route pattern against the raw request
// path; parameterised segments are matched with chi's own route context, so
// /api/sync/documents/{kind} is found for /api/sync/documents/settings.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		var foundRoute chi.Route
		for _, route := range router.Routes() {
			if routePatternMatches(route.Pattern, requestedURL) {
				foundRoute = route
				break
			}
		}

		// If the matched route does not handle the requested HTTP method,
		// return 404 instead of the default 405.
		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}

// routePatternMatches reports whether a chi route pattern matches the given
// request path. Exact patterns are compared directly; patterns containing
// placeholders are matched with a throwaway [chi.RouteContext].
func routePatternMatches(pattern, path string) bool {
	if pattern == path {
		return true
	}

	rctx := chi.NewRouteContext()
	tree := chi.NewRouter()
	tree.Handle(pattern, http.NotFoundHandler())
	return tree.Match(rctx, http.MethodGet, path)
}
