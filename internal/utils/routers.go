package utils

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	PathVarFormat = "{%s}"
)

type Route struct {
	Name        string
	Method      string
	Pattern     string
	QueryParams []string
	HandlerFunc http.HandlerFunc
}

// NewRouter builds a mux router serving the given routes under prefixPath.
func NewRouter(prefixPath string, routes []Route) *mux.Router {
	router := mux.NewRouter().PathPrefix(prefixPath).Subrouter()

	for _, route := range routes {
		r := router.Path(route.Pattern).
			Name(route.Name).
			Handler(loggerMiddleware(route.HandlerFunc, route.Name))

		// routes with no method serve all of them (e.g. proxied web traffic)
		if route.Method != "" {
			r.Methods(route.Method)
		}

		if len(route.QueryParams) > 0 {
			r.Queries(route.QueryParams...)
		}
	}

	return router
}

func loggerMiddleware(next http.Handler, routeName string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("%s %s (%s)", r.Method, r.RequestURI, routeName)
		next.ServeHTTP(w, r)
	})
}
