package http

import "net/http"

// NotFoundHandler answers unknown routes with the same JSON error shape the
// rest of the API uses, so SPA clients never see a text/plain 404.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "no such route: "+r.URL.Path)
	})
}
