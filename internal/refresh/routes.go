package refresh

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/groups", GroupsHandler)
	r.Post("/{group}", RefreshHandler)

	return r
}
