package http

import (
	"net/http"

	"github.com/mauv0809/fantafav/internal/config"
	"github.com/mauv0809/fantafav/internal/viewmodel"
)

func NewServer(vm *viewmodel.ViewModel, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		ViewModel:      vm,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), requestIDMiddleware, paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("POST /fetch", Chain(s.FetchPlayersHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("GET /favourites", Chain(s.ListFavouritesHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("GET /search", Chain(s.SearchHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("POST /favourites/{id}", Chain(s.AddFavouriteHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("DELETE /favourites/{id}", Chain(s.RemoveFavouriteHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("POST /favourites/{id}/toggle", Chain(s.ToggleFavouriteHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("GET /state", Chain(s.StateHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("POST /mode", Chain(s.SetModeHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("POST /filter", Chain(s.SetFilterHandler(), requestIDMiddleware, paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
