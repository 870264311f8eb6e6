package http

import (
	"net/http"

	"github.com/mauv0809/fantafav/internal/config"
	"github.com/mauv0809/fantafav/internal/viewmodel"
)

type Server struct {
	ViewModel      *viewmodel.ViewModel
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

// favouriteResponse reports the favourite flag of one player after a mutation.
type favouriteResponse struct {
	ID        int  `json:"id"`
	Favourite bool `json:"favourite"`
	DryRun    bool `json:"dryRun,omitempty"`
}
