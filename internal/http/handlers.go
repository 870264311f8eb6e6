package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fantafav/internal/roster"
	"github.com/mauv0809/fantafav/internal/viewmodel"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// FetchPlayersHandler loads the roster from the configured source. A ?url=
// override is honoured only when AllowSourceOverride is set.
func (s *Server) FetchPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := s.Cfg.RosterURL
		if override := r.URL.Query().Get("url"); override != "" && override != source {
			if !s.Cfg.AllowSourceOverride {
				log.Warn("Rejected roster source override", "url", override, "request_id", requestIDFromContext(r))
				http.Error(w, "Roster source override is disabled", http.StatusForbidden)
				return
			}
			source = override
		}
		log.Info("Starting roster fetch...", "source", source, "request_id", requestIDFromContext(r))

		if err := s.ViewModel.FetchPlayers(r.Context(), source); err != nil {
			http.Error(w, s.ViewModel.State().ErrorMessage, fetchErrorStatus(err))
			return
		}
		state := s.ViewModel.State()
		log.Info("Roster fetch finished", "players", len(state.Players), "favourites", len(state.Favourites))
		writeJSON(w, http.StatusOK, state.Players)
	}
}

// ListPlayersHandler returns the active list, or the whole roster with ?all=true.
func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := s.ViewModel.State()
		if r.URL.Query().Get("all") == "true" {
			writeJSON(w, http.StatusOK, state.Players)
			return
		}
		writeJSON(w, http.StatusOK, state.DataSource)
	}
}

func (s *Server) ListFavouritesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.ViewModel.State().Favourites)
	}
}

// SearchHandler feeds ?q= to the search box and returns the active list.
func (s *Server) SearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ViewModel.ApplySearchText(r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, s.ViewModel.State().DataSource)
	}
}

func (s *Server) AddFavouriteHandler() http.HandlerFunc {
	return s.favouriteHandler("add", func(r *http.Request, id int) (bool, error) {
		if isDryRunFromContext(r) {
			return true, nil
		}
		return true, s.ViewModel.AddFavourite(r.Context(), id)
	})
}

func (s *Server) RemoveFavouriteHandler() http.HandlerFunc {
	return s.favouriteHandler("remove", func(r *http.Request, id int) (bool, error) {
		if isDryRunFromContext(r) {
			return false, nil
		}
		return false, s.ViewModel.RemoveFavourite(r.Context(), id)
	})
}

func (s *Server) ToggleFavouriteHandler() http.HandlerFunc {
	return s.favouriteHandler("toggle", func(r *http.Request, id int) (bool, error) {
		if isDryRunFromContext(r) {
			return !s.ViewModel.IsFavourite(id), nil
		}
		err := s.ViewModel.ToggleFavourite(r.Context(), id)
		return s.ViewModel.IsFavourite(id), err
	})
}

// favouriteHandler parses the {id} path value and runs apply. In dry-run mode
// apply only reports the flag the player would end up with.
func (s *Server) favouriteHandler(action string, apply func(r *http.Request, id int) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, "Invalid player id", http.StatusBadRequest)
			return
		}
		dryRun := isDryRunFromContext(r)
		favourite, err := apply(r, id)
		if err != nil {
			log.Error("Failed to persist favourites", "action", action, "playerID", id, "error", err)
			http.Error(w, "Failed to persist favourites", http.StatusInternalServerError)
			return
		}
		if dryRun {
			log.Info("[Dry Run] Would update favourite", "action", action, "playerID", id, "favourite", favourite)
		}
		writeJSON(w, http.StatusOK, favouriteResponse{ID: id, Favourite: favourite, DryRun: dryRun})
	}
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.ViewModel.State())
	}
}

func (s *Server) SetModeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := viewmodel.ParseMode(r.URL.Query().Get("value"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.ViewModel.SetMode(mode)
		writeJSON(w, http.StatusOK, s.ViewModel.State())
	}
}

func (s *Server) SetFilterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filtered, err := strconv.ParseBool(r.URL.Query().Get("value"))
		if err != nil {
			http.Error(w, "Invalid filter value", http.StatusBadRequest)
			return
		}
		s.ViewModel.SetFiltered(filtered)
		writeJSON(w, http.StatusOK, s.ViewModel.State())
	}
}

// fetchErrorStatus maps roster errors onto response codes.
func fetchErrorStatus(err error) int {
	switch {
	case errors.Is(err, roster.ErrInvalidSource):
		return http.StatusBadRequest
	case errors.Is(err, roster.ErrNetwork), errors.Is(err, roster.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
