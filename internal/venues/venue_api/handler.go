package venue_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"gigboard/internal/errs"
	"gigboard/internal/logger"
	"gigboard/internal/models"
	"gigboard/internal/utils"
	"gigboard/internal/venues"
)

type Handler struct {
	VenueService *venues.VenueService
	Logger       *logger.Logger
}

func respond(w http.ResponseWriter, status int, payload utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the service error taxonomy onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		respond(w, http.StatusNotFound, utils.ErrorResponse(message, err.Error()))
	case errs.IsValidation(err):
		respond(w, http.StatusBadRequest, utils.ErrorResponse(message, err.Error()))
	default:
		if h.Logger != nil {
			h.Logger.Error("VENUE", fmt.Sprintf("%s: %v", message, err))
		}
		respond(w, http.StatusInternalServerError, utils.ErrorResponse(message, err.Error()))
	}
}

func venueIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "venueId"), 10, 64)
	if err != nil {
		return 0, errs.Validationf("venue id must be an integer")
	}
	return id, nil
}

// decodeRequest accepts either a JSON body or the classic form post.
func decodeRequest(r *http.Request) (models.VenueRequest, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req models.VenueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errs.Validationf("invalid request body: %v", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return models.VenueRequest{}, errs.Validationf("invalid form data: %v", err)
	}
	return models.VenueRequest{
		Name:               r.PostFormValue("name"),
		City:               r.PostFormValue("city"),
		State:              r.PostFormValue("state"),
		Address:            r.PostFormValue("address"),
		Phone:              r.PostFormValue("phone"),
		Genres:             models.GenreList(r.PostForm["genres"]),
		ImageLink:          r.PostFormValue("image_link"),
		FacebookLink:       r.PostFormValue("facebook_link"),
		Website:            r.PostFormValue("website_link"),
		SeekingTalent:      formBool(r, "seeking_talent"),
		SeekingDescription: r.PostFormValue("seeking_description"),
	}, nil
}

// formBool treats a present checkbox as true unless explicitly "false".
func formBool(r *http.Request, field string) bool {
	values, ok := r.PostForm[field]
	if !ok || len(values) == 0 {
		return false
	}
	return values[0] != "false" && values[0] != "0"
}

// ListVenues serves GET /venues: all venues grouped by location.
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := h.VenueService.ListGrouped(r.Context())
	if err != nil {
		h.writeError(w, "Could not list venues", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("venues", groups))
}

// SearchVenues serves POST /venues/search with the search_term form field.
func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid search form", errs.Validationf("invalid form data: %v", err))
		return
	}
	term := r.PostFormValue("search_term")

	results, err := h.VenueService.Search(r.Context(), term)
	if err != nil {
		h.writeError(w, "Could not search venues", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("search results", results))
}

// GetVenue serves GET /venues/{venueId}: the full venue page payload.
func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := venueIDParam(r)
	if err != nil {
		h.writeError(w, "Invalid venue id", err)
		return
	}

	detail, err := h.VenueService.GetDetail(r.Context(), id)
	if err != nil {
		h.writeError(w, "Venue not found", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("venue", detail))
}

// NewVenueForm serves GET /venues/create: the form vocabularies.
func (h *Handler) NewVenueForm(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, utils.SuccessResponse("venue form", models.NewFormOptions()))
}

// CreateVenue serves POST /venues/create.
func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.writeError(w, "Could not read venue form", err)
		return
	}

	venue, err := h.VenueService.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, fmt.Sprintf("An error occurred. Venue %s could not be listed.", req.Name), err)
		return
	}
	respond(w, http.StatusCreated,
		utils.SuccessResponse(fmt.Sprintf("Venue %s was successfully listed!", venue.Name), venue))
}

// EditVenueForm serves GET /venues/{venueId}/edit: current values plus the
// form vocabularies, for client-side prepopulation.
func (h *Handler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, err := venueIDParam(r)
	if err != nil {
		h.writeError(w, "Invalid venue id", err)
		return
	}

	detail, err := h.VenueService.GetDetail(r.Context(), id)
	if err != nil {
		h.writeError(w, "Venue not found", err)
		return
	}

	respond(w, http.StatusOK, utils.SuccessResponse("venue form", map[string]interface{}{
		"venue":   detail.Venue,
		"options": models.NewFormOptions(),
	}))
}

// UpdateVenue serves POST /venues/{venueId}/edit.
func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := venueIDParam(r)
	if err != nil {
		h.writeError(w, "Invalid venue id", err)
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		h.writeError(w, "Could not read venue form", err)
		return
	}

	venue, err := h.VenueService.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, "Error updating venue!", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("Venue updated successfully!", venue))
}

// DeleteVenue serves POST /venues/{venueId}/delete.
func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := venueIDParam(r)
	if err != nil {
		h.writeError(w, "Invalid venue id", err)
		return
	}

	venue, err := h.VenueService.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, "Error deleting venue!", err)
		return
	}
	respond(w, http.StatusOK,
		utils.SuccessResponse(fmt.Sprintf("Venue %s was deleted!", venue.Name), nil))
}
