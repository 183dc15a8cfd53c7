package show_api

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
	"gigboard/internal/shows"
	"gigboard/internal/utils"
)

type Handler struct {
	ShowService *shows.ShowService
	Logger      *logger.Logger
}

func respond(w http.ResponseWriter, status int, payload utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		respond(w, http.StatusNotFound, utils.ErrorResponse(message, err.Error()))
	case errs.IsValidation(err):
		respond(w, http.StatusBadRequest, utils.ErrorResponse(message, err.Error()))
	default:
		if h.Logger != nil {
			h.Logger.Error("SHOW", fmt.Sprintf("%s: %v", message, err))
		}
		respond(w, http.StatusInternalServerError, utils.ErrorResponse(message, err.Error()))
	}
}

func decodeRequest(r *http.Request) (models.ShowRequest, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req models.ShowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errs.Validationf("invalid request body: %v", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return models.ShowRequest{}, errs.Validationf("invalid form data: %v", err)
	}

	artistID, err := strconv.ParseInt(r.PostFormValue("artist_id"), 10, 64)
	if err != nil {
		return models.ShowRequest{}, errs.Validationf("artist_id must be an integer")
	}
	venueID, err := strconv.ParseInt(r.PostFormValue("venue_id"), 10, 64)
	if err != nil {
		return models.ShowRequest{}, errs.Validationf("venue_id must be an integer")
	}

	return models.ShowRequest{
		ArtistID:  artistID,
		VenueID:   venueID,
		StartTime: r.PostFormValue("start_time"),
	}, nil
}

// ListShows serves GET /shows: every booking from storage.
func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	items, err := h.ShowService.List(r.Context())
	if err != nil {
		h.writeError(w, "Could not list shows", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("shows", items))
}

// NewShowForm serves GET /shows/create.
func (h *Handler) NewShowForm(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, utils.SuccessResponse("show form", models.NewFormOptions()))
}

// CreateShow serves POST /shows/create.
func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.writeError(w, "Could not read show form", err)
		return
	}

	show, err := h.ShowService.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, "An error occurred. Show could not be listed.", err)
		return
	}
	respond(w, http.StatusCreated, utils.SuccessResponse("Show was successfully listed!", show))
}

// ShowQR serves GET /shows/{showId}/qr: a PNG QR code of the show's
// public page.
func (h *Handler) ShowQR(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "showId"), 10, 64)
	if err != nil {
		h.writeError(w, "Invalid show id", errs.Validationf("show id must be an integer"))
		return
	}

	png, err := h.ShowService.ShareQR(r.Context(), id)
	if err != nil {
		h.writeError(w, "Could not generate show QR", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
