package artist_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"gigboard/internal/artists"
	"gigboard/internal/errs"
	"gigboard/internal/logger"
	"gigboard/internal/models"
	"gigboard/internal/utils"
)

type Handler struct {
	ArtistService *artists.ArtistService
	Logger        *logger.Logger
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
			h.Logger.Error("ARTIST", fmt.Sprintf("%s: %v", message, err))
		}
		respond(w, http.StatusInternalServerError, utils.ErrorResponse(message, err.Error()))
	}
}

func artistIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "artistId"), 10, 64)
	if err != nil {
		return 0, errs.Validationf("artist id must be an integer")
	}
	return id, nil
}

func decodeRequest(r *http.Request) (models.ArtistRequest, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req models.ArtistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errs.Validationf("invalid request body: %v", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return models.ArtistRequest{}, errs.Validationf("invalid form data: %v", err)
	}
	return models.ArtistRequest{
		Name:               r.PostFormValue("name"),
		City:               r.PostFormValue("city"),
		State:              r.PostFormValue("state"),
		Phone:              r.PostFormValue("phone"),
		Genres:             models.GenreList(r.PostForm["genres"]),
		ImageLink:          r.PostFormValue("image_link"),
		FacebookLink:       r.PostFormValue("facebook_link"),
		Website:            r.PostFormValue("website_link"),
		SeekingVenue:       formBool(r, "seeking_venue"),
		SeekingDescription: r.PostFormValue("seeking_description"),
	}, nil
}

func formBool(r *http.Request, field string) bool {
	values, ok := r.PostForm[field]
	if !ok || len(values) == 0 {
		return false
	}
	return values[0] != "false" && values[0] != "0"
}

// ListArtists serves GET /artists: the flat artist listing.
func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	items, err := h.ArtistService.List(r.Context())
	if err != nil {
		h.writeError(w, "Could not list artists", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("artists", items))
}

// SearchArtists serves POST /artists/search with the search_term form field.
func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid search form", errs.Validationf("invalid form data: %v", err))
		return
	}
	term := r.PostFormValue("search_term")

	results, err := h.ArtistService.Search(r.Context(), term)
	if err != nil {
		h.writeError(w, "Could not search artists", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("search results", results))
}

// GetArtist serves GET /artists/{artistId}: the full artist page payload.
func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := artistIDParam(r)
	if err != nil {
		h.writeError(w, "Invalid artist id", err)
		return
	}

	detail, err := h.ArtistService.GetDetail(r.Context(), id)
	if err != nil {
		h.writeError(w, "Artist not found", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("artist", detail))
}

// NewArtistForm serves GET /artists/create: the form vocabularies.
func (h *Handler) NewArtistForm(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, utils.SuccessResponse("artist form", models.NewFormOptions()))
}

// CreateArtist serves POST /artists/create.
func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.writeError(w, "Could not read artist form", err)
		return
	}

	artist, err := h.ArtistService.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, "Error when adding new artist!", err)
		return
	}
	respond(w, http.StatusCreated,
		utils.SuccessResponse(fmt.Sprintf("Artist %s was listed successfully!", artist.Name), artist))
}

// EditArtistForm serves GET /artists/{artistId}/edit: current values plus
// the form vocabularies.
func (h *Handler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, err := artistIDParam(r)
	if err != nil {
		h.writeError(w, "Invalid artist id", err)
		return
	}

	detail, err := h.ArtistService.GetDetail(r.Context(), id)
	if err != nil {
		h.writeError(w, "Artist not found", err)
		return
	}

	respond(w, http.StatusOK, utils.SuccessResponse("artist form", map[string]interface{}{
		"artist":  detail.Artist,
		"options": models.NewFormOptions(),
	}))
}

// UpdateArtist serves POST /artists/{artistId}/edit.
func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := artistIDParam(r)
	if err != nil {
		h.writeError(w, "Invalid artist id", err)
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		h.writeError(w, "Could not read artist form", err)
		return
	}

	artist, err := h.ArtistService.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, "Error updating artist!", err)
		return
	}
	respond(w, http.StatusOK, utils.SuccessResponse("Artist updated successfully!", artist))
}

// DeleteArtist serves POST /artists/{artistId}/delete.
func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := artistIDParam(r)
	if err != nil {
		h.writeError(w, "Invalid artist id", err)
		return
	}

	artist, err := h.ArtistService.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, "Error deleting artist!", err)
		return
	}
	respond(w, http.StatusOK,
		utils.SuccessResponse(fmt.Sprintf("Artist %s was deleted!", artist.Name), nil))
}
