package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"pipid/internal/identity/service"
	apperrors "pipid/pkg/errors"
	httputil "pipid/pkg/http"
	"pipid/pkg/ingester"
	"pipid/pkg/logger"
)

type IdentityHandler struct {
	service service.IdentityService
	log     *logger.Logger
}

func NewIdentityHandler(service service.IdentityService, log *logger.Logger) *IdentityHandler {
	return &IdentityHandler{
		service: service,
		log:     log,
	}
}

func (h *IdentityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/identity/validate", h.Validate)
	router.POST("/api/v1/identity/normalize", h.Normalize)
	router.POST("/api/v1/identity/ingest", h.Ingest)
}

func (h *IdentityHandler) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doc any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.BadRequest("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Validate", "error", writeErr)
		}
		return
	}

	result := h.service.Validate(doc)
	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "error", err)
	}
}

func (h *IdentityHandler) Normalize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doc any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.BadRequest("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Normalize", "error", writeErr)
		}
		return
	}

	normalized, err := h.service.Normalize(doc)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Normalize", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, normalized); err != nil {
		h.log.Error("failed to write success response", "handler", "Normalize", "error", err)
	}
}

type IngestRequest struct {
	URL       string `json:"url"`
	Validate  *bool  `json:"validate"`
	Normalize *bool  `json:"normalize"`
	Extract   string `json:"extract"`
}

func (h *IdentityHandler) Ingest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.BadRequest("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Ingest", "error", writeErr)
		}
		return
	}

	if req.Extract != "" && req.Extract != "preferences" && req.Extract != "behaviors" {
		if writeErr := httputil.WriteError(w, apperrors.BadRequest("extract must be \"preferences\" or \"behaviors\"")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Ingest", "error", writeErr)
		}
		return
	}

	// Validation and normalization both default to on, like the SDK.
	opts := ingester.LoadOptions{
		SkipValidate:  req.Validate != nil && !*req.Validate,
		SkipNormalize: req.Normalize != nil && !*req.Normalize,
	}

	doc, err := h.service.Ingest(r.Context(), req.URL, opts)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Ingest", "error", writeErr)
		}
		return
	}

	var payload any = doc
	switch req.Extract {
	case "preferences":
		payload = doc.Preferences()
	case "behaviors":
		payload = doc.Behaviors()
	}

	if err := httputil.WriteSuccess(w, payload); err != nil {
		h.log.Error("failed to write success response", "handler", "Ingest", "error", err)
	}
}
