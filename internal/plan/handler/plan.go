package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	bookingserrors "github.com/quirino-git/fbs-plan/internal/bookings/errors"
	"github.com/quirino-git/fbs-plan/internal/feed"
	"github.com/quirino-git/fbs-plan/internal/plan/service"
	apperrors "github.com/quirino-git/fbs-plan/pkg/errors"
	httputil "github.com/quirino-git/fbs-plan/pkg/http"
	"github.com/quirino-git/fbs-plan/pkg/logger"
)

type PlanHandler struct {
	service service.PlanService
	log     *logger.Logger
}

func NewPlanHandler(svc service.PlanService, log *logger.Logger) *PlanHandler {
	return &PlanHandler{
		service: svc,
		log:     log,
	}
}

// GetPlan builds a fresh plan. On a feed failure the last cached plan is
// served instead, marked stale; nothing previously loaded is invalidated by
// a failed cycle.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	plan, err := h.service.BuildPlan(r.Context())
	if err != nil {
		h.log.Error("Plan build failed", "error", err)

		if cached := h.service.CachedPlan(); cached != nil {
			stale := *cached
			stale.Stale = true
			if writeErr := httputil.WriteSuccess(w, stale); writeErr != nil {
				h.log.Error("failed to write success response", "handler", "GetPlan", "error", writeErr)
			}
			return
		}

		if writeErr := httputil.WriteError(w, h.translate(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetPlan", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, plan); err != nil {
		h.log.Error("failed to write success response", "handler", "GetPlan", "error", err)
	}
}

func (h *PlanHandler) GetCachedPlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cached := h.service.CachedPlan()
	if cached == nil {
		if writeErr := httputil.WriteError(w, apperrors.NotFound("Cached plan")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetCachedPlan", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cached); err != nil {
		h.log.Error("failed to write success response", "handler", "GetCachedPlan", "error", err)
	}
}

type bookRequest struct {
	PitchID string `json:"pitch_id"`
}

type bookResponse struct {
	BookingID string `json:"booking_id"`
}

func (h *PlanHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := ps.ByName("uid")

	var body bookRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}
	if body.PitchID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("'pitch_id' is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	id, err := h.service.BookFixture(r.Context(), uid, body.PitchID)
	if err != nil {
		if writeErr := httputil.WriteError(w, h.translate(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, bookResponse{BookingID: id}); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "error", err)
	}
}

func (h *PlanHandler) Undo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := ps.ByName("uid")

	if err := h.service.UndoFixture(r.Context(), uid); err != nil {
		if writeErr := httputil.WriteError(w, h.translate(err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Undo", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// translate maps domain failures to transport errors. Collision and missing
// local team are final for the attempt; the caller has to change pitch or
// time and resubmit, so neither is retried here.
func (h *PlanHandler) translate(err error) error {
	var statusErr *feed.StatusError

	switch {
	case errors.Is(err, bookingserrors.ErrCollision):
		return apperrors.Conflict("The booking was rejected because it overlaps an existing reservation")
	case errors.Is(err, bookingserrors.ErrNoLocalTeam):
		return apperrors.Validation("No local team could be resolved for the fixture", nil)
	case errors.Is(err, bookingserrors.ErrInvalidFixtureUID):
		return apperrors.InvalidInput("Fixture UID contains characters that cannot be tagged")
	case errors.Is(err, service.ErrFixtureNotFound):
		return apperrors.NotFound("Fixture")
	case errors.As(err, &statusErr):
		return apperrors.Unavailable("Fixture feed")
	default:
		return apperrors.Internal("Operation failed", err)
	}
}

func (h *PlanHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/plan", h.GetPlan)
	router.GET("/api/v1/plan/cached", h.GetCachedPlan)
	router.POST("/api/v1/plan/fixtures/:uid/booking", h.Book)
	router.DELETE("/api/v1/plan/fixtures/:uid/booking", h.Undo)
}
