package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tudorv/payme/internal/models"
	"github.com/tudorv/payme/internal/qrlink"
	"github.com/tudorv/payme/internal/service"
)

// RequestHandler serves request creation, retrieval, listing, and the
// respond endpoint backed by the settlement engine.
type RequestHandler struct {
	requests    *service.RequestService
	settlements *service.SettlementService
	// baseURL overrides the share-link origin; when empty the request's
	// Host header is used, as the original frontend expects.
	baseURL string
	logger  *slog.Logger
}

func NewRequestHandler(requests *service.RequestService, settlements *service.SettlementService, baseURL string, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		requests:    requests,
		settlements: settlements,
		baseURL:     baseURL,
		logger:      logger,
	}
}

func (h *RequestHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/requests", h.CreateRequest).Methods(http.MethodPost)
	router.HandleFunc("/api/requests/{id}", h.GetRequest).Methods(http.MethodGet)
	router.HandleFunc("/api/requests/{id}/respond", h.Respond).Methods(http.MethodPost)
	router.HandleFunc("/api/my-requests/{username}", h.ListMyRequests).Methods(http.MethodGet)
}

// CreateRequest persists the request, then renders the share-link QR code.
// The QR render is fire-and-forget with respect to persistence: a failure
// is reported in-band via qr_error while the id stays usable.
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	created, err := h.requests.Create(r.Context(), req.Amount.Float64(), req.Reason, req.CreatedBy)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := models.CreateRequestResponse{ID: created.ID}

	url := qrlink.BuildURL(h.origin(r), created.ID)
	if data, err := qrlink.DataURI(url); err != nil {
		h.logger.Warn("QR rendering failed", "request_id", created.ID, "error", err)
		resp.QRError = err.Error()
	} else {
		resp.QRCodeData = data
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	req, err := h.requests.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	requests, err := h.requests.ListByCreator(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	if err := h.settlements.Respond(r.Context(), id, req.Username, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

func (h *RequestHandler) origin(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	return "http://" + r.Host
}
