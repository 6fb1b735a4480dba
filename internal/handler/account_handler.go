package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tudorv/payme/internal/models"
	"github.com/tudorv/payme/internal/service"
)

// AccountHandler serves login, signup, account lookup, and funding.
type AccountHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

func NewAccountHandler(accounts *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/signup", h.Signup).Methods(http.MethodPost)
	router.HandleFunc("/api/user/{username}", h.GetAccount).Methods(http.MethodGet)
	router.HandleFunc("/api/add-funds", h.AddFunds).Methods(http.MethodPost)
}

// Login is an existence check by username; there are no credentials.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	account, err := h.accounts.Login(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	account, err := h.accounts.Signup(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SignupResponse{
		Success:  true,
		Username: account.Username,
	})
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	account, err := h.accounts.Get(r.Context(), username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	var req models.FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	if err := h.accounts.Fund(r.Context(), req.Username, req.Amount.Float64()); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
