// Package transport exposes the coordination core over HTTP/JSON.
package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/coordinator"
	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler contains the HTTP handlers for the coordinator API.
type Handler struct {
	core   *service.Core
	logger *zap.Logger
}

// NewHandler creates a Handler around the core facade.
func NewHandler(core *service.Core, logger *zap.Logger) *Handler {
	return &Handler{core: core, logger: logger.Named("http")}
}

// RegisterRoutes sets up all routes on the router.
func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/v1/groups", h.ListGroups).Methods(http.MethodGet)
	r.HandleFunc("/v1/groups", h.CreateGroup).Methods(http.MethodPost)
	r.HandleFunc("/v1/groups/{id}", h.GetGroup).Methods(http.MethodGet)
	r.HandleFunc("/v1/groups/{id}/join", h.JoinGroup).Methods(http.MethodPost)
	r.HandleFunc("/v1/groups/{id}/eligibility", h.CheckJoin).Methods(http.MethodGet)
	r.HandleFunc("/v1/actions/{handle}", h.GetAction).Methods(http.MethodGet)
	r.HandleFunc("/v1/actions/{handle}/cancel", h.CancelAction).Methods(http.MethodPost)
}

type createGroupRequest struct {
	Account            string `json:"account"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	DepositAmount      uint64 `json:"depositAmount"`
	ContributionAmount uint64 `json:"contributionAmount"`
	PenaltyRate        uint8  `json:"penaltyRate"`
	MaxMembers         uint32 `json:"maxMembers"`
	CycleSeconds       int64  `json:"cycleSeconds"`
	StartAt            int64  `json:"startAt"`
}

type joinGroupRequest struct {
	Account string `json:"account"`
}

type actionResponse struct {
	Handle          string `json:"handle"`
	Kind            string `json:"kind"`
	GroupID         uint64 `json:"groupId,omitempty"`
	Account         string `json:"account"`
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
	TxHandle        string `json:"txHandle,omitempty"`
	SubmittedAt     int64  `json:"submittedAt"`
	CancelRequested bool   `json:"cancelRequested,omitempty"`
}

// CreateGroup handles POST /v1/groups.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Account == "" {
		h.writeError(w, http.StatusBadRequest, "account is required")
		return
	}

	params := model.GroupCreateParams{
		Name:               req.Name,
		Description:        req.Description,
		DepositAmount:      req.DepositAmount,
		ContributionAmount: req.ContributionAmount,
		PenaltyRate:        req.PenaltyRate,
		MaxMembers:         req.MaxMembers,
		CycleDuration:      time.Duration(req.CycleSeconds) * time.Second,
		StartAt:            time.Unix(req.StartAt, 0).UTC(),
	}

	action, err := h.core.RequestCreateGroup(r.Context(), params, req.Account)
	if err != nil {
		h.writeActionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, toActionResponse(action))
}

// JoinGroup handles POST /v1/groups/{id}/join.
func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	var req joinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Account == "" {
		h.writeError(w, http.StatusBadRequest, "account is required")
		return
	}

	action, err := h.core.RequestJoinGroup(r.Context(), groupID, req.Account)
	if err != nil {
		h.writeActionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, toActionResponse(action))
}

// CheckJoin handles GET /v1/groups/{id}/eligibility?account=...
func (h *Handler) CheckJoin(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	account := r.URL.Query().Get("account")
	if account == "" {
		h.writeError(w, http.StatusBadRequest, "account is required")
		return
	}

	decision, err := h.core.CheckJoin(groupID, account)
	if err != nil {
		h.writeActionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"allowed": decision.Allowed,
		"reason":  decision.Reason,
	})
}

// ListGroups handles GET /v1/groups.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.core.GroupViews())
}

// GetGroup handles GET /v1/groups/{id}.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	v, err := h.core.GroupView(groupID)
	if err != nil {
		h.writeActionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

// GetAction handles GET /v1/actions/{handle}.
func (h *Handler) GetAction(w http.ResponseWriter, r *http.Request) {
	action, err := h.core.Action(mux.Vars(r)["handle"])
	if err != nil {
		h.writeActionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toActionResponse(action))
}

// CancelAction handles POST /v1/actions/{handle}/cancel.
func (h *Handler) CancelAction(w http.ResponseWriter, r *http.Request) {
	if err := h.core.RequestCancel(mux.Vars(r)["handle"]); err != nil {
		h.writeActionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "cancel_requested"})
}

func (h *Handler) groupID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		h.writeError(w, http.StatusBadRequest, "invalid group id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeActionError(w http.ResponseWriter, err error) {
	var dup *coordinator.DuplicateActionError
	var denied *coordinator.EligibilityError
	var unknown *coordinator.ErrUnknownHandle
	switch {
	case errors.As(err, &dup):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &denied):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &unknown), errors.Is(err, service.ErrGroupUnknown):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("write response", zap.Error(err))
	}
}

func toActionResponse(a model.PendingAction) actionResponse {
	return actionResponse{
		Handle:          a.Handle,
		Kind:            string(a.Kind),
		GroupID:         a.GroupID,
		Account:         a.Account,
		Status:          string(a.Status),
		Reason:          a.Reason,
		TxHandle:        a.TxHandle,
		SubmittedAt:     a.SubmittedAt.Unix(),
		CancelRequested: a.CancelRequested,
	}
}
