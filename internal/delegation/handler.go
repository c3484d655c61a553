package delegation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bidquo/rfq-marketplace/internal/auth"
	"github.com/bidquo/rfq-marketplace/internal/transport"
	"github.com/bidquo/rfq-marketplace/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(actor Actor, dto CreateDelegationDTO) (*Delegation, error)
	Update(actor Actor, id int64, dto UpdateDelegationDTO) (*Delegation, error)
	Remove(actor Actor, id int64) error
	ListFrom(userID int64) ([]DelegationResponse, error)
	ListTo(userID int64) ([]DelegationResponse, error)
	CheckPermission(subjectID int64, resourceType ResourceType, permission PermissionKind, resourceID string) (bool, error)
	GetMyPermissions(subjectID int64) ([]PermissionTuple, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Catalog *Catalog
}

func NewHandler(service ServiceAPI, catalog *Catalog) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Catalog:     catalog,
	}
}

func actorFrom(user *auth.User) Actor {
	return Actor{ID: user.ID, Role: user.Role}
}

func (h *Handler) CreateDelegation(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDelegationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateDelegation: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(actorFrom(user), dto)
	if err != nil {
		h.Logger.Error("CreateDelegation: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateDelegation: delegation created",
		"delegation_id", created.ID,
		"from_user_id", created.FromUserID,
		"to_user_id", created.ToUserID)

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateDelegation(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid delegation ID")
		return
	}

	var dto UpdateDelegationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateDelegation: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(actorFrom(user), id, dto)
	if err != nil {
		h.Logger.Error("UpdateDelegation: service error", "error", err, "delegation_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteDelegation(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid delegation ID")
		return
	}

	if err := h.Service.Remove(actorFrom(user), id); err != nil {
		h.Logger.Error("DeleteDelegation: service error", "error", err, "delegation_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFromMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	delegations, err := h.Service.ListFrom(user.ID)
	if err != nil {
		h.Logger.Error("ListFromMe: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, delegations)
}

func (h *Handler) ListToMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	delegations, err := h.Service.ListTo(user.ID)
	if err != nil {
		h.Logger.Error("ListToMe: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, delegations)
}

func (h *Handler) CheckPermission(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resourceType := ResourceType(chi.URLParam(r, "resourceType"))
	permission := PermissionKind(chi.URLParam(r, "permission"))
	resourceID := r.URL.Query().Get("resourceId")

	granted, err := h.Service.CheckPermission(user.ID, resourceType, permission, resourceID)
	if err != nil {
		h.Logger.Error("CheckPermission: service error", "error", err,
			"user_id", user.ID,
			"resource_type", resourceType,
			"permission", permission)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CheckPermissionResponse{HasPermission: granted})
}

func (h *Handler) GetMyPermissions(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tuples, err := h.Service.GetMyPermissions(user.ID)
	if err != nil {
		h.Logger.Error("GetMyPermissions: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"permissions": tuples,
	})
}

// GetResourceTypes serves the static resource-type enumeration for UI
// pickers; it never touches the store.
func (h *Handler) GetResourceTypes(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Catalog.ResourceTypes())
}

func (h *Handler) GetPermissionKinds(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Catalog.PermissionKinds())
}
