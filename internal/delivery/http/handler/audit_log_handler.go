package handler

import (
	"net/http"
	"strconv"

	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/usecase"
	"autodominio-api/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		response.FromError(w, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// ListAuditLogs filters by user_id and action.
func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUUID(r, "user_id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid user_id", nil)
		return
	}

	filter := &entity.AuditLogFilter{
		UserID: userID,
		Action: r.URL.Query().Get("action"),
		Page:   queryPage(r),
	}

	auditLogs, err := h.auditLogUsecase.ListAuditLogs(r.Context(), filter)
	if err != nil {
		response.FromError(w, err, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}
