package handler

import (
	"net/http"

	"casaora_backend/internal/applications/service"
	"casaora_backend/internal/applications/transport"
	"casaora_backend/platform/httpkit"
	"casaora_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/board", h.Board)
	rg.GET("/summary", h.Summary)
	rg.GET("/alerts", h.Alerts)
	rg.GET("/:id/contact-link", h.ContactLink)
	rg.POST("/:id/status", h.UpdateStatus)
	rg.PUT("/:id/assign", h.Assign)
	rg.POST("/:id/convert-to-lease", h.Convert)
}

// RegisterMemberRoutes mounts the assignment option list under the
// organizations prefix.
func (h *Handler) RegisterMemberRoutes(rg *gin.RouterGroup) {
	rg.GET("/:orgId/members/options", h.MemberOptions)
}

// bindListRequest parses and validates the shared list filter query.
func (h *Handler) bindListRequest(c *gin.Context) (transport.ListApplicationsRequest, bool) {
	var req transport.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}

// orgScope pulls the caller's organization from the access token.
func orgScope(c *gin.Context) (string, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return "", false
	}
	orgID := identity.OrgID()
	if orgID == uuid.Nil {
		httpkit.Error(c, http.StatusForbidden, "token has no organization scope", nil)
		return "", false
	}
	return orgID.String(), true
}

func (h *Handler) List(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	views, err := h.svc.List(c.Request.Context(), orgID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": views})
}

func (h *Handler) Board(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	board, err := h.svc.Board(c.Request.Context(), orgID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, board)
}

func (h *Handler) Summary(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), orgID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, summary)
}

func (h *Handler) Alerts(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}

	views, err := h.svc.Alerts(c.Request.Context(), orgID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": views})
}

func (h *Handler) ContactLink(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}

	channel := c.Query("channel")
	if err := h.val.Var(channel, "required,oneof=whatsapp email"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "channel must be whatsapp or email")
		return
	}

	link, err := h.svc.ContactLink(c.Request.Context(), orgID, c.Param("id"), channel)
	if httpkit.HandleError(c, err) {
		return
	}
	// A missing recipient is not an error; the response carries the reason
	// and the board hides the action.
	httpkit.OK(c, link)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), orgID, identity.UserID(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": req.Status})
}

func (h *Handler) Assign(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.Assign(c.Request.Context(), orgID, identity.UserID(), c.Param("id"), req.AssigneeID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"assigneeId": req.AssigneeID})
}

func (h *Handler) Convert(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ConvertToLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Convert(c.Request.Context(), orgID, identity.UserID(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) MemberOptions(c *gin.Context) {
	if _, ok := orgScope(c); !ok {
		return
	}

	options, err := h.svc.MemberOptions(c.Request.Context(), c.Param("orgId"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": options})
}
