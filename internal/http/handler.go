package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/aifa-contracts/internal/auth"
	"github.com/nurpe/aifa-contracts/internal/http/middleware"
	"github.com/nurpe/aifa-contracts/internal/model"
	"github.com/nurpe/aifa-contracts/internal/service"
	"github.com/nurpe/aifa-contracts/internal/session"
)

type Handler struct {
	sessions  *service.SessionService
	dashboard *service.DashboardService
	budget    *service.BudgetService
	assistant *service.AssistantService
	events    *session.Broker
	log       zerolog.Logger
}

func NewHandler(
	sessions *service.SessionService,
	dashboard *service.DashboardService,
	budget *service.BudgetService,
	assistant *service.AssistantService,
	events *session.Broker,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		sessions:  sessions,
		dashboard: dashboard,
		budget:    budget,
		assistant: assistant,
		events:    events,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/signup", h.signUp)
	router.POST("/auth/login", h.signIn)
	router.GET("/session", h.currentSession)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/auth/logout", h.signOut)
	protected.GET("/session/events", h.sessionEvents)

	protected.GET("/dashboard/overview", h.overview)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/commercial-spaces", h.listSpaces)
	protected.GET("/flights", h.listFlights)

	protected.GET("/budget/items", h.listBudgetItems)
	protected.POST("/budget/items", h.createBudgetItem)
	protected.PUT("/budget/items/:id", h.updateBudgetItem)
	protected.DELETE("/budget/items/:id", h.deleteBudgetItem)
	protected.GET("/budget/summary", h.budgetSummary)
	protected.GET("/budget/export/xlsx", h.exportBudgetWorkbook)
	protected.GET("/budget/export/pdf", h.exportBudgetPDF)

	protected.POST("/assistant/query", h.askAssistant)
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.sessions.SignUp(c.Request.Context(), service.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": result.Session, "state": result.State})
}

func (h *Handler) currentSession(c *gin.Context) {
	state := h.sessions.Current(c.Request.Context(), middleware.BearerToken(c))
	c.JSON(http.StatusOK, state)
}

func (h *Handler) signOut(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	state, err := h.sessions.SignOut(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// sessionEvents streams session changes of the caller until the client
// disconnects.
func (h *Handler) sessionEvents(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	changes, unsubscribe := h.events.Subscribe(principal.UserID)
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"user_id": principal.UserID})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case change, open := <-changes:
			if !open {
				return
			}
			c.SSEvent("session", change)
			c.Writer.Flush()
		}
	}
}

func (h *Handler) overview(c *gin.Context) {
	overview, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *Handler) listContracts(c *gin.Context) {
	contracts, err := h.dashboard.ListContracts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) listSpaces(c *gin.Context) {
	spaces, err := h.dashboard.ListSpaces(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, spaces)
}

func (h *Handler) listFlights(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.ListFlights())
}

type budgetItemRequest struct {
	SeqNo           string   `json:"seq_no"`
	ProcurementCode string   `json:"procurement_code"`
	ServiceName     string   `json:"service_name"`
	OrgUnit         string   `json:"org_unit"`
	RequestedAmount *float64 `json:"requested_amount"`
	RevisedAmount   *float64 `json:"revised_amount"`
	Justification   string   `json:"justification"`
}

func (r budgetItemRequest) toModel(id int64) model.BudgetItem {
	return model.BudgetItem{
		ID:              id,
		SeqNo:           r.SeqNo,
		ProcurementCode: r.ProcurementCode,
		ServiceName:     r.ServiceName,
		OrgUnit:         r.OrgUnit,
		RequestedAmount: r.RequestedAmount,
		RevisedAmount:   r.RevisedAmount,
		Justification:   r.Justification,
	}
}

func (h *Handler) listBudgetItems(c *gin.Context) {
	items, err := h.budget.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) createBudgetItem(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req budgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.budget.Create(c.Request.Context(), principal, req.toModel(0))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

func (h *Handler) updateBudgetItem(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := parseItemID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req budgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.budget.Update(c.Request.Context(), principal, req.toModel(id))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) deleteBudgetItem(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := parseItemID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	items, err := h.budget.Delete(c.Request.Context(), principal, id, confirmed)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) budgetSummary(c *gin.Context) {
	summary, err := h.budget.Summary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) exportBudgetWorkbook(c *gin.Context) {
	result, err := h.budget.ExportWorkbook(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, result)
}

func (h *Handler) exportBudgetPDF(c *gin.Context) {
	result, err := h.budget.ExportPDF(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, result)
}

type assistantRequest struct {
	Question string `json:"question"`
}

func (h *Handler) askAssistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), req.Question)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		c.JSON(authStatus(authErr.Kind), gin.H{"error": string(authErr.Kind), "message": authErr.Message})
		return
	}

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConfirmationRequired):
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	case errors.Is(err, service.ErrUpstream):
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("upstream failure")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func authStatus(kind auth.ErrorKind) int {
	switch kind {
	case auth.KindConfig:
		return http.StatusInternalServerError
	case auth.KindInvalidCredentials, auth.KindSessionExpired:
		return http.StatusUnauthorized
	case auth.KindEmailNotConfirmed:
		return http.StatusForbidden
	case auth.KindAlreadyRegistered:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func sendFile(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func parseItemID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidInput
	}
	return id, nil
}
