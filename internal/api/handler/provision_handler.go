package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tonipcv/user-provisioner/internal/api/metrics"
	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

// ProvisionHandler handles interactive (one user per submission)
// provisioning requests.
type ProvisionHandler struct {
	service ports.ProvisioningService
}

func NewProvisionHandler(service ports.ProvisioningService) *ProvisionHandler {
	return &ProvisionHandler{service: service}
}

// Create handles POST /v1/users.
//
// @Summary      Provision a user
// @Description  Ensures exactly one identity and one profile exist for the email, creating or overwriting as needed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      provisionRequest  true  "Desired user state (omitted fields get defaults)"
// @Success      200   {object}  provisionResponse  "Existing profile overwritten"
// @Success      201   {object}  provisionResponse  "Identity and profile created"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/users [post]
func (h *ProvisionHandler) Create(c echo.Context) error {
	var req provisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	outcome, err := h.service.Provision(c.Request().Context(), toProvisionInput(req))
	if err != nil {
		metrics.ProvisionErrorsTotal.WithLabelValues(string(domain.KindOf(err))).Inc()
		metrics.ProvisionDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}

	metrics.UsersProvisionedTotal.WithLabelValues(string(outcome.Action)).Inc()
	metrics.ProvisionDuration.WithLabelValues(string(outcome.Action)).Observe(time.Since(start).Seconds())

	status := http.StatusOK
	if outcome.Action == domain.ActionCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, provisionResponse{
		Success: true,
		Action:  string(outcome.Action),
		Data:    outcome.Profile,
	})
}
