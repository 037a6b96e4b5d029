package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// SuperAdmin lists every admin, user and store.
//
// @Summary      System admin dashboard
// @Tags         dashboards
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  superAdminDashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /super-admin-dashboard [get]
func (h *DashboardHandler) SuperAdmin(c echo.Context) error {
	ov, err := h.dashboards.SystemOverview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, superAdminDashboardResponse{Admins: ov.Admins, Users: ov.Users, Stores: ov.Stores})
}

// Admin lists every user and store.
//
// @Summary      Admin dashboard
// @Tags         dashboards
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  adminDashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin-dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	ov, err := h.dashboards.AdminOverview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminDashboardResponse{Users: ov.Users, Stores: ov.Stores})
}

// UserStores lists stores with their averages and the user's own rating.
//
// @Summary      User dashboard stores
// @Tags         dashboards
// @Security     BearerAuth
// @Produce      json
// @Param        userEmail  path      string  true  "User email"
// @Success      200        {object}  userDashboardResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /user-dashboard/stores/{userEmail} [get]
func (h *DashboardHandler) UserStores(c echo.Context) error {
	stores, err := h.dashboards.StoresForUser(c.Request().Context(), c.Param("userEmail"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userDashboardResponse{Stores: toStoreSummaryResponses(stores)})
}

// StoreReviews lists every rating of a store.
//
// @Summary      Store reviews
// @Tags         dashboards
// @Security     BearerAuth
// @Produce      json
// @Param        storeName  path      string  true  "Store name"
// @Success      200        {array}   domain.Review
// @Failure      404        {object}  errorResponse
// @Router       /store-owner/reviews/{storeName} [get]
func (h *DashboardHandler) StoreReviews(c echo.Context) error {
	reviews, err := h.dashboards.StoreReviews(c.Request().Context(), c.Param("storeName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}
