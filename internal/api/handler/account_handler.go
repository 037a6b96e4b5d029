package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/core/ports"
)

// AccountHandler serves admin account creation and profile reads/updates.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// AddUser creates an end-user account.
//
// @Summary      Add a user
// @Tags         accounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /add-user [post]
func (h *AccountHandler) AddUser(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, err := h.accounts.RegisterUser(c.Request().Context(), req.toInput()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User added successfully"})
}

// AddStoreOwner creates a store owner together with their store.
//
// @Summary      Add a store owner
// @Tags         accounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      addStoreOwnerRequest  true  "Store owner details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /add-store-owner [post]
func (h *AccountHandler) AddStoreOwner(c echo.Context) error {
	var req addStoreOwnerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in := req.toInput()
	in.StoreName = req.StoreName
	if _, err := h.accounts.CreateStoreOwner(c.Request().Context(), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Store owner added successfully"})
}

// AddAdmin creates an admin account.
//
// @Summary      Add an admin
// @Tags         accounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      addAdminRequest  true  "Admin details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /add-admin [post]
func (h *AccountHandler) AddAdmin(c echo.Context) error {
	var req addAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in := req.toInput()
	in.Title = req.Role
	if _, err := h.accounts.CreateAdmin(c.Request().Context(), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Admin added successfully"})
}

// GetUser returns a user profile.
//
// @Summary      Get user profile
// @Tags         profiles
// @Security     BearerAuth
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  errorResponse
// @Router       /user/{email} [get]
func (h *AccountHandler) GetUser(c echo.Context) error {
	user, err := h.accounts.GetUser(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetAdmin returns an admin profile.
//
// @Summary      Get admin profile
// @Tags         profiles
// @Security     BearerAuth
// @Produce      json
// @Param        email  path      string  true  "Admin email"
// @Success      200    {object}  domain.Admin
// @Failure      404    {object}  errorResponse
// @Router       /admin/{email} [get]
func (h *AccountHandler) GetAdmin(c echo.Context) error {
	admin, err := h.accounts.GetAdmin(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// GetStoreOwner returns a store owner profile, including the rating aggregate.
//
// @Summary      Get store owner profile
// @Tags         profiles
// @Security     BearerAuth
// @Produce      json
// @Param        email  path      string  true  "Store owner email"
// @Success      200    {object}  domain.StoreOwner
// @Failure      404    {object}  errorResponse
// @Router       /store-owner/{email} [get]
func (h *AccountHandler) GetStoreOwner(c echo.Context) error {
	owner, err := h.accounts.GetStoreOwner(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, owner)
}

// UpdateUser replaces a user's profile.
//
// @Summary      Update user profile
// @Tags         profiles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        email  path      string                true  "User email"
// @Param        body   body      updateProfileRequest  true  "Profile fields"
// @Success      200    {object}  userProfileResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /user/update/{email} [put]
func (h *AccountHandler) UpdateUser(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.UpdateUser(c.Request().Context(), c.Param("email"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userProfileResponse{Message: "Profile updated successfully", User: user})
}

// UpdateAdmin replaces an admin's profile.
//
// @Summary      Update admin profile
// @Tags         profiles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        email  path      string                true  "Admin email"
// @Param        body   body      updateProfileRequest  true  "Profile fields"
// @Success      200    {object}  adminProfileResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /admin/update/{email} [put]
func (h *AccountHandler) UpdateAdmin(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	admin, err := h.accounts.UpdateAdmin(c.Request().Context(), c.Param("email"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminProfileResponse{Message: "Profile updated successfully", Admin: admin})
}

// UpdateStoreOwner replaces a store owner's profile and optionally renames the store.
//
// @Summary      Update store owner profile
// @Tags         profiles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        email  path      string                   true  "Store owner email"
// @Param        body   body      updateStoreOwnerRequest  true  "Profile fields"
// @Success      200    {object}  storeOwnerProfileResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /store-owner/update/{email} [put]
func (h *AccountHandler) UpdateStoreOwner(c echo.Context) error {
	var req updateStoreOwnerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in := req.toInput()
	in.StoreName = req.StoreName
	owner, err := h.accounts.UpdateStoreOwner(c.Request().Context(), c.Param("email"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, storeOwnerProfileResponse{Message: "Profile updated successfully", StoreOwner: owner})
}
