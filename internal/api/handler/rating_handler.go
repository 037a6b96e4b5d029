package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

type RatingHandler struct {
	ratings ports.RatingService
}

func NewRatingHandler(ratings ports.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// RateStore submits or replaces the caller's rating of a store.
//
// @Summary      Rate a store
// @Tags         ratings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        storeId          path      int               true   "Store ID"
// @Param        Idempotency-Key  header    string            false  "Replay protection key"
// @Param        body             body      rateStoreRequest  true   "Rating"
// @Success      200              {object}  messageResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /rate-store/{storeId} [post]
func (h *RatingHandler) RateStore(c echo.Context) error {
	email, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	storeID, err := strconv.ParseUint(c.Param("storeId"), 10, 64)
	if err != nil || storeID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid store id")
	}

	var req rateStoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.UserEmail != email {
		return domain.ErrForbidden
	}

	res, err := h.ratings.Submit(c.Request().Context(), ports.SubmitRatingInput{
		StoreID:        uint(storeID),
		UserEmail:      req.UserEmail,
		Rating:         int(req.Rating),
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	msg := "Rating submitted successfully"
	if res.Outcome == domain.RatingUpdated {
		msg = "Rating updated successfully"
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
