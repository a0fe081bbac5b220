package rest

import (
	"context"
	"errors"
	"net/http"

	"devenirShop/business/search"
	"devenirShop/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

type (
	SearchHandler struct {
		validate      *validator.Validate
		searchService SearchService
	}

	SearchService interface {
		Search(ctx context.Context, query string, userID uint) (domain.SearchResult, error)
	}

	SearchQuery struct {
		Q string `query:"q" validate:"required,min=1,max=200"`
	}
)

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{
		validate:      validator.New(),
		searchService: svc,
	}
}

// GET /api/v1/search?q=wool+coat
// Identity is optional: an authenticated caller gets personalized
// ranking, an anonymous one gets the neutral hybrid order.
func (h *SearchHandler) Search(c echo.Context) error {
	var q SearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var userID uint
	if uid, ok := c.Get("user_id").(uint); ok {
		userID = uid
	}

	result, err := h.searchService.Search(c.Request().Context(), q.Q, userID)
	if err != nil {
		if errors.Is(err, search.ErrNoRetrieverResults) {
			return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "search temporarily unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
