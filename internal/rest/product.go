package rest

import (
	"context"
	"net/http"
	"strconv"

	"devenirShop/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ProductHandler struct {
		validate     *validator.Validate
		productStore ProductBrowser
	}

	ProductBrowser interface {
		FindByID(ctx context.Context, id uint64) (domain.Product, error)
		FindAll(ctx context.Context, category string, limit, offset int) ([]domain.Product, error)
	}

	BrowseQuery struct {
		Category string `query:"category"`
		Limit    int    `query:"limit" validate:"gte=0,lte=100"`
		Offset   int    `query:"offset" validate:"gte=0"`
	}
)

func NewProductHandler(store ProductBrowser) *ProductHandler {
	return &ProductHandler{
		validate:     validator.New(),
		productStore: store,
	}
}

// GET /api/v1/products?category=outerwear&limit=20
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	var q BrowseQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}

	products, err := h.productStore.FindAll(c.Request().Context(), q.Category, q.Limit, q.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	product, err := h.productStore.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "product not found"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}
