package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avkurov/product-catalog/internal/logging"
	"github.com/avkurov/product-catalog/internal/models"
	"github.com/avkurov/product-catalog/internal/mykafka"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type CreateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	IsFeatured  bool    `json:"isFeatured"`
}

// PatchProductRequest is a sparse patch: nil fields are left untouched.
type PatchProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	IsFeatured  *bool    `json:"isFeatured"`
}

func (r *CreateProductRequest) Validate() map[string]string {
	fields := map[string]string{}
	if len(r.Title) < 3 {
		fields["title"] = "must be at least 3 characters"
	}
	if len(r.Description) < 10 {
		fields["description"] = "must be at least 10 characters"
	}
	if r.Price <= 0 {
		fields["price"] = "must be greater than zero"
	}
	if r.ImageURL == "" {
		fields["imageUrl"] = "is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (r *PatchProductRequest) Validate() map[string]string {
	fields := map[string]string{}
	if r.Title != nil && len(*r.Title) < 3 {
		fields["title"] = "must be at least 3 characters"
	}
	if r.Description != nil && len(*r.Description) < 10 {
		fields["description"] = "must be at least 10 characters"
	}
	if r.Price != nil && *r.Price <= 0 {
		fields["price"] = "must be greater than zero"
	}
	if r.ImageURL != nil && *r.ImageURL == "" {
		fields["imageUrl"] = "is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func parseProductID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return id, nil
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	var items []models.Product
	if err := h.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot get products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseProductID(c)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fields := req.Validate(); fields != nil {
		l.Warn("product_create_error", "status", 400, "reason", "validation failed")
		return echo.NewHTTPError(http.StatusBadRequest, fields)
	}

	prod := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	}
	if err := h.DB.WithContext(ctx).Create(&prod).Error; err != nil {
		l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"title":     prod.Title,
	})

	l.Info("create_product_success", "id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := parseProductID(c)
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	var req PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if fields := req.Validate(); fields != nil {
		l.Warn("product_update_error", "status", 400, "reason", "validation failed")
		return echo.NewHTTPError(http.StatusBadRequest, fields)
	}

	var prod models.Product
	if err := h.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_update_error", "status", 404, "reason", "product not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_update_error", "status", 500, "reason", "cannot load product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	if req.Title != nil {
		prod.Title = *req.Title
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.ImageURL != nil {
		prod.ImageURL = *req.ImageURL
	}
	if req.IsFeatured != nil {
		prod.IsFeatured = *req.IsFeatured
	}

	if err := h.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		l.Error("product_update_error", "status", 500, "reason", "cannot save product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"title":     prod.Title,
	})

	l.Info("update_product_success", "id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

// DeleteProduct does not check existence first: deleting an absent id
// still answers 204.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseProductID(c)
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	if err := h.DB.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product from db")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
