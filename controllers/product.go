package controllers

import (
	"context"
	"net/http"
	"strconv"

	"frozo-api/apperrors"
	"frozo-api/logger"
	"frozo-api/models"
	"frozo-api/responses"
	"frozo-api/services"
	"frozo-api/validators"

	"github.com/gorilla/mux"
)

type ProductService interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, in services.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, in services.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductController handles product-related requests
type ProductController struct {
	Products ProductService
	Log      *logger.Logger
}

func NewProductController(products ProductService, log *logger.Logger) *ProductController {
	return &ProductController{Products: products, Log: log}
}

// GetProducts lists the catalog, optionally filtered by category, featured, inStock and search
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.ProductFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}
	var err error
	if filter.Featured, err = boolParam(query.Get("featured"), "featured"); err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}
	if filter.InStock, err = boolParam(query.Get("inStock"), "inStock"); err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}

	products, err := pc.Products.List(r.Context(), filter)
	if err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"count": len(products), "products": products})
}

func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := pc.Products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"product": product})
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := validators.DecodeJSONBody(w, r, &in); err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}
	product, err := pc.Products.Create(r.Context(), in)
	if err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, responses.Payload{"message": "Product created", "product": product})
}

// UpdateProduct handles updating a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := validators.DecodeJSONBody(w, r, &in); err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}
	product, err := pc.Products.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Product updated", "product": product})
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := pc.Products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		responses.WriteError(r.Context(), pc.Log, w, err)
		return
	}
	responses.WriteSuccess(w, responses.Payload{"message": "Product deleted"})
}

func boolParam(raw, name string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.Newf(apperrors.CodeValidation, "%s must be true or false", name)
	}
	return &v, nil
}
