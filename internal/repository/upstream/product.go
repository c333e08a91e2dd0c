package upstream

import (
	"context"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// ProductRepository implements repository.ProductRepository against the content API.
type ProductRepository struct {
	gql Executor
}

// NewProductRepository creates a new content-API-backed product repository.
func NewProductRepository(gql Executor) *ProductRepository {
	return &ProductRepository{gql: gql}
}

// GetByID returns a product with its approved reviews.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var out struct {
		Product *productNode `json:"product"`
	}
	vars := graphql.Vars{"id": id, "approved": domain.ModerationApproved}
	if err := r.gql.Do(ctx, getProductDoc, vars, &out); err != nil {
		return nil, err
	}
	if out.Product == nil {
		return nil, apperrors.NotFound("product", id)
	}
	p := out.Product.toDomain()
	return &p, nil
}

// ListByBusiness returns the product cards of a business.
func (r *ProductRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Product, error) {
	var out struct {
		Products []productNode `json:"products"`
	}
	if err := r.gql.Do(ctx, listBusinessProductsDoc, graphql.Vars{"businessId": businessID}, &out); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(out.Products))
	for _, n := range out.Products {
		p := n.toDomain()
		p.BusinessID = businessID
		products = append(products, p)
	}
	return products, nil
}

// JobRepository implements repository.JobRepository against the content API.
type JobRepository struct {
	gql Executor
}

// NewJobRepository creates a new content-API-backed job listing repository.
func NewJobRepository(gql Executor) *JobRepository {
	return &JobRepository{gql: gql}
}

// GetByID returns a job listing.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.JobListing, error) {
	var out struct {
		JobListing *jobNode `json:"jobListing"`
	}
	if err := r.gql.Do(ctx, getJobListingDoc, graphql.Vars{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.JobListing == nil {
		return nil, apperrors.NotFound("job listing", id)
	}
	j := out.JobListing.toDomain()
	return &j, nil
}
