// Package upstream implements the repositories on top of the content API.
package upstream

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// Executor runs a GraphQL document. *graphql.Client implements it.
type Executor interface {
	Do(ctx context.Context, doc graphql.Document, vars graphql.Vars, out any) error
}

// BusinessRepository implements repository.BusinessRepository against the content API.
type BusinessRepository struct {
	gql Executor
}

// NewBusinessRepository creates a new content-API-backed business repository.
func NewBusinessRepository(gql Executor) *BusinessRepository {
	return &BusinessRepository{gql: gql}
}

// List returns every business with the ratings of its approved reviews.
func (r *BusinessRepository) List(ctx context.Context) ([]domain.Business, error) {
	var out struct {
		Businesses []businessNode `json:"businesses"`
	}
	if err := r.gql.Do(ctx, listBusinessesDoc, graphql.Vars{"approved": domain.ModerationApproved}, &out); err != nil {
		return nil, err
	}

	businesses := make([]domain.Business, 0, len(out.Businesses))
	for _, n := range out.Businesses {
		businesses = append(businesses, n.toDomain())
	}
	return businesses, nil
}

// Get returns a business with everything its detail page shows.
func (r *BusinessRepository) Get(ctx context.Context, id string) (*domain.Business, error) {
	return r.fetch(ctx, getBusinessDoc, id, graphql.Vars{
		"id":        id,
		"approved":  domain.ModerationApproved,
		"displayed": domain.ComplaintClosed,
	})
}

// GetReviews returns a business with its approved reviews and its
// products' approved reviews.
func (r *BusinessRepository) GetReviews(ctx context.Context, id string) (*domain.Business, error) {
	return r.fetch(ctx, getBusinessReviewsDoc, id, graphql.Vars{
		"id":       id,
		"approved": domain.ModerationApproved,
	})
}

// GetComplaints returns a business with its displayed complaints.
func (r *BusinessRepository) GetComplaints(ctx context.Context, id string) (*domain.Business, error) {
	return r.fetch(ctx, getBusinessComplaintsDoc, id, graphql.Vars{
		"id":        id,
		"displayed": domain.ComplaintClosed,
	})
}

func (r *BusinessRepository) fetch(ctx context.Context, doc graphql.Document, id string, vars graphql.Vars) (*domain.Business, error) {
	var out struct {
		Business *businessNode `json:"business"`
	}
	if err := r.gql.Do(ctx, doc, vars, &out); err != nil {
		return nil, err
	}
	if out.Business == nil {
		return nil, apperrors.NotFound("business", id)
	}
	b := out.Business.toDomain()
	return &b, nil
}

// Create adds a business, generating an id when none is given.
func (r *BusinessRepository) Create(ctx context.Context, in domain.BusinessImport) (string, error) {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}

	data := map[string]any{
		"id":               in.ID,
		"name":             in.Name,
		"description":      in.Description,
		"industry":         in.Industry,
		"contactEmail":     in.ContactEmail,
		"contactPhone":     in.ContactPhone,
		"website":          in.Website,
		"location":         in.Location,
		"address":          in.Address,
		"typeOfEntity":     in.TypeOfEntity,
		"businessHours":    in.BusinessHours,
		"revenue":          in.Revenue,
		"keywords":         in.Keywords,
		"companyLinkedIn":  in.CompanyLinkedIn,
		"companyFacebook":  in.CompanyFacebook,
		"companyTwitter":   in.CompanyTwitter,
		"technologiesUsed": in.TechnologiesUsed,
		"sicCodes":         in.SICCodes,
	}
	if in.YearFounded != 0 {
		data["yearFounded"] = in.YearFounded
	}
	if in.EmployeeCount != 0 {
		data["employeeCount"] = in.EmployeeCount
	}
	if in.Manager != "" {
		data["manager"] = map[string]any{"connect": map[string]any{"id": in.Manager}}
	}

	var out struct {
		CreateBusiness *struct {
			ID string `json:"id"`
		} `json:"createBusiness"`
	}
	if err := r.gql.Do(ctx, createBusinessDoc, graphql.Vars{"data": data}, &out); err != nil {
		return "", err
	}
	if out.CreateBusiness == nil {
		return "", apperrors.Upstream("content API did not return the created business", fmt.Errorf("createBusiness %q returned null", in.Name))
	}
	return out.CreateBusiness.ID, nil
}
