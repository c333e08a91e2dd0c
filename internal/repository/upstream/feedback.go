package upstream

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// FeedbackRepository implements repository.FeedbackRepository against the content API.
type FeedbackRepository struct {
	gql Executor
}

// NewFeedbackRepository creates a new content-API-backed feedback repository.
func NewFeedbackRepository(gql Executor) *FeedbackRepository {
	return &FeedbackRepository{gql: gql}
}

type createdID struct {
	ID string `json:"id"`
}

// CreateReview submits a review for moderation.
func (r *FeedbackRepository) CreateReview(ctx context.Context, in domain.ReviewSubmission) (string, error) {
	var out struct {
		CreateReview *createdID `json:"createReview"`
	}
	vars := graphql.Vars{
		"rating":           strconv.Itoa(in.Rating),
		"content":          in.Content,
		"businessId":       in.BusinessID,
		"userId":           in.UserID,
		"isAnonymous":      strconv.FormatBool(in.IsAnonymous),
		"moderationStatus": domain.ModerationPending,
	}
	if err := r.gql.Do(ctx, createReviewDoc, vars, &out); err != nil {
		return "", err
	}
	return createdOrError("createReview", out.CreateReview)
}

// CreateComplaint files a complaint. New complaints start as pending.
func (r *FeedbackRepository) CreateComplaint(ctx context.Context, in domain.ComplaintSubmission) (string, error) {
	var out struct {
		CreateComplaint *createdID `json:"createComplaint"`
	}
	vars := graphql.Vars{
		"subject":     in.Subject,
		"content":     in.Content,
		"businessId":  in.BusinessID,
		"userId":      in.UserID,
		"isAnonymous": strconv.FormatBool(in.IsAnonymous),
		"status":      domain.ComplaintPending,
	}
	if err := r.gql.Do(ctx, createComplaintDoc, vars, &out); err != nil {
		return "", err
	}
	return createdOrError("createComplaint", out.CreateComplaint)
}

// CreateQuote sends a quote request to a business.
func (r *FeedbackRepository) CreateQuote(ctx context.Context, in domain.QuoteSubmission) (string, error) {
	var out struct {
		CreateQuote *createdID `json:"createQuote"`
	}
	vars := graphql.Vars{
		"service":    in.Service,
		"message":    in.Message,
		"businessId": in.BusinessID,
		"userId":     in.UserID,
		"status":     domain.QuoteStatusPending,
	}
	if err := r.gql.Do(ctx, createQuoteDoc, vars, &out); err != nil {
		return "", err
	}
	return createdOrError("createQuote", out.CreateQuote)
}

func createdOrError(field string, c *createdID) (string, error) {
	if c == nil {
		return "", apperrors.Upstream("content API did not confirm the submission", fmt.Errorf("%s returned null", field))
	}
	return c.ID, nil
}
