package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
)

// The content API stores booleans and numbers as strings on several types
// ("true", "4"). These decoders accept both forms and fall back to the zero
// value instead of failing the document.

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	*b = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type userRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *userRef) toDomain() *domain.User {
	if u == nil {
		return nil
	}
	return &domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type replyNode struct {
	Content   string           `json:"content"`
	CreatedAt domain.Timestamp `json:"createdAt"`
}

func toReplies(nodes []replyNode) []domain.Reply {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]domain.Reply, len(nodes))
	for i, n := range nodes {
		out[i] = domain.Reply{Content: n.Content, CreatedAt: n.CreatedAt}
	}
	return out
}

type reviewNode struct {
	ID          string           `json:"id"`
	Rating      domain.Rating    `json:"rating"`
	Content     string           `json:"content"`
	IsAnonymous flexBool         `json:"isAnonymous"`
	CreatedAt   domain.Timestamp `json:"createdAt"`
	User        *userRef         `json:"user"`
	Replies     []replyNode      `json:"replies"`
}

func toReviews(nodes []reviewNode) []domain.Review {
	out := make([]domain.Review, 0, len(nodes))
	for _, n := range nodes {
		r := domain.Review{
			ID:          n.ID,
			Rating:      n.Rating,
			Content:     n.Content,
			IsAnonymous: bool(n.IsAnonymous),
			CreatedAt:   n.CreatedAt,
			Replies:     toReplies(n.Replies),
		}
		if n.User != nil {
			r.AuthorName = n.User.Name
		}
		out = append(out, r.Public())
	}
	return out
}

type complaintNode struct {
	ID          string           `json:"id"`
	Subject     string           `json:"subject"`
	Content     string           `json:"content"`
	Status      string           `json:"status"`
	IsAnonymous flexBool         `json:"isAnonymous"`
	CreatedAt   domain.Timestamp `json:"createdAt"`
	User        *userRef         `json:"user"`
	Replies     []replyNode      `json:"replies"`
}

func toComplaints(nodes []complaintNode) []domain.Complaint {
	out := make([]domain.Complaint, 0, len(nodes))
	for _, n := range nodes {
		c := domain.Complaint{
			ID:          n.ID,
			Subject:     n.Subject,
			Content:     n.Content,
			Status:      n.Status,
			IsAnonymous: bool(n.IsAnonymous),
			CreatedAt:   n.CreatedAt,
			Replies:     toReplies(n.Replies),
		}
		if n.User != nil {
			c.AuthorName = n.User.Name
		}
		out = append(out, c.Public())
	}
	return out
}

type imageNode struct {
	File *struct {
		URL string `json:"url"`
	} `json:"file"`
}

type businessRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productNode struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       flexFloat    `json:"price"`
	Stock       flexInt      `json:"stock"`
	Images      []imageNode  `json:"images"`
	Business    *businessRef `json:"business"`
	Reviews     []reviewNode `json:"reviews"`
}

func (n productNode) toDomain() domain.Product {
	p := domain.Product{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		Price:       float64(n.Price),
		Stock:       int(n.Stock),
		ImageURLs:   []string{},
		Reviews:     toReviews(n.Reviews),
	}
	for _, img := range n.Images {
		if img.File != nil && img.File.URL != "" {
			p.ImageURLs = append(p.ImageURLs, img.File.URL)
		}
	}
	if n.Business != nil {
		p.BusinessID = n.Business.ID
		p.BusinessName = n.Business.Name
	}
	return p
}

type jobNode struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Business    *businessRef `json:"business"`
}

func (n jobNode) toDomain() domain.JobListing {
	j := domain.JobListing{ID: n.ID, Title: n.Title, Description: n.Description}
	if n.Business != nil {
		j.BusinessID = n.Business.ID
		j.BusinessName = n.Business.Name
	}
	return j
}

type businessNode struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ContactEmail     string          `json:"contactEmail"`
	ContactPhone     string          `json:"contactPhone"`
	Website          string          `json:"website"`
	Industry         string          `json:"industry"`
	Location         string          `json:"location"`
	Address          string          `json:"address"`
	YearFounded      flexInt         `json:"yearFounded"`
	TypeOfEntity     string          `json:"typeOfEntity"`
	BusinessHours    string          `json:"businessHours"`
	Revenue          json.RawMessage `json:"revenue"`
	EmployeeCount    flexInt         `json:"employeeCount"`
	Keywords         string          `json:"keywords"`
	CompanyLinkedIn  string          `json:"companyLinkedIn"`
	CompanyFacebook  string          `json:"companyFacebook"`
	CompanyTwitter   string          `json:"companyTwitter"`
	TechnologiesUsed string          `json:"technologiesUsed"`
	SICCodes         string          `json:"sicCodes"`
	Reviews          []reviewNode    `json:"reviews"`
	Complaints       []complaintNode `json:"complaints"`
	Products         []productNode   `json:"products"`
	JobListings      []jobNode       `json:"jobListings"`
}

func (n businessNode) toDomain() domain.Business {
	b := domain.Business{
		ID:               n.ID,
		Name:             n.Name,
		Description:      n.Description,
		ContactEmail:     n.ContactEmail,
		ContactPhone:     n.ContactPhone,
		Website:          n.Website,
		Industry:         n.Industry,
		Location:         n.Location,
		Address:          n.Address,
		YearFounded:      int(n.YearFounded),
		TypeOfEntity:     n.TypeOfEntity,
		BusinessHours:    n.BusinessHours,
		Revenue:          rawText(n.Revenue),
		EmployeeCount:    int(n.EmployeeCount),
		Keywords:         n.Keywords,
		CompanyLinkedIn:  n.CompanyLinkedIn,
		CompanyFacebook:  n.CompanyFacebook,
		CompanyTwitter:   n.CompanyTwitter,
		TechnologiesUsed: n.TechnologiesUsed,
		SICCodes:         n.SICCodes,
		Reviews:          toReviews(n.Reviews),
		Complaints:       toComplaints(n.Complaints),
	}
	for _, p := range n.Products {
		prod := p.toDomain()
		prod.BusinessID, prod.BusinessName = n.ID, n.Name
		b.Products = append(b.Products, prod)
	}
	for _, j := range n.JobListings {
		job := j.toDomain()
		job.BusinessID, job.BusinessName = n.ID, n.Name
		b.JobListings = append(b.JobListings, job)
	}
	return b
}

// rawText renders a scalar that may arrive as a string or a number.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
