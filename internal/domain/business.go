package domain

// Business is a directory listing.
type Business struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	ContactEmail     string       `json:"contact_email,omitempty"`
	ContactPhone     string       `json:"contact_phone,omitempty"`
	Website          string       `json:"website,omitempty"`
	Industry         string       `json:"industry,omitempty"`
	Location         string       `json:"location,omitempty"`
	Address          string       `json:"address,omitempty"`
	YearFounded      int          `json:"year_founded,omitempty"`
	TypeOfEntity     string       `json:"type_of_entity,omitempty"`
	BusinessHours    string       `json:"business_hours,omitempty"`
	Revenue          string       `json:"revenue,omitempty"`
	EmployeeCount    int          `json:"employee_count,omitempty"`
	Keywords         string       `json:"keywords,omitempty"`
	CompanyLinkedIn  string       `json:"company_linkedin,omitempty"`
	CompanyFacebook  string       `json:"company_facebook,omitempty"`
	CompanyTwitter   string       `json:"company_twitter,omitempty"`
	TechnologiesUsed string       `json:"technologies_used,omitempty"`
	SICCodes         string       `json:"sic_codes,omitempty"`
	Reviews          []Review     `json:"-"`
	Complaints       []Complaint  `json:"-"`
	Products         []Product    `json:"-"`
	JobListings      []JobListing `json:"-"`
}

// SearchFields returns the text a directory search matches against.
func (b Business) SearchFields() []string {
	return []string{b.Name, b.Location, b.ContactEmail}
}

// SortName is the key listings are ordered by.
func (b Business) SortName() string {
	return b.Name
}

// Product is an item a business offers.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price,omitempty"`
	Stock        int      `json:"stock,omitempty"`
	ImageURLs    []string `json:"image_urls"`
	BusinessID   string   `json:"business_id,omitempty"`
	BusinessName string   `json:"business_name,omitempty"`
	Reviews      []Review `json:"-"`
}

// JobListing is an open position at a business.
type JobListing struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	BusinessID   string `json:"business_id,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}

// QuoteStatusPending is the status of a newly requested quote.
const QuoteStatusPending = "pending"

// Quote is a request for a price quote sent to a business.
type Quote struct {
	ID         string `json:"id"`
	Service    string `json:"service"`
	Message    string `json:"message"`
	Status     string `json:"status"`
	BusinessID string `json:"business_id"`
	UserID     string `json:"user_id"`
}
