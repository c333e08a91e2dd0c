package domain

// ReviewSubmission is a new review as sent to the content API.
type ReviewSubmission struct {
	BusinessID  string
	UserID      string
	Rating      int
	Content     string
	IsAnonymous bool
}

// ComplaintSubmission is a new complaint as sent to the content API.
type ComplaintSubmission struct {
	BusinessID  string
	UserID      string
	Subject     string
	Content     string
	IsAnonymous bool
}

// QuoteSubmission is a new quote request as sent to the content API.
type QuoteSubmission struct {
	BusinessID string
	UserID     string
	Service    string
	Message    string
}

// BusinessImport is one entry of an admin bulk upload. Field names follow
// the content API so uploaded files can be exported from it unchanged.
type BusinessImport struct {
	ID               string `json:"id,omitempty" yaml:"id,omitempty"`
	Name             string `json:"name" yaml:"name" validate:"required,max=200"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	Industry         string `json:"industry,omitempty" yaml:"industry,omitempty"`
	ContactEmail     string `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone     string `json:"contactPhone,omitempty" yaml:"contactPhone,omitempty"`
	Website          string `json:"website,omitempty" yaml:"website,omitempty" validate:"omitempty,url"`
	Location         string `json:"location,omitempty" yaml:"location,omitempty"`
	Address          string `json:"address,omitempty" yaml:"address,omitempty"`
	YearFounded      int    `json:"yearFounded,omitempty" yaml:"yearFounded,omitempty" validate:"omitempty,gte=1600,lte=2100"`
	TypeOfEntity     string `json:"typeOfEntity,omitempty" yaml:"typeOfEntity,omitempty"`
	BusinessHours    string `json:"businessHours,omitempty" yaml:"businessHours,omitempty"`
	Revenue          string `json:"revenue,omitempty" yaml:"revenue,omitempty"`
	EmployeeCount    int    `json:"employeeCount,omitempty" yaml:"employeeCount,omitempty" validate:"omitempty,gte=0"`
	Keywords         string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	CompanyLinkedIn  string `json:"companyLinkedIn,omitempty" yaml:"companyLinkedIn,omitempty"`
	CompanyFacebook  string `json:"companyFacebook,omitempty" yaml:"companyFacebook,omitempty"`
	CompanyTwitter   string `json:"companyTwitter,omitempty" yaml:"companyTwitter,omitempty"`
	TechnologiesUsed string `json:"technologiesUsed,omitempty" yaml:"technologiesUsed,omitempty"`
	SICCodes         string `json:"sicCodes,omitempty" yaml:"sicCodes,omitempty"`
	Manager          string `json:"manager,omitempty" yaml:"manager,omitempty"`
}

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}
