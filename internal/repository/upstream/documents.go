package upstream

import (
	"github.com/MakeNowJust/heredoc/v2"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"
)

// Every document takes its ids and filter codes as variables.

var listBusinessesDoc = graphql.MustParse(heredoc.Doc(`
	query ListBusinesses($approved: String!) {
	  businesses {
	    id
	    name
	    description
	    contactEmail
	    contactPhone
	    location
	    industry
	    keywords
	    technologiesUsed
	    reviews(where: { moderationStatus: { equals: $approved } }) {
	      rating
	    }
	  }
	}
`))

var getBusinessDoc = graphql.MustParse(heredoc.Doc(`
	query GetBusiness($id: ID!, $approved: String!, $displayed: String!) {
	  business(where: { id: $id }) {
	    id
	    name
	    description
	    contactEmail
	    contactPhone
	    website
	    industry
	    location
	    address
	    yearFounded
	    typeOfEntity
	    businessHours
	    revenue
	    employeeCount
	    keywords
	    companyLinkedIn
	    companyFacebook
	    companyTwitter
	    technologiesUsed
	    sicCodes
	    reviews(where: { moderationStatus: { equals: $approved } }) {
	      id
	      rating
	      content
	      isAnonymous
	      createdAt
	      user {
	        name
	      }
	    }
	    complaints(where: { status: { equals: $displayed } }) {
	      id
	      createdAt
	    }
	    products {
	      id
	      name
	      description
	      images {
	        file {
	          url
	        }
	      }
	      reviews(where: { moderationStatus: { equals: $approved } }) {
	        rating
	      }
	    }
	    jobListings {
	      id
	      title
	      description
	    }
	  }
	}
`))

var getBusinessReviewsDoc = graphql.MustParse(heredoc.Doc(`
	query GetBusinessReviews($id: ID!, $approved: String!) {
	  business(where: { id: $id }) {
	    id
	    name
	    reviews(where: { moderationStatus: { equals: $approved } }, orderBy: { createdAt: asc }) {
	      id
	      rating
	      content
	      isAnonymous
	      createdAt
	      user {
	        name
	      }
	      replies {
	        content
	        createdAt
	      }
	    }
	    products {
	      id
	      name
	      reviews(where: { moderationStatus: { equals: $approved } }, orderBy: { createdAt: asc }) {
	        id
	        rating
	        content
	        isAnonymous
	        createdAt
	        user {
	          name
	        }
	      }
	    }
	  }
	}
`))

var getBusinessComplaintsDoc = graphql.MustParse(heredoc.Doc(`
	query GetBusinessComplaints($id: ID!, $displayed: String!) {
	  business(where: { id: $id }) {
	    id
	    name
	    complaints(where: { status: { equals: $displayed } }) {
	      id
	      subject
	      content
	      isAnonymous
	      status
	      createdAt
	      user {
	        name
	      }
	      replies {
	        content
	        createdAt
	      }
	    }
	  }
	}
`))

var createBusinessDoc = graphql.MustParse(heredoc.Doc(`
	mutation CreateBusiness($data: BusinessCreateInput!) {
	  createBusiness(data: $data) {
	    id
	  }
	}
`))

var getProductDoc = graphql.MustParse(heredoc.Doc(`
	query GetProduct($id: ID!, $approved: String!) {
	  product(where: { id: $id }) {
	    id
	    name
	    description
	    price
	    stock
	    images {
	      file {
	        url
	      }
	    }
	    business {
	      id
	      name
	    }
	    reviews(where: { moderationStatus: { equals: $approved } }) {
	      id
	      rating
	      content
	      isAnonymous
	      createdAt
	      user {
	        name
	      }
	    }
	  }
	}
`))

var listBusinessProductsDoc = graphql.MustParse(heredoc.Doc(`
	query ListBusinessProducts($businessId: ID!) {
	  products(where: { business: { id: { equals: $businessId } } }) {
	    id
	    name
	    price
	    stock
	    images {
	      file {
	        url
	      }
	    }
	  }
	}
`))

var getJobListingDoc = graphql.MustParse(heredoc.Doc(`
	query GetJobListing($id: ID!) {
	  jobListing(where: { id: $id }) {
	    id
	    title
	    description
	    business {
	      id
	      name
	    }
	  }
	}
`))

var createReviewDoc = graphql.MustParse(heredoc.Doc(`
	mutation CreateReview($rating: String!, $content: String!, $businessId: ID!, $userId: ID!, $isAnonymous: String!, $moderationStatus: String!) {
	  createReview(data: {
	    rating: $rating
	    content: $content
	    business: { connect: { id: $businessId } }
	    user: { connect: { id: $userId } }
	    isAnonymous: $isAnonymous
	    moderationStatus: $moderationStatus
	  }) {
	    id
	  }
	}
`))

var createComplaintDoc = graphql.MustParse(heredoc.Doc(`
	mutation CreateComplaint($subject: String!, $content: String!, $businessId: ID!, $userId: ID!, $isAnonymous: String!, $status: String!) {
	  createComplaint(data: {
	    subject: $subject
	    content: $content
	    business: { connect: { id: $businessId } }
	    user: { connect: { id: $userId } }
	    isAnonymous: $isAnonymous
	    status: $status
	  }) {
	    id
	  }
	}
`))

var createQuoteDoc = graphql.MustParse(heredoc.Doc(`
	mutation CreateQuote($service: String!, $message: String!, $businessId: ID!, $userId: ID!, $status: String!) {
	  createQuote(data: {
	    service: $service
	    message: $message
	    business: { connect: { id: $businessId } }
	    user: { connect: { id: $userId } }
	    status: $status
	  }) {
	    id
	  }
	}
`))

var authenticateUserDoc = graphql.MustParse(heredoc.Doc(`
	mutation AuthenticateUser($email: String!, $password: String!) {
	  authenticateUserWithPassword(email: $email, password: $password) {
	    ... on UserAuthenticationWithPasswordSuccess {
	      item {
	        id
	        email
	        name
	        role
	      }
	    }
	    ... on UserAuthenticationWithPasswordFailure {
	      message
	    }
	  }
	}
`))

var createUserDoc = graphql.MustParse(heredoc.Doc(`
	mutation CreateUser($name: String!, $email: String!, $password: String!, $role: String!) {
	  createUser(data: { name: $name, email: $email, password: $password, role: $role }) {
	    id
	    name
	    email
	    role
	  }
	}
`))

var getUserDoc = graphql.MustParse(heredoc.Doc(`
	query GetUser($id: ID!) {
	  user(where: { id: $id }) {
	    id
	    name
	    email
	    role
	  }
	}
`))

var updateUserDoc = graphql.MustParse(heredoc.Doc(`
	mutation UpdateUser($id: ID!, $data: UserUpdateInput!) {
	  updateUser(where: { id: $id }, data: $data) {
	    id
	    name
	    email
	    role
	  }
	}
`))
