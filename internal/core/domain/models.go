package domain

// PageSize is the fixed number of items per list page.
const PageSize = 10

type ResourceKind string

const (
	ResourceUsers    ResourceKind = "users"
	ResourceProducts ResourceKind = "products"
)

// Identity is the authenticated user as returned by the login endpoint, without the token.
type Identity struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`
}

// DisplayName returns "First Last", falling back to the username.
func (i *Identity) DisplayName() string {
	if i.FirstName == "" && i.LastName == "" {
		return i.Username
	}
	if i.LastName == "" {
		return i.FirstName
	}

	return i.FirstName + " " + i.LastName
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login is the login response: an identity plus the bearer token.
type Login struct {
	Identity
	Token string `json:"token"`
}

type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	StateCode  string `json:"stateCode"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Company struct {
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Department string  `json:"department"`
	Address    Address `json:"address"`
}

type User struct {
	ID         int     `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	MaidenName string  `json:"maidenName,omitempty"`
	Age        int     `json:"age,omitempty"`
	Gender     string  `json:"gender"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Username   string  `json:"username"`
	BirthDate  string  `json:"birthDate,omitempty"`
	Image      string  `json:"image"`
	BloodGroup string  `json:"bloodGroup,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Weight     float64 `json:"weight,omitempty"`
	EyeColor   string  `json:"eyeColor,omitempty"`
	Address    Address `json:"address"`
	University string  `json:"university,omitempty"`
	Company    Company `json:"company"`
	Role       string  `json:"role,omitempty"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type Review struct {
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	Date          string `json:"date"`
	ReviewerName  string `json:"reviewerName"`
	ReviewerEmail string `json:"reviewerEmail"`
}

type Product struct {
	ID                   int        `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Price                float64    `json:"price"`
	DiscountPercentage   float64    `json:"discountPercentage"`
	Rating               float64    `json:"rating"`
	Stock                int        `json:"stock"`
	Tags                 []string   `json:"tags,omitempty"`
	Brand                string     `json:"brand,omitempty"`
	SKU                  string     `json:"sku,omitempty"`
	Weight               float64    `json:"weight,omitempty"`
	Dimensions           Dimensions `json:"dimensions"`
	WarrantyInformation  string     `json:"warrantyInformation,omitempty"`
	ShippingInformation  string     `json:"shippingInformation,omitempty"`
	AvailabilityStatus   string     `json:"availabilityStatus,omitempty"`
	Reviews              []Review   `json:"reviews,omitempty"`
	ReturnPolicy         string     `json:"returnPolicy,omitempty"`
	MinimumOrderQuantity int        `json:"minimumOrderQuantity,omitempty"`
	Thumbnail            string     `json:"thumbnail"`
	Images               []string   `json:"images,omitempty"`
}

// ListQuery identifies one page of one collection. It is comparable and used as the cache key;
// an empty Search or Category means "no filter".
type ListQuery struct {
	Kind     ResourceKind
	Page     int
	Search   string
	Category string
}

// Skip is the offset of the first item of the page.
func (q ListQuery) Skip() int {
	return q.Page * PageSize
}

// Page is one page of a collection plus the total number of matches of the query.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// PageCount returns the number of addressable pages for total matches.
func PageCount(total int) int {
	if total <= 0 {
		return 0
	}

	return (total + PageSize - 1) / PageSize
}

type Overview struct {
	Identity      *Identity `json:"identity"`
	TotalUsers    int       `json:"totalUsers"`
	TotalProducts int       `json:"totalProducts"`
}
