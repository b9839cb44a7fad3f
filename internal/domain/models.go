package domain

type Category struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	ImageURL    string `db:"image_url"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

type Product struct {
	ID          string  `db:"id"`
	CategoryID  string  `db:"category_id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	B2CPrice    float64 `db:"b2c_price"`
	B2BPrice    float64 `db:"b2b_price"`
	MinQtyB2B   int     `db:"min_qty_b2b"`
	InStock     bool    `db:"in_stock"`
	ImageURL    string  `db:"image_url"`
	SKU         string  `db:"sku"`
	Material    string  `db:"material"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

// Channel distinguishes retail from wholesale pricing.
const (
	ChannelB2C = "B2C"
	ChannelB2B = "B2B"
)

// Reseller application review states.
const (
	AppPending  = "pending"
	AppApproved = "approved"
	AppRejected = "rejected"
)

type ResellerApplication struct {
	ID              string `db:"id"`
	UserID          string `db:"user_id"`
	CompanyName     string `db:"company_name"`
	ContactPerson   string `db:"contact_person"`
	Email           string `db:"email"`
	Phone           string `db:"phone"`
	BusinessAddress string `db:"business_address"`
	City            string `db:"city"`
	State           string `db:"state"`
	ZipCode         string `db:"zip_code"`
	BusinessType    string `db:"business_type"`
	YearsInBusiness string `db:"years_in_business"`
	TaxID           string `db:"tax_id"`
	Website         string `db:"website"`
	MonthlyVolume   string `db:"expected_monthly_volume"`
	Description     string `db:"business_description"`
	TradeReferences string `db:"trade_references"`
	Status          string `db:"status"`
	ReviewedBy      string `db:"reviewed_by"`
	ReviewedAt      string `db:"reviewed_at"`
	CreatedAt       string `db:"created_at"`
}
