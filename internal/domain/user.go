package domain

const (
	RoleCustomer = "CUSTOMER"
	RoleB2B      = "B2B"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID       string `db:"id"`
	Email    string `db:"email"`
	Name     string `db:"name"`
	Hash     string `db:"password_hash"`
	Role     string `db:"role"`
	Approved bool   `db:"approved"`
	Company  string `db:"company_name"`
}

// Wholesale reports whether the user buys on the B2B channel.
// Unapproved B2B accounts shop at retail prices like everyone else.
func (u *User) Wholesale() bool {
	return u != nil && u.Role == RoleB2B && u.Approved
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
