// Package dataset holds the static tables the e2e suites and the demo
// storefront share: accounts, checkout payloads, promo codes, reference
// products, test cards and the storefront catalog.
package dataset

// Credential is a login identity. Identifier is a username or an email
// depending on the site.
type Credential struct {
	Identifier string
	Secret     string
	FirstName  string
	LastName   string
}

// Accounts accepted by the demo sites.
var (
	ValidUser = Credential{
		Identifier: "standard_user",
		Secret:     "secret_sauce",
		FirstName:  "Standard",
		LastName:   "User",
	}
	NewUser = Credential{
		Identifier: "performance_glitch_user",
		Secret:     "secret_sauce",
		FirstName:  "Performance",
		LastName:   "User",
	}
	InvalidUser = Credential{
		Identifier: "invalid_user",
		Secret:     "secret_sauce",
	}
	WrongPasswordUser = Credential{
		Identifier: "standard_user",
		Secret:     "wrong_password",
	}
	LockedOutUser = Credential{
		Identifier: "locked_out_user",
		Secret:     "secret_sauce",
	}
	ProblemUser = Credential{
		Identifier: "problem_user",
		Secret:     "secret_sauce",
		FirstName:  "Problem",
		LastName:   "User",
	}
)

// Error texts the demo site shows on its login form.
const (
	MismatchError  = "Epic sadface: Username and password do not match any user in this service"
	LockedOutError = "Epic sadface: Sorry, this user has been locked out."
)
