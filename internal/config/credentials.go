package config

// Credentials are the login used by the pre-authenticated session fixture
type Credentials struct {
	Username string
	Password string
}

// LoadCredentials reads TEST_USERNAME and TEST_PASSWORD, falling back to the
// demo storefront's seeded account.
func LoadCredentials(getenv func(string) string) Credentials {
	creds := Credentials{
		Username: getenv("TEST_USERNAME"),
		Password: getenv("TEST_PASSWORD"),
	}
	if creds.Username == "" {
		creds.Username = "test@example.com"
	}
	if creds.Password == "" {
		creds.Password = "TestPassword123!"
	}
	return creds
}
