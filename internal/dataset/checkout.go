package dataset

// CheckoutPayload is a flat set of checkout form values.
type CheckoutPayload struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	ZipCode    string
	Country    string
	CardName   string
	CardNumber string
	Expiry     string
	CVC        string
}

var (
	ValidCheckout = CheckoutPayload{
		FirstName:  "John",
		LastName:   "Doe",
		Email:      "john.doe@example.com",
		Phone:      "+1234567890",
		Address:    "123 Main Street",
		City:       "New York",
		State:      "NY",
		ZipCode:    "10001",
		Country:    "US",
		CardName:   "John Doe",
		CardNumber: ApprovedCard.Number,
		Expiry:     ApprovedCard.Expiry,
		CVC:        ApprovedCard.CVC,
	}
	EmptyCheckout  = CheckoutPayload{}
	EditedCheckout = CheckoutPayload{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+0987654321",
		Address:   "New Address",
		City:      "LA",
		State:     "CA",
		ZipCode:   "90001",
		Country:   "US",
	}
)

// TestCard is a card number with a known authorization outcome.
type TestCard struct {
	Number      string
	Expiry      string
	CVC         string
	Description string
}

var (
	ApprovedCard = TestCard{Number: "4111111111111111", Expiry: "12/30", CVC: "123", Description: "Visa, approved"}
	DeclinedCard = TestCard{Number: "4000000000000002", Expiry: "12/30", CVC: "123", Description: "Visa, declined"}
)
