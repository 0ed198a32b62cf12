package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Authorization result codes
const (
	ResultAuthorised = "Authorised"
	ResultRefused    = "Refused"
	ResultError      = "Error"
	ResultCancelled  = "Cancelled"
)

// CardAuthorizer approves or refuses a card payment
type CardAuthorizer interface {
	Authorize(req *AuthorizationRequest) (*AuthorizationResponse, error)
}

// Amount represents a monetary amount in minor units
type Amount struct {
	Currency string
	Value    int64
}

// Card holds the card details entered at checkout
type Card struct {
	Holder string
	Number string
	Expiry string // MM/YY
	CVC    string
}

// AuthorizationRequest represents a request to authorize a payment
type AuthorizationRequest struct {
	Reference string
	Amount    Amount
	Card      Card
}

// AuthorizationResponse is the outcome of an authorization
type AuthorizationResponse struct {
	ResultCode    string
	PSPReference  string
	RefusalReason string
}

// SandboxAuthorizer is an offline processor with test-card behaviour:
// numbers on the decline list are refused, malformed or expired cards are
// refused with a reason, everything else passing the Luhn check is approved.
type SandboxAuthorizer struct {
	Declined map[string]string
	Now      func() time.Time
}

// NewSandboxAuthorizer returns an authorizer that declines the standard
// decline test card.
func NewSandboxAuthorizer() *SandboxAuthorizer {
	return &SandboxAuthorizer{
		Declined: map[string]string{"4000000000000002": "Card declined"},
		Now:      time.Now,
	}
}

// Authorize implements CardAuthorizer
func (a *SandboxAuthorizer) Authorize(req *AuthorizationRequest) (*AuthorizationResponse, error) {
	if req.Amount.Value <= 0 {
		return nil, fmt.Errorf("invalid amount %d", req.Amount.Value)
	}

	resp := &AuthorizationResponse{
		PSPReference: "PSP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16]),
	}
	number := strings.ReplaceAll(req.Card.Number, " ", "")

	switch {
	case !luhnValid(number):
		resp.ResultCode, resp.RefusalReason = ResultRefused, "Invalid card number"
	case a.Declined[number] != "":
		resp.ResultCode, resp.RefusalReason = ResultRefused, a.Declined[number]
	case !a.notExpired(req.Card.Expiry):
		resp.ResultCode, resp.RefusalReason = ResultRefused, "Expired card"
	case len(req.Card.CVC) < 3:
		resp.ResultCode, resp.RefusalReason = ResultRefused, "CVC declined"
	default:
		resp.ResultCode = ResultAuthorised
	}
	return resp, nil
}

func (a *SandboxAuthorizer) notExpired(expiry string) bool {
	month, year, ok := strings.Cut(expiry, "/")
	if !ok {
		return false
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return false
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return false
	}
	if y < 100 {
		y += 2000
	}
	now := a.Now()
	// Cards are valid through the last day of their expiry month.
	end := time.Date(y, time.Month(m)+1, 1, 0, 0, 0, 0, time.UTC)
	return now.Before(end)
}

func luhnValid(number string) bool {
	if len(number) < 12 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}
