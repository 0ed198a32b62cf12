package dataset

import "strings"

// PromoOutcome is what applying a code is expected to do.
type PromoOutcome int

const (
	PromoInvalid PromoOutcome = iota
	PromoValid
	PromoExpired
	PromoGift
)

func (o PromoOutcome) String() string {
	switch o {
	case PromoValid:
		return "valid"
	case PromoExpired:
		return "expired"
	case PromoGift:
		return "gift"
	default:
		return "invalid"
	}
}

const (
	ValidCoupon   = "SAVE10"
	ExpiredCoupon = "EXPIRED"
	InvalidCoupon = "INVALID123"
	GiftCard      = "GIFT50"
)

// Classify maps a code to its expected outcome. Matching ignores case and
// surrounding whitespace.
func Classify(code string) PromoOutcome {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case ValidCoupon:
		return PromoValid
	case ExpiredCoupon:
		return PromoExpired
	case GiftCard:
		return PromoGift
	default:
		return PromoInvalid
	}
}
