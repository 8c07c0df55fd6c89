package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mvaleed/catalog/internal/result"
)

// Numeric and rating rules.
const (
	RuleNegative    = "Negative"
	RulePrecision   = "Precision"
	RuleNonPositive = "NonPositive"
	RuleTooLarge    = "TooLarge"
)

// MaxPriceCents is the highest accepted price, 1,000,000.00.
const MaxPriceCents int64 = 100_000_000

// Price is a non-negative amount stored in cents. Zero means free to play.
type Price struct {
	cents int64
}

// NewPrice accepts an amount in currency units with at most two decimals.
func NewPrice(amount float64) result.Result[Price] {
	var errs []result.ValidationError
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return result.Invalid[Price](FieldPrice.Violation(RuleInvalid, "price must be a finite number"))
	}
	if amount < 0 {
		errs = append(errs, FieldPrice.Violation(RuleNegative, "price must not be negative"))
	}
	if amount*100 > float64(MaxPriceCents) {
		return result.Invalid[Price](FieldPrice.Violation(RuleTooLarge, tooLargeMessage))
	}
	cents := math.Round(amount * 100)
	if math.Abs(cents-amount*100) > 1e-6 {
		errs = append(errs, FieldPrice.Violation(RulePrecision, "price must have at most two decimal places"))
	}
	if len(errs) > 0 {
		return result.Invalid[Price](errs...)
	}
	return result.Success(Price{cents: int64(cents)})
}

var tooLargeMessage = fmt.Sprintf("price must be at most %d.%02d", MaxPriceCents/100, MaxPriceCents%100)

// PriceFromCents restores a stored price.
func PriceFromCents(cents int64) result.Result[Price] {
	if cents < 0 {
		return result.Invalid[Price](FieldPrice.Violation(RuleNegative, "price must not be negative"))
	}
	if cents > MaxPriceCents {
		return result.Invalid[Price](FieldPrice.Violation(RuleTooLarge, tooLargeMessage))
	}
	return result.Success(Price{cents: cents})
}

func (p Price) Cents() int64 { return p.cents }

func (p Price) Amount() float64 { return float64(p.cents) / 100 }

func (p Price) IsFree() bool { return p.cents == 0 }

func (p Price) String() string { return fmt.Sprintf("%d.%02d", p.cents/100, p.cents%100) }

// DiskSize is the install size in gigabytes.
type DiskSize struct {
	gigabytes float64
}

func NewDiskSize(gigabytes float64) result.Result[DiskSize] {
	if math.IsNaN(gigabytes) || math.IsInf(gigabytes, 0) {
		return result.Invalid[DiskSize](FieldDiskSize.Violation(RuleInvalid, "disk size must be a finite number"))
	}
	if gigabytes <= 0 {
		return result.Invalid[DiskSize](FieldDiskSize.Violation(RuleNonPositive, "disk size must be greater than zero"))
	}
	return result.Success(DiskSize{gigabytes: gigabytes})
}

func (d DiskSize) Gigabytes() float64 { return d.gigabytes }

func (d DiskSize) IsZero() bool { return d.gigabytes == 0 }

// AgeRating is an ESRB-style content rating.
type AgeRating struct {
	code string
}

var ageRatings = []string{"E", "E10+", "T", "M", "AO", "RP"}

func NewAgeRating(raw string) result.Result[AgeRating] {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return result.Invalid[AgeRating](FieldAgeRating.Violation(RuleRequired, "age rating is required"))
	}
	if !slices.Contains(ageRatings, code) {
		return result.Invalid[AgeRating](FieldAgeRating.Violation(RuleInvalid, "age rating must be one of: E, E10+, T, M, AO, RP"))
	}
	return result.Success(AgeRating{code: code})
}

func (a AgeRating) String() string { return a.code }

func (a AgeRating) IsZero() bool { return a.code == "" }
