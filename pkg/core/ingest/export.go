// Package ingest loads deal assumptions from the outside world: property
// export files produced by listing scrapers, and hand-written deal files.
// Mapping is best-effort and advisory. A listing fills the fields it can and
// the baseline covers the rest; anything suspect lands in the warnings.
package ingest

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"dealwise/pkg/core/underwrite"
	"dealwise/pkg/core/utils"
)

// Plausibility bounds for a listed price. Values outside are treated as
// scraper noise and left unmapped.
const (
	priceFloor   = 10_000
	priceCeiling = 10_000_000
)

// Address is the nested address block of an export record.
type Address struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zipcode       string `json:"zipcode"`
}

// Listing is one property record from an export file. The financial
// estimates are pointers: exports carry them only when the source site had
// a number.
type Listing struct {
	ZPID              int64   `json:"zpid"`
	City              string  `json:"city"`
	State             string  `json:"state"`
	HomeStatus        string  `json:"homeStatus"`
	Address           Address `json:"address"`
	Bedrooms          float64 `json:"bedrooms"`
	Bathrooms         float64 `json:"bathrooms"`
	Price             float64 `json:"price"`
	YearBuilt         int     `json:"yearBuilt"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	LivingArea        float64 `json:"livingArea"`
	HomeType          string  `json:"homeType"`
	ListingDataSource string  `json:"listingDataSource"`
	Description       string  `json:"description"`

	RentZestimate   *float64 `json:"rentZestimate,omitempty"`
	PropertyTaxRate *float64 `json:"propertyTaxRate,omitempty"`
	MonthlyHoaFee   *float64 `json:"monthlyHoaFee,omitempty"`
}

// MapResult is the outcome of mapping one listing onto deal inputs. Filled
// names the input fields the listing supplied; everything else came from
// the base record.
type MapResult struct {
	ListingID string            `json:"listingId"`
	Name      string            `json:"name"`
	Inputs    underwrite.Inputs `json:"inputs"`
	Filled    []string          `json:"filled"`
	Warnings  []string          `json:"warnings"`
}

// ParseExport reads a property export: a JSON array of listing records.
// Exports pass through SmartParse, so lightly damaged files still load.
func ParseExport(data []byte) ([]Listing, error) {
	var listings []Listing
	if _, err := utils.SmartParse(string(data), &listings); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return listings, nil
}

// LoadExport reads and parses a property export file.
func LoadExport(path string) ([]Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}
	listings, err := ParseExport(data)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", path, err)
	}
	return listings, nil
}

// MapListing folds one listing over a base set of assumptions. The listing
// contributes what it credibly can: the price when it sits inside the
// plausibility bounds, plus the rent, tax rate, and HOA estimates when the
// export carried them. A listing with neither a street address nor a zpid
// cannot be named and comes back with an empty Name; callers decide whether
// to skip it.
func MapListing(l Listing, base underwrite.Inputs) MapResult {
	res := MapResult{
		Inputs: base,
	}
	if l.ZPID != 0 {
		res.ListingID = fmt.Sprintf("zpid-%d", l.ZPID)
	}

	switch {
	case l.Address.StreetAddress != "" && !strings.EqualFold(l.Address.StreetAddress, "Unknown"):
		res.Name = slugify(l.Address.StreetAddress)
	case res.ListingID != "":
		res.Name = res.ListingID
	default:
		res.Warnings = append(res.Warnings, "listing has neither a street address nor a zpid")
	}

	if l.Price >= priceFloor && l.Price <= priceCeiling {
		res.Inputs.PurchasePrice = l.Price
		res.Filled = append(res.Filled, "purchasePrice")
	} else if l.Price != 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("price %.0f outside plausible bounds, keeping baseline", l.Price))
	} else {
		res.Warnings = append(res.Warnings, "listing carries no price")
	}

	if l.RentZestimate != nil {
		if *l.RentZestimate > 0 {
			res.Inputs.RentMonthly = *l.RentZestimate
			res.Filled = append(res.Filled, "rentMonthly")
		} else {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("rent estimate %.0f is not usable", *l.RentZestimate))
		}
	}

	if l.PropertyTaxRate != nil {
		if *l.PropertyTaxRate >= 0 {
			res.Inputs.PropertyTaxRate = *l.PropertyTaxRate
			res.Filled = append(res.Filled, "propertyTaxRate")
			if *l.PropertyTaxRate > 10 {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("tax rate %.2f%% looks implausibly high", *l.PropertyTaxRate))
			}
		} else {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("tax rate %.2f is negative, keeping baseline", *l.PropertyTaxRate))
		}
	}

	if l.MonthlyHoaFee != nil {
		if *l.MonthlyHoaFee >= 0 {
			res.Inputs.HOAMonthly = *l.MonthlyHoaFee
			res.Filled = append(res.Filled, "hoaMonthly")
		} else {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("HOA fee %.0f is negative, keeping baseline", *l.MonthlyHoaFee))
		}
	}

	return res
}

// slugify turns "123 Elm St" into "123-elm-st" for use as a deal name.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
