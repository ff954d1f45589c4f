package slotwatch

import (
	"fmt"
	"strings"
)

const (
	defaultRadiusMiles = 10
	defaultAdults      = 1
)

// Category identifies the kind of appointment being searched for.
//
// The scheduling provider currently supports a single category,
// [CategoryPassport]. The type exists so additional categories can be added
// without changing the criteria surface.
type Category string

// CategoryPassport is the passport application appointment category.
const CategoryPassport Category = "PASSPORT"

// locationKind tags the variant held by a Location value.
type locationKind int

const (
	locationUnset locationKind = iota
	locationPostal
	locationCityState
)

// Location is the geographic center of a slot search.
//
// A Location is either a postal code or a city/state pair, never both.
// Construct one with [PostalCode], [CityState], or [ParseLocation]; the
// zero value is invalid and rejected by [NewCriteria].
type Location struct {
	kind  locationKind
	zip   string
	city  string
	state string
}

// PostalCode returns a Location centered on a ZIP code.
func PostalCode(zip string) Location {
	return Location{kind: locationPostal, zip: strings.TrimSpace(zip)}
}

// CityState returns a Location centered on a city within a state or region.
func CityState(city, state string) Location {
	return Location{
		kind:  locationCityState,
		city:  strings.TrimSpace(city),
		state: strings.TrimSpace(state),
	}
}

// ParseLocation builds a Location from raw configuration fields, enforcing
// that exactly one form is present.
//
// This is the validation entry point for configuration surfaces (files,
// flags) where both forms can be physically expressed. SDK callers should
// prefer [PostalCode] or [CityState] directly.
func ParseLocation(zip, city, state string) (Location, error) {
	zip = strings.TrimSpace(zip)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	hasZip := zip != ""
	hasCityState := city != "" || state != ""

	switch {
	case hasZip && hasCityState:
		return Location{}, configErrorf(KindLocationConflict,
			"only one of postal code or city/state may be set")
	case hasZip:
		return PostalCode(zip), nil
	case city != "" && state != "":
		return CityState(city, state), nil
	case hasCityState:
		return Location{}, configErrorf(KindLocationMissing,
			"both city and state must be set")
	default:
		return Location{}, configErrorf(KindLocationMissing,
			"one of postal code or city/state must be set")
	}
}

// IsPostal reports whether the location is postal-code based.
func (l Location) IsPostal() bool {
	return l.kind == locationPostal
}

// ZIP returns the postal code, or empty for a city/state location.
func (l Location) ZIP() string {
	return l.zip
}

// City returns the city, or empty for a postal-code location.
func (l Location) City() string {
	return l.city
}

// State returns the state or region, or empty for a postal-code location.
func (l Location) State() string {
	return l.state
}

// String returns a human-readable form of the location for logs and
// notification messages.
func (l Location) String() string {
	switch l.kind {
	case locationPostal:
		return "ZIP " + l.zip
	case locationCityState:
		return l.city + ", " + l.state
	default:
		return "<no location>"
	}
}

// valid reports whether the location carries a complete variant.
func (l Location) valid() bool {
	switch l.kind {
	case locationPostal:
		return l.zip != ""
	case locationCityState:
		return l.city != "" && l.state != ""
	default:
		return false
	}
}

// BookingIdentity carries the customer fields required by the provider's
// booking endpoint. All fields are required for auto-booking; Phone must
// contain exactly ten digits (separators are tolerated).
type BookingIdentity struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// PhoneDigits returns the digits of the phone number, stripped of
// separators. The provider decomposes this into area code, exchange, and
// line number.
func (id BookingIdentity) PhoneDigits() string {
	var b strings.Builder
	for _, r := range id.Phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// complete reports whether every field needed for booking is present.
func (id BookingIdentity) complete() bool {
	return id.FirstName != "" &&
		id.LastName != "" &&
		id.Email != "" &&
		len(id.PhoneDigits()) == 10
}

// SearchCriteria is the immutable description of what to search for: a
// location with a radius, a party composition, an appointment category, and
// optionally the identity used for auto-booking.
//
// SearchCriteria is validated once by [NewCriteria]; a value that came out
// of NewCriteria is always internally consistent.
type SearchCriteria struct {
	location    Location
	radiusMiles int
	adults      int
	minors      int
	category    Category
	identity    *BookingIdentity
}

// criteriaConfig holds mutable state during criteria construction.
type criteriaConfig struct {
	radiusMiles int
	adults      int
	minors      int
	category    Category
	identity    *BookingIdentity
}

// CriteriaOption configures optional [SearchCriteria] fields during
// construction via [NewCriteria].
type CriteriaOption func(*criteriaConfig) error

// WithRadius sets the search radius in miles. Defaults to 10.
func WithRadius(miles int) CriteriaOption {
	return func(cfg *criteriaConfig) error {
		if miles <= 0 {
			return configErrorf(KindInvalidRadius, "radius must be positive, got %d", miles)
		}
		cfg.radiusMiles = miles
		return nil
	}
}

// WithParty sets the party composition. Defaults to one adult, no minors.
func WithParty(adults, minors int) CriteriaOption {
	return func(cfg *criteriaConfig) error {
		if adults < 1 {
			return configErrorf(KindInvalidParty, "at least one adult is required, got %d", adults)
		}
		if minors < 0 {
			return configErrorf(KindInvalidParty, "minor count cannot be negative, got %d", minors)
		}
		cfg.adults = adults
		cfg.minors = minors
		return nil
	}
}

// WithCategory sets the appointment category. Defaults to
// [CategoryPassport], which is also the only category the provider
// currently accepts. The value is upper-cased before validation.
func WithCategory(c Category) CriteriaOption {
	return func(cfg *criteriaConfig) error {
		upper := Category(strings.ToUpper(string(c)))
		if upper != CategoryPassport {
			return configErrorf(KindInvalidCategory, "unsupported appointment category %q", c)
		}
		cfg.category = upper
		return nil
	}
}

// WithIdentity attaches the booking identity used when auto-booking is
// enabled. The identity is validated for completeness here so that a broken
// identity fails construction rather than the first booking attempt.
func WithIdentity(id BookingIdentity) CriteriaOption {
	return func(cfg *criteriaConfig) error {
		if !id.complete() {
			return configErrorf(KindIdentityMissing,
				"booking identity requires first name, last name, email, and a 10-digit phone number")
		}
		cfg.identity = &id
		return nil
	}
}

// NewCriteria creates a validated [SearchCriteria] for the given location.
//
// The location must be a complete variant built with [PostalCode],
// [CityState], or [ParseLocation]. Options are applied in order; the first
// failing option aborts construction.
//
// Example:
//
//	criteria, err := slotwatch.NewCriteria(slotwatch.PostalCode("78701"),
//	    slotwatch.WithRadius(25),
//	    slotwatch.WithParty(2, 1),
//	)
func NewCriteria(loc Location, opts ...CriteriaOption) (SearchCriteria, error) {
	if !loc.valid() {
		return SearchCriteria{}, configErrorf(KindLocationMissing,
			"location is incomplete: %s", loc)
	}

	cfg := &criteriaConfig{
		radiusMiles: defaultRadiusMiles,
		adults:      defaultAdults,
		category:    CategoryPassport,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return SearchCriteria{}, err
		}
	}

	return SearchCriteria{
		location:    loc,
		radiusMiles: cfg.radiusMiles,
		adults:      cfg.adults,
		minors:      cfg.minors,
		category:    cfg.category,
		identity:    cfg.identity,
	}, nil
}

// Location returns the search location.
func (c SearchCriteria) Location() Location {
	return c.location
}

// RadiusMiles returns the search radius in miles.
func (c SearchCriteria) RadiusMiles() int {
	return c.radiusMiles
}

// Adults returns the number of adults in the party.
func (c SearchCriteria) Adults() int {
	return c.adults
}

// Minors returns the number of minors in the party.
func (c SearchCriteria) Minors() int {
	return c.minors
}

// Category returns the appointment category.
func (c SearchCriteria) Category() Category {
	return c.category
}

// Identity returns the booking identity and whether one was configured.
func (c SearchCriteria) Identity() (BookingIdentity, bool) {
	if c.identity == nil {
		return BookingIdentity{}, false
	}
	return *c.identity, true
}

// describe returns the log-friendly search parameters used in "no
// appointment" warnings.
func (c SearchCriteria) describe() string {
	return fmt.Sprintf("%s appointments within %d miles of %s",
		c.category, c.radiusMiles, c.location)
}
