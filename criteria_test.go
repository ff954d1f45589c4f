package slotwatch

import (
	"errors"
	"testing"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name             string
		zip, city, state string
		wantKind         ConfigErrorKind // empty means success
		wantPostal       bool
	}{
		{name: "zip only", zip: "78701", wantPostal: true},
		{name: "city and state", city: "Austin", state: "TX"},
		{name: "zip and city conflict", zip: "78701", city: "Austin", state: "TX", wantKind: KindLocationConflict},
		{name: "zip and state conflict", zip: "78701", state: "TX", wantKind: KindLocationConflict},
		{name: "nothing set", wantKind: KindLocationMissing},
		{name: "city without state", city: "Austin", wantKind: KindLocationMissing},
		{name: "state without city", state: "TX", wantKind: KindLocationMissing},
		{name: "whitespace only zip", zip: "   ", wantKind: KindLocationMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocation(tt.zip, tt.city, tt.state)

			if tt.wantKind != "" {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("ParseLocation() error = %v, want *ConfigError", err)
				}
				if cfgErr.Kind != tt.wantKind {
					t.Errorf("ConfigError.Kind = %q, want %q", cfgErr.Kind, tt.wantKind)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseLocation() error = %v", err)
			}
			if loc.IsPostal() != tt.wantPostal {
				t.Errorf("IsPostal() = %v, want %v", loc.IsPostal(), tt.wantPostal)
			}
		})
	}
}

func TestLocation_String(t *testing.T) {
	if got := PostalCode("78701").String(); got != "ZIP 78701" {
		t.Errorf("PostalCode String() = %q, want %q", got, "ZIP 78701")
	}
	if got := CityState("Austin", "TX").String(); got != "Austin, TX" {
		t.Errorf("CityState String() = %q, want %q", got, "Austin, TX")
	}
}

func TestNewCriteria_Defaults(t *testing.T) {
	c, err := NewCriteria(PostalCode("78701"))
	if err != nil {
		t.Fatalf("NewCriteria() error = %v", err)
	}

	if c.RadiusMiles() != 10 {
		t.Errorf("RadiusMiles() = %d, want 10", c.RadiusMiles())
	}
	if c.Adults() != 1 {
		t.Errorf("Adults() = %d, want 1", c.Adults())
	}
	if c.Minors() != 0 {
		t.Errorf("Minors() = %d, want 0", c.Minors())
	}
	if c.Category() != CategoryPassport {
		t.Errorf("Category() = %q, want %q", c.Category(), CategoryPassport)
	}
	if _, ok := c.Identity(); ok {
		t.Error("Identity() reported an identity; none was configured")
	}
}

func TestNewCriteria_ZeroLocation(t *testing.T) {
	_, err := NewCriteria(Location{})

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewCriteria() error = %v, want *ConfigError", err)
	}
	if cfgErr.Kind != KindLocationMissing {
		t.Errorf("ConfigError.Kind = %q, want %q", cfgErr.Kind, KindLocationMissing)
	}
}

func TestNewCriteria_InvalidOptions(t *testing.T) {
	tests := []struct {
		name     string
		opt      CriteriaOption
		wantKind ConfigErrorKind
	}{
		{name: "zero radius", opt: WithRadius(0), wantKind: KindInvalidRadius},
		{name: "negative radius", opt: WithRadius(-5), wantKind: KindInvalidRadius},
		{name: "zero adults", opt: WithParty(0, 0), wantKind: KindInvalidParty},
		{name: "negative minors", opt: WithParty(1, -1), wantKind: KindInvalidParty},
		{name: "unsupported category", opt: WithCategory("VISA"), wantKind: KindInvalidCategory},
		{name: "incomplete identity", opt: WithIdentity(BookingIdentity{FirstName: "Ada"}), wantKind: KindIdentityMissing},
		{
			name: "identity with short phone",
			opt: WithIdentity(BookingIdentity{
				FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555-0199",
			}),
			wantKind: KindIdentityMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCriteria(PostalCode("78701"), tt.opt)

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("NewCriteria() error = %v, want *ConfigError", err)
			}
			if cfgErr.Kind != tt.wantKind {
				t.Errorf("ConfigError.Kind = %q, want %q", cfgErr.Kind, tt.wantKind)
			}
		})
	}
}

func TestWithCategory_CaseInsensitive(t *testing.T) {
	c, err := NewCriteria(PostalCode("78701"), WithCategory("passport"))
	if err != nil {
		t.Fatalf("NewCriteria() error = %v", err)
	}
	if c.Category() != CategoryPassport {
		t.Errorf("Category() = %q, want %q", c.Category(), CategoryPassport)
	}
}

func TestWithIdentity_Complete(t *testing.T) {
	want := BookingIdentity{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "(512) 555-0199",
	}

	c, err := NewCriteria(PostalCode("78701"), WithIdentity(want))
	if err != nil {
		t.Fatalf("NewCriteria() error = %v", err)
	}

	got, ok := c.Identity()
	if !ok {
		t.Fatal("Identity() reported no identity")
	}
	if got != want {
		t.Errorf("Identity() = %+v, want %+v", got, want)
	}
}

func TestBookingIdentity_PhoneDigits(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"(512) 555-0199", "5125550199"},
		{"512.555.0199", "5125550199"},
		{"5125550199", "5125550199"},
		{"", ""},
	}

	for _, tt := range tests {
		id := BookingIdentity{Phone: tt.phone}
		if got := id.PhoneDigits(); got != tt.want {
			t.Errorf("PhoneDigits(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}
