package config

import (
	"log/slog"

	"github.com/jpalmerr/slotwatch"
	"github.com/jpalmerr/slotwatch/usps"
)

// Build converts parsed configuration into a ready-to-start
// [slotwatch.Watcher] backed by the USPS provider.
//
// Cross-field constraints live in the core: location XOR validation and
// the auto-booking identity requirement both surface here as
// [slotwatch.ConfigError] values with distinct kinds.
func Build(cfg *Config, logger *slog.Logger) (*slotwatch.Watcher, error) {
	criteria, err := BuildCriteria(cfg)
	if err != nil {
		return nil, err
	}

	providerOpts := []usps.Option{}
	if cfg.BaseURL != "" {
		providerOpts = append(providerOpts, usps.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Booking.Auto {
		providerOpts = append(providerOpts, usps.WithExperimentalBooking())
	}
	provider := usps.New(criteria, providerOpts...)

	opts := []slotwatch.Option{
		slotwatch.WithCriteria(criteria),
		slotwatch.WithProvider(provider),
		slotwatch.WithPollingInterval(cfg.PollInterval.Duration()),
		slotwatch.WithChunkSize(cfg.ChunkSize),
	}

	if logger != nil {
		opts = append(opts, slotwatch.WithLogger(logger))
	}
	if cfg.DateTolerance > 0 {
		opts = append(opts, slotwatch.WithDateTolerance(cfg.DateTolerance))
	}
	if !cfg.Window.Start.IsZero() || !cfg.Window.End.IsZero() {
		opts = append(opts, slotwatch.WithDateWindow(slotwatch.DateWindow{
			Start: cfg.Window.Start.Time(),
			End:   cfg.Window.End.Time(),
		}))
	}
	if cfg.DiscordWebhook != "" {
		opts = append(opts, slotwatch.WithDiscordWebhook(cfg.DiscordWebhook))
	}
	if cfg.StatusPort != 0 {
		opts = append(opts, slotwatch.WithStatusPort(cfg.StatusPort))
	}
	if cfg.Booking.Auto {
		opts = append(opts, slotwatch.WithAutoBook())
	}

	return slotwatch.New(opts...)
}

// BuildCriteria converts the config's search fields into validated
// [slotwatch.SearchCriteria].
func BuildCriteria(cfg *Config) (slotwatch.SearchCriteria, error) {
	loc, err := slotwatch.ParseLocation(cfg.Location.ZIP, cfg.Location.City, cfg.Location.State)
	if err != nil {
		return slotwatch.SearchCriteria{}, err
	}

	criteriaOpts := []slotwatch.CriteriaOption{
		slotwatch.WithRadius(cfg.RadiusMiles),
		slotwatch.WithParty(cfg.Adults, cfg.Minors),
		slotwatch.WithCategory(slotwatch.Category(cfg.Category)),
	}

	// the identity is attached whenever any field is present, so a
	// partially-filled identity fails validation even without auto
	if cfg.Booking.Auto || cfg.Booking.FirstName != "" || cfg.Booking.LastName != "" ||
		cfg.Booking.Email != "" || cfg.Booking.Phone != "" {
		criteriaOpts = append(criteriaOpts, slotwatch.WithIdentity(slotwatch.BookingIdentity{
			FirstName: cfg.Booking.FirstName,
			LastName:  cfg.Booking.LastName,
			Email:     cfg.Booking.Email,
			Phone:     cfg.Booking.Phone,
		}))
	}

	return slotwatch.NewCriteria(loc, criteriaOpts...)
}
