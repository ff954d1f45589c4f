// Package usps implements the slotwatch Provider against the USPS retail
// customer appointment scheduler REST API.
//
// The API is unofficial: endpoints and payload shapes were observed from
// the public scheduling tool. Facility and time searches are plain JSON
// POSTs and work reliably; appointment creation additionally depends on
// browser session state this client does not carry, so it is gated behind
// [WithExperimentalBooking] and documented as known-incomplete.
package usps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jpalmerr/slotwatch"
	"github.com/jpalmerr/slotwatch/internal/retry"
)

const (
	defaultBaseURL = "https://tools.usps.com/UspsToolsRestServices/rest/v2"

	facilityScheduleSearchPath = "/facilityScheduleSearch"
	appointmentTimeSearchPath  = "/appointmentTimeSearch"
	createAppointmentPath      = "/createAppointment"

	// The scheduler rejects requests without a browser User-Agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/109.0.0.0 Safari/537.36 Edg/109.0.1518.78"

	requestTimeout      = 10 * time.Second
	maxResponseBodySize = 1 << 20 // 1MB

	// timeEntryLayout is the zone-less local timestamp format used in
	// appointment time responses.
	timeEntryLayout = "2006-01-02T15:04:05"
)

// connection pooling limits to avoid exhausting sockets while fanning out
// per-date lookups
const (
	maxIdleConns        = 100
	maxIdleConnsPerHost = 10
	maxConnsPerHost     = 10
	idleConnTimeout     = 60 * time.Second
)

// ErrBookingDisabled is returned by CreateAppointment unless the client was
// constructed with [WithExperimentalBooking].
var ErrBookingDisabled = errors.New("usps: appointment creation is experimental and not enabled")

// Client issues facility, time, and booking queries against the USPS
// scheduler. It implements [slotwatch.Provider].
//
// Every call is retried under a bounded exponential-backoff policy:
// connection failures, HTTP error statuses, and malformed response bodies
// all count as transient. After the wall-clock ceiling the last error
// propagates to the caller.
type Client struct {
	hc             *http.Client
	baseURL        string
	policy         retry.Policy
	criteria       slotwatch.SearchCriteria
	bookingEnabled bool
}

// Option configures a [Client] during construction.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point the
// client at a local server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithRetryPolicy overrides the retry policy applied to every call.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithExperimentalBooking enables CreateAppointment.
//
// The upstream booking flow expects cookies and session tokens established
// by the browser UI; requests from this client may be rejected even with a
// well-formed payload. Enable only if you accept that the call can fail
// structurally, not just transiently.
func WithExperimentalBooking() Option {
	return func(c *Client) { c.bookingEnabled = true }
}

// New creates a Client bound to the given search criteria. The criteria
// supply the location filter, radius, party composition, and category sent
// with every query.
func New(criteria slotwatch.SearchCriteria, opts ...Option) *Client {
	c := &Client{
		hc: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        maxIdleConns,
				MaxIdleConnsPerHost: maxIdleConnsPerHost,
				MaxConnsPerHost:     maxConnsPerHost,
				IdleConnTimeout:     idleConnTimeout,
			},
		},
		baseURL:  defaultBaseURL,
		policy:   retry.DefaultPolicy(),
		criteria: criteria,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// facilityScheduleRequest is the facility search payload. The API wants
// every numeric field as a string.
type facilityScheduleRequest struct {
	Date           string `json:"date"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip5           string `json:"zip5"`
	Radius         string `json:"radius"`
	POScheduleType string `json:"poScheduleType"`
	NumberOfAdults string `json:"numberOfAdults"`
	NumberOfMinors string `json:"numberOfMinors"`
}

type facilityScheduleResponse struct {
	FacilityDetails []facilityDetail `json:"facilityDetails"`
}

type facilityDetail struct {
	FDBID   int             `json:"fdbId"`
	Name    string          `json:"name"`
	Address facilityAddress `json:"address"`
	Date    []dateStatus    `json:"date"`
}

type facilityAddress struct {
	AddressLineOne string `json:"addressLineOne"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip5           string `json:"zip5"`
}

type dateStatus struct {
	Date   string `json:"date"`
	Status bool   `json:"status"`
}

// ListFacilities returns facilities with open slots near the configured
// location on date, in provider response order.
func (c *Client) ListFacilities(ctx context.Context, date time.Time) ([]slotwatch.Facility, error) {
	loc := c.criteria.Location()
	payload := facilityScheduleRequest{
		Date:           slotwatch.DateKey(date),
		City:           loc.City(),
		State:          loc.State(),
		Zip5:           loc.ZIP(),
		Radius:         fmt.Sprintf("%d", c.criteria.RadiusMiles()),
		POScheduleType: string(c.criteria.Category()),
		NumberOfAdults: fmt.Sprintf("%d", c.criteria.Adults()),
		NumberOfMinors: fmt.Sprintf("%d", c.criteria.Minors()),
	}

	// decoding runs inside the retry budget: a truncated or garbled body
	// is as transient as a connection reset
	return retry.Do(ctx, c.policy, func() ([]slotwatch.Facility, error) {
		body, err := c.post(ctx, facilityScheduleSearchPath, payload)
		if err != nil {
			return nil, err
		}

		var res facilityScheduleResponse
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, fmt.Errorf("usps: malformed facility response: %w", err)
		}

		facilities := make([]slotwatch.Facility, 0, len(res.FacilityDetails))
		for _, fd := range res.FacilityDetails {
			availability := make(map[string]bool, len(fd.Date))
			for _, ds := range fd.Date {
				availability[ds.Date] = ds.Status
			}
			facilities = append(facilities, slotwatch.Facility{
				ID:           fd.FDBID,
				Name:         fd.Name,
				Street:       fd.Address.AddressLineOne,
				City:         fd.Address.City,
				State:        fd.Address.State,
				ZIP:          fd.Address.Zip5,
				Availability: availability,
			})
		}
		return facilities, nil
	})
}

// appointmentTimeRequest is the time search payload. fdbId is a list of
// stringified ids even for a single-facility query.
type appointmentTimeRequest struct {
	Date               string   `json:"date"`
	FDBID              []string `json:"fdbId"`
	ProductType        string   `json:"productType"`
	NumberOfAdults     string   `json:"numberOfAdults"`
	NumberOfMinors     string   `json:"numberOfMinors"`
	SkipEndOfDayRecord bool     `json:"skipEndOfDayRecord"`
}

type appointmentTimeResponse struct {
	AppointmentTimeDetailExtended []timeDetail `json:"appointmentTimeDetailExtended"`
}

type timeDetail struct {
	StartDateTime string `json:"startDateTime"`
	Status        string `json:"status"`
	Color         string `json:"color"`
}

// ListTimes returns the appointment times at a facility on date, in
// provider response order.
func (c *Client) ListTimes(ctx context.Context, date time.Time, facilityID int) ([]slotwatch.TimeEntry, error) {
	payload := appointmentTimeRequest{
		Date:               slotwatch.DateKey(date),
		FDBID:              []string{fmt.Sprintf("%d", facilityID)},
		ProductType:        string(c.criteria.Category()),
		NumberOfAdults:     fmt.Sprintf("%d", c.criteria.Adults()),
		NumberOfMinors:     fmt.Sprintf("%d", c.criteria.Minors()),
		SkipEndOfDayRecord: true,
	}

	// decoding and timestamp parsing run inside the retry budget, same as
	// ListFacilities
	return retry.Do(ctx, c.policy, func() ([]slotwatch.TimeEntry, error) {
		body, err := c.post(ctx, appointmentTimeSearchPath, payload)
		if err != nil {
			return nil, err
		}

		var res appointmentTimeResponse
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, fmt.Errorf("usps: malformed appointment time response: %w", err)
		}

		entries := make([]slotwatch.TimeEntry, 0, len(res.AppointmentTimeDetailExtended))
		for _, td := range res.AppointmentTimeDetailExtended {
			start, err := time.ParseInLocation(timeEntryLayout, td.StartDateTime, time.Local)
			if err != nil {
				return nil, fmt.Errorf("usps: malformed startDateTime %q: %w", td.StartDateTime, err)
			}
			entries = append(entries, slotwatch.TimeEntry{
				Start:  start,
				Status: td.Status,
				Color:  td.Color,
			})
		}
		return entries, nil
	})
}

// createAppointmentRequest is the booking payload. The phone number is
// decomposed into area code, exchange, and line number as the form UI does.
type createAppointmentRequest struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	FDBID          string `json:"fdbId"`
	ProductType    string `json:"productType"`
	NumberOfAdults string `json:"numberOfAdults"`
	NumberOfMinors string `json:"numberOfMinors"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	AreaCode       string `json:"areaCode"`
	ExchangeNumber string `json:"exchangeNumber"`
	LineNumber     string `json:"lineNumber"`
}

type createAppointmentResponse struct {
	ConfirmationNumber string `json:"confirmationNumber"`
}

// CreateAppointment books a slot and returns the confirmation number.
//
// NOT idempotent: a second call for the same slot may double-book. Returns
// [ErrBookingDisabled] unless the client was constructed with
// [WithExperimentalBooking].
func (c *Client) CreateAppointment(ctx context.Context, req slotwatch.BookingRequest) (string, error) {
	if !c.bookingEnabled {
		return "", ErrBookingDisabled
	}

	digits := req.Identity.PhoneDigits()
	if len(digits) != 10 {
		return "", fmt.Errorf("usps: phone number must have 10 digits, got %d", len(digits))
	}

	payload := createAppointmentRequest{
		Date:           slotwatch.DateKey(req.Start),
		Time:           req.Start.Format("15:04"),
		FDBID:          fmt.Sprintf("%d", req.FacilityID),
		ProductType:    string(req.Category),
		NumberOfAdults: fmt.Sprintf("%d", req.Adults),
		NumberOfMinors: fmt.Sprintf("%d", req.Minors),
		FirstName:      req.Identity.FirstName,
		LastName:       req.Identity.LastName,
		Email:          req.Identity.Email,
		AreaCode:       digits[0:3],
		ExchangeNumber: digits[3:6],
		LineNumber:     digits[6:10],
	}

	// Booking must be attempted at most once per slot, so no retry here:
	// a timeout after the server accepted the request could double-book.
	body, err := c.post(ctx, createAppointmentPath, payload)
	if err != nil {
		return "", err
	}

	var res createAppointmentResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("usps: malformed booking response: %w", err)
	}
	if res.ConfirmationNumber == "" {
		return "", errors.New("usps: booking response carried no confirmation number")
	}
	return res.ConfirmationNumber, nil
}

// post performs a single JSON POST attempt and returns the response body.
// Transport failures, HTTP error statuses, and unreadable bodies are
// returned as plain (retriable) errors; request construction failures are
// permanent.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("usps: failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("usps: failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usps: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("usps: failed to read response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("usps: %s returned status %d", path, resp.StatusCode)
	}
	return data, nil
}
