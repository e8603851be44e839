// Package beams is a client for the Pusher Beams web device API.
//
// It covers the part of the vendor SDK contract the subscription workflow
// uses: Start registers this device's push subscription with the instance,
// and AddDeviceInterest opts the registered device into an interest.
package beams

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sync"
)

// SDKVersion is reported in device metadata
const SDKVersion = "beamscheck-go/1.0.0"

// MaxInterestLength is the longest interest name the API accepts
const MaxInterestLength = 164

var (
	// ErrInstanceIDRequired is returned by Start when the client was built without an instance id
	ErrInstanceIDRequired = errors.New("beams: instance id is required")
	// ErrNotStarted is returned when registering interests before Start succeeded
	ErrNotStarted = errors.New("beams: client not started")
	// ErrInvalidInterest is returned for interest names the API would reject
	ErrInvalidInterest = errors.New("beams: invalid interest name")
)

var interestPattern = regexp.MustCompile(`^[A-Za-z0-9_\-=@,.;]+$`)

// PushManager creates the browser-style push subscription the device is registered with
type PushManager interface {
	// Subscribe returns the subscription JSON for the given VAPID public key
	Subscribe(ctx context.Context, applicationServerKey string) (string, error)
}

// DeviceRecorder persists registration results
type DeviceRecorder interface {
	RecordDevice(ctx context.Context, deviceID string) error
	RecordInterest(ctx context.Context, interest string) error
}

// Client talks to one Beams instance
type Client struct {
	instanceID string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	push       PushManager
	recorder   DeviceRecorder

	mu       sync.Mutex
	deviceID string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the instance endpoint (https://{instance}.pushnotifications.pusher.com)
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets the HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithRecorder persists device id and interests after each successful call
func WithRecorder(r DeviceRecorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithUserAgent sets the user agent reported in device metadata
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for instanceID. The id is not validated here; an empty
// id surfaces as ErrInstanceIDRequired from Start.
func New(instanceID string, push PushManager, opts ...Option) *Client {
	c := &Client{
		instanceID: instanceID,
		push:       push,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" && instanceID != "" {
		c.baseURL = fmt.Sprintf("https://%s.pushnotifications.pusher.com", instanceID)
	}
	return c
}

// InstanceID returns the configured instance id
func (c *Client) InstanceID() string {
	return c.instanceID
}

// DeviceID returns the id assigned by Start, or "" before Start
func (c *Client) DeviceID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deviceID
}

type vapidKeyResponse struct {
	VAPIDPublicKey string `json:"vapidPublicKey"`
}

type deviceMetadata struct {
	SDKVersion string `json:"sdkVersion"`
	UserAgent  string `json:"userAgent,omitempty"`
}

type registerDeviceRequest struct {
	Token    string         `json:"token"`
	Metadata deviceMetadata `json:"metadata"`
}

type registerDeviceResponse struct {
	ID string `json:"id"`
}

// Start fetches the instance's VAPID key, subscribes the device with it and
// registers the subscription as a web device.
func (c *Client) Start(ctx context.Context) error {
	if c.instanceID == "" {
		return ErrInstanceIDRequired
	}

	var key vapidKeyResponse
	if err := c.do(ctx, http.MethodGet, c.instancePath("/web-vapid-public-key"), nil, &key); err != nil {
		return fmt.Errorf("beams.Start: fetch vapid key: %w", err)
	}

	token, err := c.push.Subscribe(ctx, key.VAPIDPublicKey)
	if err != nil {
		return fmt.Errorf("beams.Start: push subscribe: %w", err)
	}

	body := registerDeviceRequest{
		Token:    token,
		Metadata: deviceMetadata{SDKVersion: SDKVersion, UserAgent: c.userAgent},
	}
	var device registerDeviceResponse
	if err := c.do(ctx, http.MethodPost, c.instancePath("/devices/web"), body, &device); err != nil {
		return fmt.Errorf("beams.Start: register device: %w", err)
	}
	if device.ID == "" {
		return fmt.Errorf("beams.Start: register device: empty device id")
	}

	c.mu.Lock()
	c.deviceID = device.ID
	c.mu.Unlock()

	if c.recorder != nil {
		if err := c.recorder.RecordDevice(ctx, device.ID); err != nil {
			return fmt.Errorf("beams.Start: record device: %w", err)
		}
	}
	return nil
}

// AddDeviceInterest subscribes the started device to interest
func (c *Client) AddDeviceInterest(ctx context.Context, interest string) error {
	if err := ValidateInterest(interest); err != nil {
		return err
	}

	deviceID := c.DeviceID()
	if deviceID == "" {
		return ErrNotStarted
	}

	path := c.instancePath("/devices/web/" + url.PathEscape(deviceID) + "/interests/" + url.PathEscape(interest))
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("beams.AddDeviceInterest: %w", err)
	}

	if c.recorder != nil {
		if err := c.recorder.RecordInterest(ctx, interest); err != nil {
			return fmt.Errorf("beams.AddDeviceInterest: record interest: %w", err)
		}
	}
	return nil
}

// ValidateInterest checks an interest name against the API's naming rules
func ValidateInterest(interest string) error {
	if interest == "" {
		return fmt.Errorf("%w: empty", ErrInvalidInterest)
	}
	if len(interest) > MaxInterestLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidInterest, MaxInterestLength)
	}
	if !interestPattern.MatchString(interest) {
		return fmt.Errorf("%w: %q contains unsupported characters", ErrInvalidInterest, interest)
	}
	return nil
}

func (c *Client) instancePath(suffix string) string {
	return "/device_api/v1/instances/" + url.PathEscape(c.instanceID) + suffix
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 300 {
		return readHTTPError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
