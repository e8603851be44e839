package device

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"github.com/ariel-frischer/beamscheck/internal/subscribe"
	"github.com/google/uuid"
)

// PushPath is the site path under which this device's push endpoints live
const PushPath = "/push/"

var (
	// ErrNoWorker is returned when subscribing before a worker is registered
	ErrNoWorker = errors.New("no service worker registered")
	// ErrKeyMismatch is returned when an existing subscription was created
	// for a different application server key
	ErrKeyMismatch = errors.New("existing subscription uses a different application server key")
)

// scriptTypes are the MIME types accepted for worker scripts
var scriptTypes = map[string]bool{
	"text/javascript":          true,
	"application/javascript":   true,
	"application/x-javascript": true,
}

// Container is the worker container and push manager of the CLI device
type Container struct {
	siteURL    string
	store      *Store
	httpClient *http.Client
	now        func() time.Time
}

// Option configures a Container
type Option func(*Container)

// WithHTTPClient sets the client used to fetch worker scripts
func WithHTTPClient(c *http.Client) Option {
	return func(ct *Container) { ct.httpClient = c }
}

// WithClock sets the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(ct *Container) { ct.now = now }
}

// NewContainer creates a container for the site at siteURL backed by store
func NewContainer(siteURL string, store *Store, opts ...Option) *Container {
	c := &Container{
		siteURL:    siteURL,
		store:      store,
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ready returns the device registration. A device that never registered a
// worker still has a registration; it simply holds no subscription.
func (c *Container) Ready(ctx context.Context) (subscribe.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := c.store.Load(); err != nil {
		return nil, err
	}
	return &registration{store: c.store}, nil
}

// Register fetches the worker script at scriptPath relative to the site and
// records it as the active worker. The script must be served with 200 and a
// JavaScript MIME type.
func (c *Container) Register(ctx context.Context, scriptPath string) error {
	scriptURL, err := c.resolve(scriptPath)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scriptURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Service-Worker", "script")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", scriptURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: HTTP %d", scriptURL, resp.StatusCode)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !scriptTypes[mediaType] {
		return fmt.Errorf("fetch %s: unsupported MIME type %q", scriptURL, resp.Header.Get("Content-Type"))
	}
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20)); err != nil {
		return fmt.Errorf("read %s: %w", scriptURL, err)
	}

	return c.store.Update(func(rec *Record) error {
		rec.Worker = &Worker{ScriptURL: scriptURL, RegisteredAt: c.now().UTC()}
		return nil
	})
}

// Subscribe returns the push subscription token for applicationServerKey,
// creating a subscription when none exists.
func (c *Container) Subscribe(ctx context.Context, applicationServerKey string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var token []byte
	err := c.store.Update(func(rec *Record) error {
		if rec.Worker == nil {
			return ErrNoWorker
		}

		if rec.Subscription != nil && rec.ApplicationServerKey != applicationServerKey {
			return ErrKeyMismatch
		}

		if rec.Subscription == nil {
			sub, err := c.newSubscription()
			if err != nil {
				return err
			}
			rec.Subscription = sub
			rec.ApplicationServerKey = applicationServerKey
			rec.SubscribedAt = c.now().UTC()
		}

		var err error
		token, err = json.Marshal(rec.Subscription)
		return err
	})
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// RecordDevice stores the identifier the push vendor assigned to this device
func (c *Container) RecordDevice(_ context.Context, deviceID string) error {
	return c.store.Update(func(rec *Record) error {
		rec.DeviceID = deviceID
		return nil
	})
}

// RecordInterest stores a registered interest
func (c *Container) RecordInterest(_ context.Context, interest string) error {
	return c.store.Update(func(rec *Record) error {
		if !rec.HasInterest(interest) {
			rec.Interests = append(rec.Interests, interest)
		}
		return nil
	})
}

func (c *Container) resolve(path string) (string, error) {
	base, err := url.Parse(c.siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site url %q: %w", c.siteURL, err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func (c *Container) newSubscription() (*PushSubscription, error) {
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate subscription key: %w", err)
	}

	auth := make([]byte, 16)
	if _, err := rand.Read(auth); err != nil {
		return nil, fmt.Errorf("generate auth secret: %w", err)
	}

	endpoint, err := c.resolve(PushPath + uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &PushSubscription{
		Endpoint: endpoint,
		Keys: Keys{
			P256dh: base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
			Auth:   base64.RawURLEncoding.EncodeToString(auth),
		},
	}, nil
}

type registration struct {
	store *Store
}

func (r *registration) Subscription(ctx context.Context) (subscribe.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	if rec.Subscription == nil {
		return nil, nil
	}
	return &subscription{store: r.store, endpoint: rec.Subscription.Endpoint}, nil
}

type subscription struct {
	store    *Store
	endpoint string
}

// Unsubscribe drops the subscription and everything registered through it.
// Unsubscribing a subscription that is already gone is a no-op.
func (s *subscription) Unsubscribe(_ context.Context) error {
	return s.store.Update(func(rec *Record) error {
		if rec.Subscription == nil || rec.Subscription.Endpoint != s.endpoint {
			return nil
		}
		rec.Subscription = nil
		rec.SubscribedAt = time.Time{}
		rec.ApplicationServerKey = ""
		rec.DeviceID = ""
		rec.Interests = nil
		return nil
	})
}

// DefaultUserAgent builds a browser-style user agent for the host platform
func DefaultUserAgent(version string) string {
	var platform string
	switch runtime.GOOS {
	case "darwin":
		platform = "Macintosh; Intel Mac OS X 10_15_7"
	case "windows":
		platform = "Windows NT 10.0; Win64; x64"
	case "linux":
		platform = "X11; Linux x86_64"
	default:
		platform = runtime.GOOS
	}
	return fmt.Sprintf("Mozilla/5.0 (%s) beamscheck/%s", platform, version)
}
