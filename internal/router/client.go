package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prajwalch/ro/internal/logging"
	"github.com/prajwalch/ro/internal/version"
)

const (
	// DefaultAddress is the router's factory LAN address
	DefaultAddress = "192.168.16.1"

	// DefaultUsername is the factory admin username
	DefaultUsername = "admin"

	// DefaultPassword is the factory admin password
	DefaultPassword = "admin"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// notConnectedSSID is what the router reports as SSID while it has no uplink
	notConnectedSSID = "NULL"
)

// Operation names used in DeviceError.Op
const (
	OpLogin         = "login"
	OpFetchStatus   = "fetch status"
	OpScanNetworks  = "scan networks"
	OpSecondaryInfo = "fetch secondary network"
	OpConnectedSSID = "fetch connected ssid"
	OpAssociate     = "associate"
	OpReboot        = "reboot"
	OpReset         = "reset to defaults"
)

// Gateway is the router management surface used by the live display and the association retrier.
type Gateway interface {
	FetchStatus() (*RouterInfo, error)
	ScanNetworks() ([]ScanEntry, error)
	SecondaryNetwork() (*SecondaryNetwork, error)
	ConnectedSSID() (ssid string, connected bool, err error)
	Associate(req *AssociationRequest) error
	Reboot() error
	ResetToDefaults() error
}

var _ Gateway = (*Client)(nil)

// Client talks to the router's embedded HTTP management API.
// It performs exactly one HTTP request per call and never retries.
type Client struct {
	// BaseURL is the base URL for the router (e.g., "http://192.168.16.1")
	BaseURL string

	// UserAgent is sent with every request
	UserAgent string

	// HTTPClient is the underlying HTTP client; its cookie jar carries the login session
	HTTPClient *http.Client
}

// NewClient creates a new client for the router at addr (host or host:port).
func NewClient(addr string) *Client {
	return NewClientWithURL("http://" + addr)
}

// NewClientWithURL creates a new client with a full base URL
// baseURL: Full base URL (e.g., "http://192.168.16.1:80")
func NewClientWithURL(baseURL string) *Client {
	// cookiejar.New only fails on a non-nil PublicSuffixList error path
	jar, _ := cookiejar.New(nil)

	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: version.UserAgent(),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Login authenticates against the router's web interface.
// The session cookie returned by the router is kept for subsequent calls.
func (c *Client) Login(username, password string) error {
	form := url.Values{}
	form.Set("user", username)
	form.Set("pass", password)

	resp, err := c.post(OpLogin, "/login/auth", form)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return NewAuthError(OpLogin, "router rejected credentials")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return NewStatusError(OpLogin, resp.StatusCode)
	}

	logging.Debug("Logged in", zap.String("user", username), zap.String("router", c.BaseURL))
	return nil
}

// FetchStatus returns the router's current throughput
func (c *Client) FetchStatus() (*RouterInfo, error) {
	var info RouterInfo
	if err := c.getJSON(OpFetchStatus, "/goform/get_router_info", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ScanNetworks triggers a repeater scan and returns the networks the router can see
func (c *Client) ScanNetworks() ([]ScanEntry, error) {
	var result struct {
		List []ScanEntry `json:"list"`
	}
	if err := c.getJSON(OpScanNetworks, "/goform/get_RepeaterScan_cfg", &result); err != nil {
		return nil, err
	}

	logging.Debug("Scan completed", zap.Int("networks", len(result.List)))
	return result.List, nil
}

// SecondaryNetwork returns the router's own uplink Wi-Fi identity
func (c *Client) SecondaryNetwork() (*SecondaryNetwork, error) {
	var sn SecondaryNetwork
	if err := c.getJSON(OpSecondaryInfo, "/goform/get_wifi_cfg", &sn); err != nil {
		return nil, err
	}
	return &sn, nil
}

// ConnectedSSID returns the SSID of the network the router is repeating.
// connected is false when the router reports no uplink.
func (c *Client) ConnectedSSID() (string, bool, error) {
	var status struct {
		SSID string `json:"ssid"`
	}
	if err := c.getJSON(OpConnectedSSID, "/goform/get_connetsta_cfg", &status); err != nil {
		return "", false, err
	}

	if status.SSID == "" || status.SSID == notConnectedSSID {
		return "", false, nil
	}
	return status.SSID, true, nil
}

// Associate submits an association request. The router drops the web session
// afterwards, so callers should log in again before further calls.
func (c *Client) Associate(req *AssociationRequest) error {
	logging.Info("Associating",
		zap.String("ssid", req.SSID),
		zap.String("bssid", req.BSSID),
		zap.String("channel", req.Channel),
		zap.String("security_mode", req.SecurityMode),
		zap.String("cipher", req.Cipher),
	)
	return c.postExpectOK(OpAssociate, "/goform/set_RepeaterConnect_cfg", req.ToFormData())
}

// Reboot restarts the router
func (c *Client) Reboot() error {
	form := url.Values{}
	form.Set("mode", "reboot")
	return c.postExpectOK(OpReboot, "/goform/set_reboot", form)
}

// ResetToDefaults restores the router's factory configuration
func (c *Client) ResetToDefaults() error {
	form := url.Values{}
	form.Set("type", "restore")
	return c.postExpectOK(OpReset, "/goform/set_restore", form)
}

// getJSON performs a GET request and decodes the first JSON object of the response into out
func (c *Client) getJSON(op, path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return NewTransportError(op, err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.Debug("Request failed", zap.String("op", op), zap.Error(err))
		return NewTransportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return NewAuthError(op, "session expired or not logged in")
	}
	if resp.StatusCode != http.StatusOK {
		return NewStatusError(op, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewTransportError(op, err)
	}
	logging.LogRawBytes(op+" response", body)

	cleaned, err := CleanJSONResponse(body)
	if err != nil {
		return NewProtocolError(op, "failed to locate JSON in response", err)
	}

	if err := json.Unmarshal(cleaned, out); err != nil {
		return NewProtocolError(op, "failed to parse JSON response", err)
	}
	return nil
}

func (c *Client) post(op, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, NewTransportError(op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.Debug("Request failed", zap.String("op", op), zap.Error(err))
		return nil, NewTransportError(op, err)
	}
	return resp, nil
}

// postExpectOK posts form and accepts 200 OK or 204 No Content
func (c *Client) postExpectOK(op, path string, form url.Values) error {
	resp, err := c.post(op, path, form)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return NewAuthError(op, "session expired or not logged in")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		statusErr := NewStatusError(op, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		if msg := strings.TrimSpace(string(body)); msg != "" {
			statusErr.Message = fmt.Sprintf("%s: %s", statusErr.Message, msg)
		}
		return statusErr
	}

	logging.Debug("Command accepted", zap.String("op", op))
	return nil
}
