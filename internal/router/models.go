package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// UndefinedCipher is sent when a scanned network's security descriptor carries no cipher part.
const UndefinedCipher = "undefined"

// DefaultSecondaryKey is used for the router's own network when it reports no pre-shared key.
const DefaultSecondaryKey = "12345678"

// RouterInfo is the current uplink/downlink throughput returned by GET /goform/get_router_info.
// Both values are in bytes per second.
type RouterInfo struct {
	UpSpeed   float64 `json:"upspeed"`
	DownSpeed float64 `json:"downspeed"`
}

// UnmarshalJSON accepts speeds encoded either as JSON numbers or as numeric strings,
// which is what most firmware revisions send.
func (ri *RouterInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		UpSpeed   json.RawMessage `json:"upspeed"`
		DownSpeed json.RawMessage `json:"downspeed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	up, err := parseSpeed(raw.UpSpeed)
	if err != nil {
		return fmt.Errorf("upspeed: %w", err)
	}
	down, err := parseSpeed(raw.DownSpeed)
	if err != nil {
		return fmt.Errorf("downspeed: %w", err)
	}

	ri.UpSpeed = up
	ri.DownSpeed = down
	return nil
}

func parseSpeed(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("missing value")
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(text)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", text)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative speed %v", v)
	}
	return v, nil
}

// ScanEntry is one wireless network seen by the router's repeater scan.
type ScanEntry struct {
	SSID       string `json:"ssid"`
	BSSID      string `json:"bssid"`
	Channel    string `json:"channel"`
	ExtChannel string `json:"extch"`
	Security   string `json:"security"` // e.g. "WPA2/AES", "OPEN"
	Signal     string `json:"signal"`
}

// SplitSecurity splits a security descriptor on its first '/'.
// "WPA2/AES" → ("WPA2", "AES"); "OPEN" → ("OPEN", UndefinedCipher).
func SplitSecurity(descriptor string) (mode, cipher string) {
	mode, cipher, found := strings.Cut(descriptor, "/")
	if !found {
		return descriptor, UndefinedCipher
	}
	return mode, cipher
}

// SecurityMode returns the part of the security descriptor before the first '/'
func (e ScanEntry) SecurityMode() string {
	mode, _ := SplitSecurity(e.Security)
	return mode
}

// Cipher returns the part of the security descriptor after the first '/'
func (e ScanEntry) Cipher() string {
	_, cipher := SplitSecurity(e.Security)
	return cipher
}

// SecondaryNetwork is the router's own uplink Wi-Fi identity, returned by GET /goform/get_wifi_cfg.
// PSK is nil when the router reports no key.
type SecondaryNetwork struct {
	SSID       string  `json:"ssid"`
	PSKMode    string  `json:"pskMode"`
	CipherMode string  `json:"cipherMode"`
	PSK        *string `json:"psk"`
}

// Key returns the reported pre-shared key, or fallback when the router reported none.
func (sn SecondaryNetwork) Key(fallback string) string {
	if sn.PSK == nil || *sn.PSK == "" {
		return fallback
	}
	return *sn.PSK
}

// AssociationRequest instructs the router to join a scanned network as a repeater
// while keeping its own network as the secondary one.
type AssociationRequest struct {
	Channel      string
	BSSID        string
	SSID         string
	SecurityMode string
	Cipher       string
	Key          string
	ExtChannel   string

	SecondarySSID         string
	SecondarySecurityMode string
	SecondaryCipher       string
	SecondaryKey          string
}

// NewAssociationRequest builds the request for entry using the operator's key and the
// router's own network. secondaryFallback replaces a missing secondary key.
func NewAssociationRequest(entry ScanEntry, key string, own SecondaryNetwork, secondaryFallback string) *AssociationRequest {
	return &AssociationRequest{
		Channel:      entry.Channel,
		BSSID:        entry.BSSID,
		SSID:         entry.SSID,
		SecurityMode: entry.SecurityMode(),
		Cipher:       entry.Cipher(),
		Key:          key,
		ExtChannel:   entry.ExtChannel,

		SecondarySSID:         own.SSID,
		SecondarySecurityMode: own.PSKMode,
		SecondaryCipher:       own.CipherMode,
		SecondaryKey:          own.Key(secondaryFallback),
	}
}

// ToFormData converts the request to URL-encoded form data for POST /goform/set_RepeaterConnect_cfg.
func (ar *AssociationRequest) ToFormData() url.Values {
	data := url.Values{}
	data.Set("channel", ar.Channel)
	data.Set("bssid", ar.BSSID)
	data.Set("ssid", ar.SSID)
	data.Set("security_mode", ar.SecurityMode)
	data.Set("wifi_arithmetic", ar.Cipher)
	data.Set("wifi_key", ar.Key)
	data.Set("extch", ar.ExtChannel)

	data.Set("second_ssid", ar.SecondarySSID)
	data.Set("second_security_mode", ar.SecondarySecurityMode)
	data.Set("second_wifi_arithmetic", ar.SecondaryCipher)
	data.Set("second_wifi_key", ar.SecondaryKey)
	return data
}

// CleanJSONResponse extracts the first complete JSON object from a response body.
//
// Embedded web servers on these routers sometimes append stray bytes after the object:
//
//	{"upspeed":"512","downspeed":"2048"}<!-- 0 -->
//
// This function finds the end of the valid JSON object and truncates the rest.
func CleanJSONResponse(data []byte) ([]byte, error) {
	start := bytes.IndexByte(data, '{')
	if start == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(data); i++ {
		b := data[i]

		if escaped {
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}

		// Braces inside strings don't count
		if b == '"' {
			inString = !inString
			continue
		}

		if !inString {
			if b == '{' {
				depth++
			} else if b == '}' {
				depth--
				if depth == 0 {
					return data[start : i+1], nil
				}
			}
		}
	}

	return nil, fmt.Errorf("unclosed JSON object in response")
}
