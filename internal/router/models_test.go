package router

import (
	"encoding/json"
	"testing"
)

// Test data - router info as returned by the firmware, speeds as strings
const validRouterInfo = `{"upspeed":"500","downspeed":"150000"}`

const trailingRouterInfo = `{"upspeed":"500","downspeed":"150000"}<!-- goform -->`

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    string
		wantErr bool
	}{
		{
			name:  "valid JSON only",
			input: []byte(validRouterInfo),
			want:  validRouterInfo,
		},
		{
			name:  "trailing data",
			input: []byte(trailingRouterInfo),
			want:  validRouterInfo,
		},
		{
			name:  "leading whitespace",
			input: []byte("  \n  " + validRouterInfo),
			want:  validRouterInfo,
		},
		{
			name:    "empty input",
			input:   []byte(""),
			wantErr: true,
		},
		{
			name:    "no JSON object",
			input:   []byte("<html>login</html>"),
			wantErr: true,
		},
		{
			name:    "unclosed JSON",
			input:   []byte(`{"key":"value"`),
			wantErr: true,
		},
		{
			name:  "escaped quotes",
			input: []byte(`{"ssid":"my \"home\""}`),
			want:  `{"ssid":"my \"home\""}`,
		},
		{
			name:  "braces inside strings",
			input: []byte(`{"ssid":"{weird}"} tail`),
			want:  `{"ssid":"{weird}"}`,
		},
		{
			name:  "nested objects",
			input: []byte(`{"list":[{"ssid":"a"},{"ssid":"b"}]}x`),
			want:  `{"list":[{"ssid":"a"},{"ssid":"b"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanJSONResponse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CleanJSONResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("CleanJSONResponse() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRouterInfoUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUp   float64
		wantDown float64
		wantErr  bool
	}{
		{name: "string speeds", input: `{"upspeed":"500","downspeed":"150000"}`, wantUp: 500, wantDown: 150000},
		{name: "numeric speeds", input: `{"upspeed":12.5,"downspeed":0}`, wantUp: 12.5, wantDown: 0},
		{name: "padded strings", input: `{"upspeed":" 7 ","downspeed":"8"}`, wantUp: 7, wantDown: 8},
		{name: "missing field", input: `{"upspeed":"1"}`, wantErr: true},
		{name: "not a number", input: `{"upspeed":"fast","downspeed":"1"}`, wantErr: true},
		{name: "negative", input: `{"upspeed":"-1","downspeed":"1"}`, wantErr: true},
		{name: "null", input: `{"upspeed":null,"downspeed":"1"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var info RouterInfo
			err := json.Unmarshal([]byte(tt.input), &info)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if info.UpSpeed != tt.wantUp || info.DownSpeed != tt.wantDown {
				t.Errorf("RouterInfo = %+v, want up=%v down=%v", info, tt.wantUp, tt.wantDown)
			}
		})
	}
}

func TestSplitSecurity(t *testing.T) {
	tests := []struct {
		descriptor string
		wantMode   string
		wantCipher string
	}{
		{"WPA2/AES", "WPA2", "AES"},
		{"OPEN", "OPEN", UndefinedCipher},
		{"WPA/WPA2/TKIPAES", "WPA", "WPA2/TKIPAES"},
		{"WPA2/", "WPA2", ""},
		{"", "", UndefinedCipher},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			mode, cipher := SplitSecurity(tt.descriptor)
			if mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", mode, tt.wantMode)
			}
			if cipher != tt.wantCipher {
				t.Errorf("cipher = %q, want %q", cipher, tt.wantCipher)
			}

			entry := ScanEntry{Security: tt.descriptor}
			if entry.SecurityMode() != tt.wantMode || entry.Cipher() != tt.wantCipher {
				t.Errorf("ScanEntry split = (%q, %q), want (%q, %q)", entry.SecurityMode(), entry.Cipher(), tt.wantMode, tt.wantCipher)
			}
		})
	}
}

func TestSecondaryNetworkKey(t *testing.T) {
	key := "hunter22"
	empty := ""

	tests := []struct {
		name string
		psk  *string
		want string
	}{
		{"reported key", &key, "hunter22"},
		{"no key", nil, DefaultSecondaryKey},
		{"empty key", &empty, DefaultSecondaryKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn := SecondaryNetwork{SSID: "Tenda_01", PSK: tt.psk}
			if got := sn.Key(DefaultSecondaryKey); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecondaryNetworkUnmarshal(t *testing.T) {
	var sn SecondaryNetwork
	if err := json.Unmarshal([]byte(`{"ssid":"Tenda_01","pskMode":"WPA2","cipherMode":"AES","psk":null}`), &sn); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if sn.PSK != nil {
		t.Errorf("PSK = %v, want nil", *sn.PSK)
	}
	if sn.PSKMode != "WPA2" || sn.CipherMode != "AES" {
		t.Errorf("SecondaryNetwork = %+v", sn)
	}
}

func TestNewAssociationRequest(t *testing.T) {
	entry := ScanEntry{
		SSID:       "HomeNet",
		BSSID:      "aa:bb:cc:dd:ee:ff",
		Channel:    "6",
		ExtChannel: "lower",
		Security:   "WPA2/AES",
		Signal:     "-48",
	}
	own := SecondaryNetwork{SSID: "Tenda_01", PSKMode: "WPA2", CipherMode: "AES"}

	req := NewAssociationRequest(entry, "supersecret", own, "fallback1")

	if req.SecurityMode != "WPA2" {
		t.Errorf("SecurityMode = %q, want WPA2", req.SecurityMode)
	}
	if req.Cipher != "AES" {
		t.Errorf("Cipher = %q, want AES", req.Cipher)
	}
	if req.SecondaryKey != "fallback1" {
		t.Errorf("SecondaryKey = %q, want fallback1", req.SecondaryKey)
	}

	form := req.ToFormData()
	expected := map[string]string{
		"channel":                "6",
		"bssid":                  "aa:bb:cc:dd:ee:ff",
		"ssid":                   "HomeNet",
		"security_mode":          "WPA2",
		"wifi_arithmetic":        "AES",
		"wifi_key":               "supersecret",
		"extch":                  "lower",
		"second_ssid":            "Tenda_01",
		"second_security_mode":   "WPA2",
		"second_wifi_arithmetic": "AES",
		"second_wifi_key":        "fallback1",
	}
	for k, want := range expected {
		if got := form.Get(k); got != want {
			t.Errorf("form[%s] = %q, want %q", k, got, want)
		}
	}
}
