// Package router provides an HTTP client for a consumer Wi-Fi router's embedded
// management API.
//
// The client covers everything the ro CLI needs from the device: throughput
// status, repeater scans, the router's own Wi-Fi identity, the currently
// repeated SSID, association as a repeater, reboot and factory reset. Each
// method performs exactly one HTTP request; retrying is left to callers.
//
// # Usage Example
//
//	client := router.NewClient("192.168.16.1")
//	if err := client.Login("admin", "admin"); err != nil {
//	    log.Fatal(err)
//	}
//
//	info, err := client.FetchStatus()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info) // ↑ 500 B/s  ↓ 146.5 KB/s
//
// # Response Quirks
//
// Speeds arrive as numeric strings and some firmware appends stray bytes after
// the JSON object. CleanJSONResponse trims the body to the first complete object
// before decoding.
//
// # Error Handling
//
// Every failure is a *DeviceError carrying the operation name (Op) and one of
// the ErrorType categories: transport, protocol, auth, not found, validation.
// Use IsTransportError, IsProtocolError and friends to branch on them; they
// see through %w wrapping.
package router
