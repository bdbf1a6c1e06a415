// Package associate joins the router to another Wi-Fi network as a repeater.
//
// The Retrier has two states. While Searching it scans for the target SSID;
// the first exact match moves it to Found, where it reads the router's own
// network identity, builds one association request and submits it. The search
// is bounded by a Policy (attempt count, delay between scans, overall
// timeout) and ends with a NotFound error when the target never shows up. Any
// scan failure ends it at once.
//
// The router drops the web session after an association request, so callers
// log in again before issuing further commands.
package associate
