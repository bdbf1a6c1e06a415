// Package discovery locates the router's management interface.
//
// A consumer router is normally the default gateway of the machine talking to
// it, so when no address is configured the gateway reported by the operating
// system is used. If that lookup fails the router's factory address
// (192.168.16.1) is assumed.
//
//	r := discovery.NewResolver().Resolve(cfg.Router.Address)
//	client := router.NewClient(r.Address)
package discovery
