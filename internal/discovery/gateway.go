package discovery

import (
	"fmt"
	"net"
	"time"

	"github.com/jackpal/gateway"
	"go.uber.org/zap"

	"github.com/prajwalch/ro/internal/logging"
	"github.com/prajwalch/ro/internal/router"
)

// Source says where a router address came from
type Source int

const (
	// SourceConfigured is an address given by flag, environment or config file
	SourceConfigured Source = iota
	// SourceGateway is the host's default gateway
	SourceGateway
	// SourceDefault is the factory address, used when nothing else worked
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceConfigured:
		return "configured"
	case SourceGateway:
		return "default gateway"
	case SourceDefault:
		return "factory default"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Router represents a resolved router management address
type Router struct {
	// Address is host or host:port (e.g., "192.168.16.1")
	Address string

	// Source is how the address was found
	Source Source

	// ResolvedAt is when the address was resolved
	ResolvedAt time.Time
}

// String returns a human-readable string representation of the router
func (r *Router) String() string {
	return fmt.Sprintf("%s (%s)", r.Address, r.Source)
}

// Resolver finds the router when no address is configured.
type Resolver struct {
	// DiscoverGateway returns the host's default gateway
	DiscoverGateway func() (net.IP, error)

	now func() time.Time
}

// NewResolver returns a Resolver that asks the operating system for the default gateway
func NewResolver() *Resolver {
	return &Resolver{DiscoverGateway: gateway.DiscoverGateway, now: time.Now}
}

// Resolve returns configured when it is set. Otherwise it uses the default
// gateway, which is the router for a host attached to it, and falls back to
// the factory address when the gateway cannot be found.
func (r *Resolver) Resolve(configured string) *Router {
	now := r.now
	if now == nil {
		now = time.Now
	}

	if configured != "" {
		return &Router{Address: configured, Source: SourceConfigured, ResolvedAt: now()}
	}

	if r.DiscoverGateway != nil {
		ip, err := r.DiscoverGateway()
		switch {
		case err != nil:
			logging.Warn("Default gateway discovery failed", zap.Error(err))
		case ip == nil || ip.IsUnspecified() || ip.IsLoopback():
			logging.Warn("Ignoring unusable default gateway", zap.Stringer("ip", ip))
		default:
			logging.Debug("Using default gateway as router", zap.Stringer("ip", ip))
			return &Router{Address: hostAddress(ip), Source: SourceGateway, ResolvedAt: now()}
		}
	}

	return &Router{Address: router.DefaultAddress, Source: SourceDefault, ResolvedAt: now()}
}

// hostAddress formats ip for use in a URL host
func hostAddress(ip net.IP) string {
	if ip.To4() != nil {
		return ip.String()
	}
	return "[" + ip.String() + "]"
}
