// Package geoip resolves visitor addresses against a local MMDB database
// (MaxMind GeoLite2, DB-IP Lite, IP2Location LITE) as an offline alternative
// to the ipinfo.io API.
package geoip

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/oschwald/geoip2-golang"

	"weather-map/internal/types"
)

var (
	ErrNoAddress     = errors.New("no routable address to look up")
	ErrNotInDatabase = errors.New("address has no location in database")
)

// Reader looks up coordinates in an MMDB file
type Reader struct {
	db     *geoip2.Reader
	dbPath string
}

// NewReader opens mmdbPath. It returns nil, nil when the path is empty or the
// file does not exist so callers can treat a missing database as "disabled".
func NewReader(mmdbPath string) (*Reader, error) {
	if mmdbPath == "" {
		return nil, nil
	}

	db, err := geoip2.Open(mmdbPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open geoip database %q: %w", mmdbPath, err)
	}

	return &Reader{db: db, dbPath: mmdbPath}, nil
}

// Locate returns the coordinates recorded for ip. Private and loopback
// addresses are never in public databases and fail with ErrNoAddress.
func (r *Reader) Locate(_ context.Context, ip string) (types.Coords, error) {
	parsed := parseIP(ip)
	if parsed == nil || isPrivateIP(parsed) {
		return types.Coords{}, fmt.Errorf("%w: %q", ErrNoAddress, ip)
	}

	if r == nil || r.db == nil {
		return types.Coords{}, errors.New("geoip database not loaded")
	}

	record, err := r.db.City(parsed)
	if err != nil {
		return types.Coords{}, fmt.Errorf("failed to look up %s: %w", parsed, err)
	}

	if record.Location.Latitude == 0 && record.Location.Longitude == 0 {
		return types.Coords{}, fmt.Errorf("%w: %s", ErrNotInDatabase, parsed)
	}

	return types.NewCoords(record.Location.Latitude, record.Location.Longitude), nil
}

// Path returns the loaded database file
func (r *Reader) Path() string {
	if r == nil {
		return ""
	}
	return r.dbPath
}

// Close closes the underlying database
func (r *Reader) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// parseIP accepts both "ip" and "ip:port"
func parseIP(s string) net.IP {
	host, _, err := net.SplitHostPort(s)
	if err != nil {
		host = s
	}
	return net.ParseIP(host)
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsPrivate() || ip.IsUnspecified()
}
