package geo

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
)

var (
	// ErrNotInDatabase marks an IP with no network in the database, such as a
	// private or loopback address.
	ErrNotInDatabase = errors.New("address not in geoip database")
	// ErrNoLocation marks a record that has no coordinates, e.g. country only.
	ErrNoLocation = errors.New("geoip record has no location")
)

// Place is a resolved geographic location with a display label.
type Place struct {
	Label     string
	Latitude  float64
	Longitude float64
}

// Locator resolves IP addresses against a MaxMind City database.
type Locator struct {
	reader *maxminddb.Reader
}

// OpenLocator opens the City .mmdb file at path.
func OpenLocator(path string) (*Locator, error) {
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	if dbType := reader.Metadata.DatabaseType; !strings.Contains(dbType, "City") && !strings.Contains(dbType, "Enterprise") {
		reader.Close()
		return nil, fmt.Errorf("open geoip database: %s is a %s database, need City", path, dbType)
	}
	return &Locator{reader: reader}, nil
}

func (l *Locator) Close() error {
	if l == nil || l.reader == nil {
		return nil
	}
	return l.reader.Close()
}

// Locate resolves ipStr to a Place labelled "City, Country" where known.
// Addresses outside every network in the database return ErrNotInDatabase.
func (l *Locator) Locate(ipStr string) (Place, error) {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return Place{}, fmt.Errorf("invalid IP address %q", ipStr)
	}

	var record geoip2.City
	_, ok, err := l.reader.LookupNetwork(ip, &record)
	if err != nil {
		return Place{}, fmt.Errorf("lookup %s: %w", ipStr, err)
	}
	if !ok {
		return Place{}, fmt.Errorf("lookup %s: %w", ipStr, ErrNotInDatabase)
	}
	loc := record.Location
	if loc.AccuracyRadius == 0 && loc.Latitude == 0 && loc.Longitude == 0 {
		return Place{}, fmt.Errorf("lookup %s: %w", ipStr, ErrNoLocation)
	}

	place := Place{
		Label:     placeLabel(record.City.Names["en"], record.Country.Names["en"]),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
	if err := Validate(place.Latitude, place.Longitude); err != nil {
		return Place{}, err
	}
	return place, nil
}

func placeLabel(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	case country != "":
		return country
	}
	return "Home"
}
