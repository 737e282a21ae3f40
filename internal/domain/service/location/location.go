package location

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/internal/domain/entity"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
)

const geocodeCacheTTL = time.Hour

// Filter selects a transaction-mode partition of a deal list.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterPickup   Filter = "pickup"
	FilterShipping Filter = "shipping"
)

func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterPickup, FilterShipping:
		return Filter(s), nil
	case "":
		return FilterAll, nil
	default:
		return "", domain.NewError(errcodes.InvalidLocationFilter, "filter must be all, pickup or shipping")
	}
}

// Counts carries all three partition sizes so tab badges stay correct
// regardless of which filter is active.
type Counts struct {
	All      int
	Pickup   int
	Shipping int
}

// Geocoder resolves a normalized city name to coordinates.
type Geocoder func(city string) (Coordinate, bool)

// Classifier decides local-pickup vs ship-required. Three signals, strongest
// first: the explicit pickup flag, the backend-computed distance, and a
// geocoded distance derived from the free-text location. A location that
// resolves to nothing is treated as far, never as unknown.
type Classifier struct {
	home        Coordinate
	radiusMiles float64
	geocode     Geocoder
	resolved    *cache.Cache
}

func NewClassifier(home Coordinate, radiusMiles float64) *Classifier {
	return &Classifier{
		home:        home,
		radiusMiles: radiusMiles,
		geocode:     TableGeocoder,
		resolved:    cache.New(geocodeCacheTTL, geocodeCacheTTL),
	}
}

// WithGeocoder replaces the fixed city table with another lookup.
func (c *Classifier) WithGeocoder(g Geocoder) *Classifier {
	c.geocode = g
	return c
}

func (c *Classifier) RadiusMiles() float64 {
	return c.radiusMiles
}

// IsLocal classifies a deal as local pickup.
func (c *Classifier) IsLocal(d entity.Deal) bool {
	if d.LocalPickupAvailable != nil && *d.LocalPickupAvailable {
		return true
	}

	if d.DistanceMiles != nil {
		return float64(*d.DistanceMiles) <= c.radiusMiles
	}

	distance, ok := c.DistanceFromHome(d.Location)
	if !ok {
		return false
	}

	return distance <= c.radiusMiles
}

// DistanceFromHome geocodes a free-text location and returns the haversine
// distance from the home coordinate. ok is false when the city is not in the
// lookup.
func (c *Classifier) DistanceFromHome(loc string) (float64, bool) {
	city := normalizeCity(loc)
	if city == "" {
		return 0, false
	}

	if cached, found := c.resolved.Get(city); found {
		d, ok := cached.(float64)
		return d, ok
	}

	coord, ok := c.geocode(city)
	if !ok {
		c.resolved.Set(city, nil, cache.DefaultExpiration)
		return 0, false
	}

	distance := Haversine(c.home, coord)
	c.resolved.Set(city, distance, cache.DefaultExpiration)

	return distance, true
}

// normalizeCity extracts a lookup key from strings like "Nashville, TN",
// "Cookeville" or "Austin TX".
func normalizeCity(loc string) string {
	city := strings.ToLower(strings.TrimSpace(loc))
	if city == "" {
		return ""
	}

	city = strings.TrimSpace(strings.SplitN(city, ",", 2)[0])

	for _, state := range []string{" tn", " ky", " al", " ga", " tx"} {
		if i := strings.Index(city, state); i >= 0 {
			city = strings.TrimSpace(city[:i])
		}
	}

	return city
}

// FilterDeals returns the partition selected by the filter. FilterAll is the
// identity.
func (c *Classifier) FilterDeals(deals []entity.Deal, filter Filter) []entity.Deal {
	if filter == FilterAll {
		return deals
	}

	wantLocal := filter == FilterPickup

	return lo.Filter(deals, func(d entity.Deal, _ int) bool {
		return c.IsLocal(d) == wantLocal
	})
}

// CountDeals computes every partition size in one pass.
func (c *Classifier) CountDeals(deals []entity.Deal) Counts {
	counts := Counts{All: len(deals)}

	for _, d := range deals {
		if c.IsLocal(d) {
			counts.Pickup++
		} else {
			counts.Shipping++
		}
	}

	return counts
}
