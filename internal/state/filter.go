package state

import (
	"sort"
	"strings"

	"droneRentalMarketplace/internal/geo"
	"droneRentalMarketplace/internal/services"
	"droneRentalMarketplace/models"
)

// Coordinates is the user's resolved location.
type Coordinates struct {
	Lat float64
	Lon float64
}

// SortOption orders the farmer-visible catalog. Exactly one sort key is
// applied, after all filters.
type SortOption string

const (
	SortDistance     SortOption = "distance"
	SortPriceLowHigh SortOption = "priceLowHigh"
	SortPriceHighLow SortOption = "priceHighLow"
)

// APIKey returns the backend sort_by value for the option.
func (s SortOption) APIKey() string {
	if s == SortDistance {
		return "distance"
	}
	return "price"
}

// AvailabilityFilter restricts the catalog by normalized status.
type AvailabilityFilter string

const (
	AvailabilityAny       AvailabilityFilter = "any"
	AvailabilityOnlyFree  AvailabilityFilter = "available"
	AvailabilityOnlyTaken AvailabilityFilter = "rented"
)

// Matches reports whether a wire status passes the filter. Backends use
// "rented" and "booked" interchangeably for taken drones.
func (f AvailabilityFilter) Matches(status string) bool {
	normalized := strings.ToLower(status)
	switch f {
	case AvailabilityOnlyFree:
		return normalized == "available"
	case AvailabilityOnlyTaken:
		return normalized == "rented" || normalized == "booked"
	}
	return true
}

// MaxDistanceLimitKm is the distance slider ceiling; a filter at the ceiling
// means "no distance limit".
const MaxDistanceLimitKm = 100.0

// CatalogFilter is the client-side filter applied to the farmer catalog
// after fetch. Distance-based filtering and sorting fail open: without a
// resolved user location they are skipped, never hiding items.
type CatalogFilter struct {
	Sort          SortOption
	MaxDistanceKm float64
	MinPrice      *float64
	MaxPrice      *float64
	Availability  AvailabilityFilter
	Categories    []string // type allow-list, case-insensitive; empty allows all
}

// DefaultCatalogFilter returns the unfiltered catalog view sorted by distance.
func DefaultCatalogFilter() CatalogFilter {
	return CatalogFilter{
		Sort:          SortDistance,
		MaxDistanceKm: MaxDistanceLimitKm,
		Availability:  AvailabilityAny,
	}
}

// NearbyCatalogFilter is the "Nearby" quick filter: distance sort, 15 km radius.
func NearbyCatalogFilter() CatalogFilter {
	f := DefaultCatalogFilter()
	f.MaxDistanceKm = 15
	return f
}

// BudgetCatalogFilter is the "Budget" quick filter: cheapest first, capped price.
func BudgetCatalogFilter() CatalogFilter {
	f := DefaultCatalogFilter()
	f.Sort = SortPriceLowHigh
	max := 600.0
	f.MaxPrice = &max
	return f
}

// Apply filters and sorts the catalog. loc may be nil when no user location
// has been resolved yet.
func (f CatalogFilter) Apply(drones []models.Drone, loc *Coordinates) []models.Drone {
	out := make([]models.Drone, 0, len(drones))
	allowed := map[string]struct{}{}
	for _, c := range f.Categories {
		allowed[strings.ToLower(c)] = struct{}{}
	}
	for _, d := range drones {
		if !f.Availability.Matches(d.Status) {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[strings.ToLower(d.Type)]; !ok {
				continue
			}
		}
		if f.MinPrice != nil && d.PricePerHour < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && d.PricePerHour > *f.MaxPrice {
			continue
		}
		if f.MaxDistanceKm < MaxDistanceLimitKm && loc != nil {
			if !geo.IsWithinRadiusKm(loc.Lat, loc.Lon, d.Lat, d.Lon, f.MaxDistanceKm) {
				continue
			}
		}
		out = append(out, d)
	}

	switch f.Sort {
	case SortPriceLowHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerHour < out[j].PricePerHour })
	case SortPriceHighLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerHour > out[j].PricePerHour })
	case SortDistance:
		if loc != nil {
			sort.SliceStable(out, func(i, j int) bool {
				di := geo.HaversineKm(loc.Lat, loc.Lon, out[i].Lat, out[i].Lon)
				dj := geo.HaversineKm(loc.Lat, loc.Lon, out[j].Lat, out[j].Lon)
				return di < dj
			})
		}
	}
	return out
}

// ServerFilter translates the catalog filter into catalog query parameters.
// The distance cap is only sent when it is an actual limit.
func (f CatalogFilter) ServerFilter(loc *Coordinates) services.DroneFilter {
	out := services.DroneFilter{SortBy: f.Sort.APIKey()}
	if loc != nil {
		lat, lon := loc.Lat, loc.Lon
		out.Lat = &lat
		out.Lon = &lon
	}
	if f.MinPrice != nil {
		v := *f.MinPrice
		out.MinPrice = &v
	}
	if f.MaxPrice != nil {
		v := *f.MaxPrice
		out.MaxPrice = &v
	}
	if f.MaxDistanceKm < MaxDistanceLimitKm {
		v := f.MaxDistanceKm
		out.MaxDistanceKm = &v
	}
	return out
}
