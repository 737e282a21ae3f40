package location

// cityCoords is a crude fallback geocoder used when the backend has not
// supplied a distance: a fixed table of cities within realistic sourcing
// range of the home base. Inherently incomplete; a real deployment would
// inject a geocoding service via WithGeocoder.
//
//nolint:gochecknoglobals
var cityCoords = map[string]Coordinate{
	// Tennessee
	"rickman":     {Lat: 36.2667, Lng: -85.4167},
	"cookeville":  {Lat: 36.1628, Lng: -85.5016},
	"nashville":   {Lat: 36.1627, Lng: -86.7816},
	"knoxville":   {Lat: 35.9606, Lng: -83.9207},
	"chattanooga": {Lat: 35.0456, Lng: -85.3097},
	"memphis":     {Lat: 35.1495, Lng: -90.0490},

	// Kentucky
	"lexington":     {Lat: 38.0406, Lng: -84.5037},
	"louisville":    {Lat: 38.2527, Lng: -85.7585},
	"bowling green": {Lat: 36.9685, Lng: -86.4808},

	// Texas
	"austin":      {Lat: 30.2672, Lng: -97.7431},
	"dallas":      {Lat: 32.7767, Lng: -96.7970},
	"houston":     {Lat: 29.7604, Lng: -95.3698},
	"san antonio": {Lat: 29.4241, Lng: -98.4936},

	// Georgia / Alabama
	"atlanta":    {Lat: 33.7490, Lng: -84.3880},
	"birmingham": {Lat: 33.5207, Lng: -86.8025},
	"huntsville": {Lat: 34.7304, Lng: -86.5861},
}

// TableGeocoder resolves city names against the fixed table.
func TableGeocoder(city string) (Coordinate, bool) {
	coord, ok := cityCoords[city]
	return coord, ok
}
