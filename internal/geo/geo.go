package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gift-interop/disbridge/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// DIS world coordinates are WGS84 geocentric (EPSG:4978) metres.
// Journal positions are stored as 3857 points with the geodetic altitude in Z,
// because SQLite has no spatial awareness and the WKB has to read back the same
// on every backend.

const (
	epsgGeocentric  = 4978
	epsgGeodetic    = 4326
	epsgWebMercator = 3857
)

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Geodetic is a WGS84 longitude/latitude in degrees and an ellipsoidal height in metres.
type Geodetic struct {
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Altitude  float64 `json:"altitude" yaml:"altitude"`
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// GeodeticFromGeocentric converts DIS world coordinates to longitude, latitude and altitude.
// The origin has no geodetic position and is rejected.
func GeodeticFromGeocentric(v core.Vector3) (Geodetic, error) {
	if !finite(v.X, v.Y, v.Z) || (v.X == 0 && v.Y == 0 && v.Z == 0) {
		return Geodetic{}, ErrInvalidCoordinates
	}
	f := wgs84.EPSG().Transform(epsgGeocentric, epsgGeodetic)
	lon, lat, alt := f(v.X, v.Y, v.Z)
	if !finite(lon, lat, alt) {
		return Geodetic{}, ErrInvalidCoordinates
	}
	return Geodetic{Longitude: lon, Latitude: lat, Altitude: alt}, nil
}

// GeocentricFromGeodetic converts longitude, latitude and altitude to DIS world coordinates.
func GeocentricFromGeodetic(g Geodetic) (core.Vector3, error) {
	if !finite(g.Longitude, g.Latitude, g.Altitude) ||
		g.Latitude < -90 || g.Latitude > 90 || g.Longitude < -180 || g.Longitude > 180 {
		return core.Vector3{}, ErrInvalidCoordinates
	}
	f := wgs84.EPSG().Transform(epsgGeodetic, epsgGeocentric)
	x, y, z := f(g.Longitude, g.Latitude, g.Altitude)
	return core.Vector3{X: x, Y: y, Z: z}, nil
}

// GeodeticFromString parses "long,lat" or "long,lat,alt".
func GeodeticFromString(coords string) (Geodetic, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) < 2 {
		return Geodetic{}, ErrInvalidCoordinates
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[0]), 64)
	if err != nil {
		return Geodetic{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[1]), 64)
	if err != nil {
		return Geodetic{}, ErrInvalidCoordinates
	}
	var alt float64
	if len(coordsSplit) > 2 {
		alt, err = strconv.ParseFloat(strings.TrimSpace(coordsSplit[2]), 64)
		if err != nil {
			return Geodetic{}, ErrInvalidCoordinates
		}
	}
	return Geodetic{Longitude: long, Latitude: lat, Altitude: alt}, nil
}

// Coords3857From4326 creates a web mercator point from a longitude and latitude
func Coords3857From4326(
	longitude float64,
	latitude float64,
	altitude float64,
) (
	point geom.Point,
	err error,
) {
	if !finite(longitude, latitude, altitude) {
		return geom.NewEmptyPoint(geom.DimXYZ), ErrInvalidCoordinates
	}
	var x, y float64
	epsg := wgs84.EPSG()
	f := epsg.Transform(epsgGeodetic, epsgWebMercator)
	x, y, _ = f(longitude, latitude, 0)
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: x, Y: y},
			Z:    altitude,
			Type: geom.DimXYZ,
		},
	)
}

// Point3857FromGeocentric converts DIS world coordinates straight to a web mercator point.
func Point3857FromGeocentric(v core.Vector3) (geom.Point, error) {
	g, err := GeodeticFromGeocentric(v)
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXYZ), err
	}
	return Coords3857From4326(g.Longitude, g.Latitude, g.Altitude)
}

// TrackFromPoints joins journal positions into a line, skipping empty points.
func TrackFromPoints(points []geom.Point) (geom.LineString, error) {
	flatCoords := make([]float64, 0, len(points)*3)
	for _, p := range points {
		c, ok := p.Coordinates()
		if !ok {
			continue
		}
		flatCoords = append(flatCoords, c.XY.X, c.XY.Y, c.Z)
	}
	if len(flatCoords) < 6 {
		return geom.LineString{}, ErrInvalidCoordinates
	}
	return geom.NewLineString(geom.NewSequence(flatCoords, geom.DimXYZ))
}
