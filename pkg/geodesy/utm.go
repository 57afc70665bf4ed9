package geodesy

import (
	"fmt"
	"math"
)

// WGS84 ellipsoid and transverse Mercator series constants.
const (
	radius = 6378137.0
	k0     = 0.9996

	e  = 0.00669438 // first eccentricity squared
	e2 = e * e
	e3 = e2 * e
)

var (
	ep2 = e / (1 - e)

	sqrtE = math.Sqrt(1 - e)
	ei    = (1 - sqrtE) / (1 + sqrtE)
	ei2   = ei * ei
	ei3   = ei2 * ei
	ei4   = ei3 * ei

	m1 = 1 - e/4 - 3*e2/64 - 5*e3/256
	m2 = 3*e/8 + 3*e2/32 + 45*e3/1024
	m3 = 15*e2/256 + 45*e3/1024
	m4 = 35 * e3 / 3072

	p2 = 3.0/2*ei - 27.0/32*ei3
	p3 = 21.0/16*ei2 - 55.0/32*ei4
	p4 = 151.0 / 96 * ei3
	p5 = 1097.0 / 512 * ei4
)

const zoneLetters = "CDEFGHJKLMNPQRSTUVWX"

// UTM is a projected planar coordinate in a single UTM zone.
type UTM struct {
	Easting    float64
	Northing   float64
	ZoneNumber int
	ZoneLetter byte
}

// SameZone reports whether two coordinates share a zone number and letter.
func (u UTM) SameZone(v UTM) bool {
	return u.ZoneNumber == v.ZoneNumber && u.ZoneLetter == v.ZoneLetter
}

// Northern reports whether the coordinate lies in the northern hemisphere.
func (u UTM) Northern() bool {
	return u.ZoneLetter >= 'N'
}

func (u UTM) String() string {
	return fmt.Sprintf("%.1fE %.1fN %d%c", u.Easting, u.Northing, u.ZoneNumber, u.ZoneLetter)
}

// ZoneNumberFor returns the UTM zone number for a coordinate, including the
// Norway and Svalbard exceptions.
func ZoneNumberFor(lat, lon float64) int {
	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}
	if lat >= 72 && lat <= 84 && lon >= 0 {
		switch {
		case lon < 9:
			return 31
		case lon < 21:
			return 33
		case lon < 33:
			return 35
		case lon < 42:
			return 37
		}
	}
	return int((lon+180)/6) + 1
}

// ZoneLetterFor returns the MGRS latitude band letter for a latitude.
func ZoneLetterFor(lat float64) (byte, error) {
	if lat < -80 || lat > 84 {
		return 0, fmt.Errorf("latitude %.4f outside UTM band range [-80, 84]", lat)
	}
	idx := int((lat + 80) / 8)
	if idx > 19 {
		idx = 19 // band X spans 72..84
	}
	return zoneLetters[idx], nil
}

func centralMeridian(zoneNumber int) float64 {
	return float64((zoneNumber-1)*6 - 180 + 3)
}

// FromLatLon projects a WGS84 geographic coordinate into UTM.
func FromLatLon(lat, lon float64) (UTM, error) {
	if lat < -80 || lat > 84 {
		return UTM{}, fmt.Errorf("latitude %.4f outside UTM band range [-80, 84]", lat)
	}
	if lon < -180 || lon > 180 {
		return UTM{}, fmt.Errorf("longitude %.4f out of range [-180, 180]", lon)
	}
	letter, err := ZoneLetterFor(lat)
	if err != nil {
		return UTM{}, err
	}
	zone := ZoneNumberFor(lat, lon)

	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180
	cmRad := centralMeridian(zone) * math.Pi / 180

	sinLat := math.Sin(latRad)
	cosLat := math.Cos(latRad)
	tanLat := sinLat / cosLat

	t := tanLat * tanLat
	c := ep2 * cosLat * cosLat
	a := cosLat * (lonRad - cmRad)
	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	n := radius / math.Sqrt(1-e*sinLat*sinLat)
	m := radius * (m1*latRad - m2*math.Sin(2*latRad) + m3*math.Sin(4*latRad) - m4*math.Sin(6*latRad))

	easting := k0*n*(a+a3/6*(1-t+c)+a5/120*(5-18*t+t*t+72*c-58*ep2)) + 500000
	northing := k0 * (m + n*tanLat*(a2/2+a4/24*(5-t+9*c+4*c*c)+a6/720*(61-58*t+t*t+600*c-330*ep2)))
	if lat < 0 {
		northing += 10000000
	}

	return UTM{Easting: easting, Northing: northing, ZoneNumber: zone, ZoneLetter: letter}, nil
}

// ToLatLon inverts a UTM coordinate back to WGS84 geographic degrees.
func ToLatLon(u UTM) (lat, lon float64, err error) {
	if u.ZoneNumber < 1 || u.ZoneNumber > 60 {
		return 0, 0, fmt.Errorf("zone number %d out of range [1, 60]", u.ZoneNumber)
	}
	if u.ZoneLetter < 'C' || u.ZoneLetter > 'X' || u.ZoneLetter == 'I' || u.ZoneLetter == 'O' {
		return 0, 0, fmt.Errorf("invalid zone letter %q", string(u.ZoneLetter))
	}

	x := u.Easting - 500000
	y := u.Northing
	if !u.Northern() {
		y -= 10000000
	}

	m := y / k0
	mu := m / (radius * m1)

	pRad := mu + p2*math.Sin(2*mu) + p3*math.Sin(4*mu) + p4*math.Sin(6*mu) + p5*math.Sin(8*mu)

	pSin := math.Sin(pRad)
	pSin2 := pSin * pSin
	pCos := math.Cos(pRad)
	pTan := pSin / pCos
	pTan2 := pTan * pTan
	pTan4 := pTan2 * pTan2

	epSin := 1 - e*pSin2
	n := radius / math.Sqrt(epSin)
	r := (1 - e) / epSin

	c := ep2 * pCos * pCos
	c2 := c * c

	d := x / (n * k0)
	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	lat = pRad - (pTan/r)*(d2/2-d4/24*(5+3*pTan2+10*c-4*c2-9*ep2)+
		d6/720*(61+90*pTan2+298*c+45*pTan4-252*ep2-3*c2))
	lonRad := (d - d3/6*(1+2*pTan2+c) +
		d5/120*(5-2*c+28*pTan2-3*c2+8*ep2+24*pTan4)) / pCos

	lat = lat * 180 / math.Pi
	lon = centralMeridian(u.ZoneNumber) + lonRad*180/math.Pi
	return lat, lon, nil
}
