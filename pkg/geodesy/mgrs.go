package geodesy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// 100 km grid square letter sets. Column letters cycle in three sets of eight
// by zone; row letters cycle every twenty, with even zones offset by five.
const (
	mgrsColumnLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	mgrsRowLetters    = "ABCDEFGHJKLMNPQRSTUV"
)

// ParseMGRS resolves an MGRS grid reference (e.g. "17SPA7768033011") to the
// WGS84 geographic coordinate of its southwest corner at the reference's
// stated precision.
func ParseMGRS(ref string) (lat, lon float64, err error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ref), " ", ""))
	if len(s) < 5 {
		return 0, 0, fmt.Errorf("mgrs %q too short", ref)
	}

	// Leading 1-2 digit zone number.
	digits := 0
	for digits < len(s) && digits < 2 && unicode.IsDigit(rune(s[digits])) {
		digits++
	}
	if digits == 0 {
		return 0, 0, fmt.Errorf("mgrs %q missing zone number", ref)
	}
	zone, err := strconv.Atoi(s[:digits])
	if err != nil || zone < 1 || zone > 60 {
		return 0, 0, fmt.Errorf("mgrs %q has invalid zone number", ref)
	}

	if len(s) < digits+3 {
		return 0, 0, fmt.Errorf("mgrs %q missing band or square letters", ref)
	}
	band := s[digits]
	bandIdx := strings.IndexByte(zoneLetters, band)
	if bandIdx < 0 {
		return 0, 0, fmt.Errorf("mgrs %q has invalid band letter %q", ref, string(band))
	}
	colLetter := s[digits+1]
	rowLetter := s[digits+2]

	numeric := s[digits+3:]
	if len(numeric)%2 != 0 {
		return 0, 0, fmt.Errorf("mgrs %q has odd-length numeric part", ref)
	}
	half := len(numeric) / 2
	if half > 5 {
		return 0, 0, fmt.Errorf("mgrs %q exceeds 1 m precision", ref)
	}

	e100k, err := mgrsColumnEasting(zone, colLetter)
	if err != nil {
		return 0, 0, fmt.Errorf("mgrs %q: %w", ref, err)
	}
	n100k, err := mgrsRowNorthing(zone, rowLetter)
	if err != nil {
		return 0, 0, fmt.Errorf("mgrs %q: %w", ref, err)
	}

	scale := math.Pow(10, float64(5-half))
	var easting, northing float64
	if half > 0 {
		ev, err1 := strconv.ParseFloat(numeric[:half], 64)
		nv, err2 := strconv.ParseFloat(numeric[half:], 64)
		if err1 != nil || err2 != nil {
			return 0, 0, fmt.Errorf("mgrs %q has non-numeric offsets", ref)
		}
		easting = ev * scale
		northing = nv * scale
	}

	// Row letters repeat every 2,000 km; shift north until the northing lands
	// in the reference's latitude band.
	bandLat := float64(bandIdx*8 - 80)
	bandUTM, err := FromLatLon(bandLat, centralMeridian(zone))
	if err != nil {
		return 0, 0, err
	}
	bandNorthing := math.Floor(bandUTM.Northing/100000) * 100000
	total := n100k + northing
	for total < bandNorthing {
		total += 2000000
	}

	lat, lon, err = ToLatLon(UTM{
		Easting:    e100k + easting,
		Northing:   total,
		ZoneNumber: zone,
		ZoneLetter: band,
	})
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func mgrsColumnEasting(zone int, letter byte) (float64, error) {
	set := (zone - 1) % 3
	start := set * 8
	idx := strings.IndexByte(mgrsColumnLetters[start:start+8], letter)
	if idx < 0 {
		return 0, fmt.Errorf("column letter %q not valid for zone %d", string(letter), zone)
	}
	return float64(idx+1) * 100000, nil
}

func mgrsRowNorthing(zone int, letter byte) (float64, error) {
	idx := strings.IndexByte(mgrsRowLetters, letter)
	if idx < 0 {
		return 0, fmt.Errorf("invalid row letter %q", string(letter))
	}
	if zone%2 == 0 {
		idx = (idx - 5 + len(mgrsRowLetters)) % len(mgrsRowLetters)
	}
	return float64(idx) * 100000, nil
}
