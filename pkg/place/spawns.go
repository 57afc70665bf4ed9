package place

import "math"

// MaxPlayers is the most Multi player slots a generated map carries.
const MaxPlayers = 8

// PlaceSpawns arranges one mpspawn actor per player on a circle around the
// map center. Zero or negative player counts yield no spawns; counts above
// MaxPlayers are clamped.
func PlaceSpawns(players, width, height int) []Actor {
	if players <= 0 {
		return nil
	}
	if players > MaxPlayers {
		players = MaxPlayers
	}
	cx, cy := width/2, height/2
	r := maxInt(8, minInt(cx, cy)) / 2

	actors := make([]Actor, 0, players)
	for k := 0; k < players; k++ {
		ang := 2 * math.Pi * float64(k) / float64(players)
		// Truncation applies to the sum; the trig term alone can be a
		// negative fraction.
		actors = append(actors, Actor{
			Kind:  KindSpawn,
			Name:  "mpspawn",
			X:     int(float64(cx) + float64(r)*math.Cos(ang)),
			Y:     int(float64(cy) + float64(r)*math.Sin(ang)),
			W:     1,
			H:     1,
			Owner: "Neutral",
		})
	}
	return actors
}
