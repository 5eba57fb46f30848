package metrics

import (
	"fmt"
	"strings"

	"github.com/san-kum/vstick/internal/stick"
)

var directions = []stick.Direction{stick.Up, stick.Down, stick.Left, stick.Right, stick.Static}

// Dwell accumulates how long the stick has pointed in each direction.
type Dwell struct {
	seconds map[stick.Direction]float64
}

func NewDwell() *Dwell {
	return &Dwell{seconds: make(map[stick.Direction]float64, len(directions))}
}

func (d *Dwell) Observe(dir stick.Direction, dt float64) {
	if dt > 0 {
		d.seconds[dir] += dt
	}
}

func (d *Dwell) Seconds(dir stick.Direction) float64 {
	return d.seconds[dir]
}

// Total is the observed time across all directions.
func (d *Dwell) Total() float64 {
	total := 0.0
	for _, s := range d.seconds {
		total += s
	}
	return total
}

// Dominant returns the direction other than Static held the longest, or
// Static if the stick never moved.
func (d *Dwell) Dominant() stick.Direction {
	best, bestSec := stick.Static, 0.0
	for _, dir := range directions[:4] {
		if s := d.seconds[dir]; s > bestSec {
			best, bestSec = dir, s
		}
	}
	return best
}

func (d *Dwell) Reset() {
	clear(d.seconds)
}

func (d *Dwell) String() string {
	parts := make([]string, 0, len(directions))
	for _, dir := range directions {
		parts = append(parts, fmt.Sprintf("%s %.1fs", strings.ToLower(string(dir)), d.seconds[dir]))
	}
	return strings.Join(parts, "  ")
}
