package models

import (
	"encoding/json"
	"fmt"
)

// Point - географическая точка. В JSON кодируется как пара [longitude, latitude].
type Point struct {
	Lon float64 `validate:"longitude"`
	Lat float64 `validate:"latitude"`
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lon, p.Lat})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be a [longitude, latitude] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("point must contain exactly 2 numbers, got %d", len(pair))
	}
	p.Lon, p.Lat = pair[0], pair[1]
	return nil
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.Lon, p.Lat)
}
