package steps

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoomPosition is the slot's placement on the floorplan, in plan units.
type RoomPosition struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// RoomSlot is one room of the floorplan template. The same template repeats
// on every floor.
type RoomSlot struct {
	ID        string       `yaml:"id"`
	Direction string       `yaml:"direction"`
	Items     int          `yaml:"items"`
	Splits    int          `yaml:"splits"`
	Position  RoomPosition `yaml:"position"`
}

type slotsFile struct {
	Layout struct {
		Rooms []RoomSlot `yaml:"rooms"`
	} `yaml:"layout"`
}

// LoadSlots reads the floorplan template from a YAML config file.
func LoadSlots(path string) ([]RoomSlot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout config: %w", err)
	}
	var parsed slotsFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse layout config: %w", err)
	}
	if len(parsed.Layout.Rooms) == 0 {
		return nil, fmt.Errorf("layout config %s: no rooms defined", path)
	}
	for i, slot := range parsed.Layout.Rooms {
		if slot.ID == "" {
			return nil, fmt.Errorf("layout config %s: room %d has no id", path, i)
		}
		if slot.Items <= 0 {
			return nil, fmt.Errorf("layout config %s: room %s has no capacity", path, slot.ID)
		}
	}
	return parsed.Layout.Rooms, nil
}
