package enum

import "encoding/json"

// PrintingStation is the preparation area a product is routed to on a kitchen ticket
type PrintingStation string

const (
	PrintingStationNone    PrintingStation = "none"
	PrintingStationKitchen PrintingStation = "kitchen"
	PrintingStationBar     PrintingStation = "bar"
	PrintingStationBoth    PrintingStation = "both"
)

func (s PrintingStation) String() string {
	return string(s)
}

// ToKitchen reports whether items routed to s belong on the kitchen section
func (s PrintingStation) ToKitchen() bool {
	return s == PrintingStationKitchen || s == PrintingStationBoth
}

// ToBar reports whether items routed to s belong on the bar section
func (s PrintingStation) ToBar() bool {
	return s == PrintingStationBar || s == PrintingStationBoth
}

// UnmarshalJSON accepts the canonical names plus the spanish labels older snapshots carry
func (s *PrintingStation) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "kitchen", "cocina":
		*s = PrintingStationKitchen
	case "bar", "barra":
		*s = PrintingStationBar
	case "both", "ambas", "ambos":
		*s = PrintingStationBoth
	default:
		*s = PrintingStationNone
	}
	return nil
}
