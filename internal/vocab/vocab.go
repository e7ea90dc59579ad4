// Package vocab holds the controlled vocabularies used to populate the
// annotation form dropdowns. The lists are advisory: validation only requires
// fields to be non-empty, so deployments with other cameras or species can
// still commit free-text values.
package vocab

// Sites are the monitored colony locations
var Sites = []string{
	"Location 1",
	"Location 2",
	"Location 3",
	"Location 4",
	"Location 5",
	"Location 6",
}

// Cameras are the deployed trail camera IDs
var Cameras = []string{
	"CAM001",
	"CAM002",
	"CAM003",
	"CAM004",
	"CAM005",
	"CAM006",
	"CAM007",
	"CAM008",
}

// Categories classify an observation as the monitored seabirds or an
// introduced predator
var Categories = []string{
	"Seabird",
	"Predator",
}

// Species covers the monitored seabirds plus the introduced predators seen on
// the colonies
var Species = []string{
	"Laysan Albatross (Phoebastria immutabilis)",
	"Black-footed Albatross (Phoebastria nigripes)",
	"Wedge-tailed Shearwater (Ardenna pacifica)",
	"Newell's Shearwater (Puffinus newelli)",
	"Hawaiian Petrel (Pterodroma sandwichensis)",
	"Red-tailed Tropicbird (Phaethon rubricauda)",
	"White-tailed Tropicbird (Phaethon lepturus)",
	"Brown Booby (Sula leucogaster)",
	"Red-footed Booby (Sula sula)",
	"Great Frigatebird (Fregata minor)",
	"Rat (Rattus sp.)",
	"Cat (Felis catus)",
	"Mongoose (Herpestes javanicus)",
	"Barn Owl (Tyto alba)",
	"Dog (Canis lupus familiaris)",
	"Goat (Capra hircus)",
	"Deer (Cervidae)",
}

// Behaviors are the recognized nest-site behaviors
var Behaviors = []string{
	"Chick rearing",
	"Cleaning",
	"Courtship",
	"Defending territory",
	"Feeding",
	"Flying",
	"Foraging",
	"Incubating",
	"Nesting",
	"Preening",
	"Resting",
}

// Lists bundles every vocabulary for the read-only vocab endpoint
type Lists struct {
	Sites      []string `json:"sites"`
	Cameras    []string `json:"cameras"`
	Categories []string `json:"categories"`
	Species    []string `json:"species"`
	Behaviors  []string `json:"behaviors"`
}

// All returns every vocabulary list
func All() Lists {
	return Lists{
		Sites:      Sites,
		Cameras:    Cameras,
		Categories: Categories,
		Species:    Species,
		Behaviors:  Behaviors,
	}
}
