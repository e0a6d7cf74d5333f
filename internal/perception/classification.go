package perception

// ObjectClass enumerates the semantic classes the perception source can
// assign to a dynamic object.
type ObjectClass string

const (
	// ClassCar indicates a passenger car
	ClassCar ObjectClass = "car"
	// ClassTruck indicates a truck
	ClassTruck ObjectClass = "truck"
	// ClassBus indicates a bus
	ClassBus ObjectClass = "bus"
	// ClassTrailer indicates a trailer
	ClassTrailer ObjectClass = "trailer"
	// ClassUnknown indicates an unclassified object
	ClassUnknown ObjectClass = "unknown"
	// ClassBicycle indicates a bicycle
	ClassBicycle ObjectClass = "bicycle"
	// ClassMotorcycle indicates a motorcycle
	ClassMotorcycle ObjectClass = "motorcycle"
	// ClassPedestrian indicates a pedestrian
	ClassPedestrian ObjectClass = "pedestrian"
)

// Classification is one (class, probability) entry attached to an object.
type Classification struct {
	Class       ObjectClass
	Probability float64
}

// HighestProbLabel resolves an object's semantic label: the class with the
// maximum probability among its classification entries. Ties break towards
// the first-listed entry (strict greater-than comparison), so resolution is
// stable and deterministic in the order supplied by the perception source.
// An object with no entries resolves to ClassUnknown.
func HighestProbLabel(entries []Classification) ObjectClass {
	if len(entries) == 0 {
		return ClassUnknown
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Probability > best.Probability {
			best = e
		}
	}
	return best.Class
}

// ClassCheckSet holds one "consider this class" flag per semantic class.
// It is a read-only configuration value during filtering.
type ClassCheckSet struct {
	CheckCar        bool
	CheckTruck      bool
	CheckBus        bool
	CheckTrailer    bool
	CheckUnknown    bool
	CheckBicycle    bool
	CheckMotorcycle bool
	CheckPedestrian bool
}

// Enabled reports whether the given class is flagged for consideration.
// The switch is exhaustive over ObjectClass so adding a class is a
// compile-visible change here.
func (s ClassCheckSet) Enabled(c ObjectClass) bool {
	switch c {
	case ClassCar:
		return s.CheckCar
	case ClassTruck:
		return s.CheckTruck
	case ClassBus:
		return s.CheckBus
	case ClassTrailer:
		return s.CheckTrailer
	case ClassUnknown:
		return s.CheckUnknown
	case ClassBicycle:
		return s.CheckBicycle
	case ClassMotorcycle:
		return s.CheckMotorcycle
	case ClassPedestrian:
		return s.CheckPedestrian
	default:
		return false
	}
}

// AllClasses returns a check set with every class enabled.
func AllClasses() ClassCheckSet {
	return ClassCheckSet{
		CheckCar:        true,
		CheckTruck:      true,
		CheckBus:        true,
		CheckTrailer:    true,
		CheckUnknown:    true,
		CheckBicycle:    true,
		CheckMotorcycle: true,
		CheckPedestrian: true,
	}
}
