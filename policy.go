package locusstats

// ParsePolicy decides what happens to a row when one of its non-missing
// fields is not a number.
type ParsePolicy uint32

const (
	// FailFast rejects the entire row on the first unparseable field. Fields
	// that did parse are not kept.
	FailFast ParsePolicy = iota

	// Salvage drops unparseable fields as though they were missing and keeps
	// the rest of the row.
	Salvage
)

func (p ParsePolicy) String() string {
	switch p {
	case FailFast:
		return "FailFast"
	case Salvage:
		return "Salvage"

	default:
		return "Illegal selection"
	}
}
