package reports

// Kind enumerates the report selection modes.
type Kind int

const (
	KindComplete Kind = iota
	KindItem
	KindLocation
	KindCategory
	KindCondition
)

var kindNames = [...]string{
	KindComplete:  "complete",
	KindItem:      "item",
	KindLocation:  "location",
	KindCategory:  "category",
	KindCondition: "condition",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "complete"
	}
	return kindNames[k]
}

// ParseKind maps a wire value onto a Kind. Unknown values return
// (KindComplete, false) so the caller decides how loudly to fall back;
// the silent string-compare default is gone on purpose.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if s == name {
			return Kind(k), true
		}
	}
	return KindComplete, false
}
