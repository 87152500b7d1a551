package transform

// fixedParser ignores its input and always yields the same value.
type fixedParser struct {
	value Value
}

func (p fixedParser) Family() Family { return FamilyFixed }

func (p fixedParser) Parse(string, Descriptor) (Value, error) {
	return p.value, nil
}

// NoContentPolicy decides what the "no content" formats (ixt:nocontent,
// ixt:fixed-empty) produce.
type NoContentPolicy int

const (
	// NoContentNull yields a null value.
	NoContentNull NoContentPolicy = iota
	// NoContentZero yields the number zero.
	NoContentZero
)

func (p NoContentPolicy) value() Value {
	if p == NoContentZero {
		return NumberValue(0)
	}
	return NullValue()
}

func (p NoContentPolicy) String() string {
	if p == NoContentZero {
		return "zero"
	}
	return "null"
}
