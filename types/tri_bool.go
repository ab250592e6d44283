package types

// TriBool is the result of evaluating a predicate under SQL's three-valued
// logic. Comparisons against NULL produce Unknown, and Unknown rows are
// filtered out the same way False rows are.
type TriBool int32

const (
	False TriBool = iota
	True
	Unknown
)

func NewTriBool(b bool) TriBool {
	if b {
		return True
	}
	return False
}

// IsTrue reports whether the value is definitely true. Unknown is not true.
func (t TriBool) IsTrue() bool { return t == True }

// And implements Kleene conjunction: False dominates Unknown.
func (t TriBool) And(other TriBool) TriBool {
	if t == False || other == False {
		return False
	}
	if t == Unknown || other == Unknown {
		return Unknown
	}
	return True
}

// Or implements Kleene disjunction: True dominates Unknown.
func (t TriBool) Or(other TriBool) TriBool {
	if t == True || other == True {
		return True
	}
	if t == Unknown || other == Unknown {
		return Unknown
	}
	return False
}

// Not negates the value. The negation of Unknown is Unknown.
func (t TriBool) Not() TriBool {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

func (t TriBool) String() string {
	switch t {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	default:
		return "UNKNOWN"
	}
}
