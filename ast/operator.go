package ast

// Operator is an arithmetic, comparison or unary operator.
type Operator uint8

const (
	InvalidOperator Operator = iota // Joins expressions that lack an operator between them

	MultiplicationOperator
	DivisionOperator
	ModuloOperator
	PowerOperator
	AdditionOperator
	SubtractionOperator
	LessThanEqualOperator
	LessThanOperator
	GreaterThanEqualOperator
	GreaterThanOperator
	StartsWithOperator
	InOperator
	NotOperator
	ExistsOperator
	NotEmptyOperator
	EmptyOperator
	EqualOperator
	NotEqualOperator
	RegexpMatchOperator
	NotRegexpMatchOperator
)

var operatorNames = map[Operator]string{
	InvalidOperator:          "<INVALID_OP>",
	MultiplicationOperator:   "*",
	DivisionOperator:         "/",
	ModuloOperator:           "%",
	PowerOperator:            "^",
	AdditionOperator:         "+",
	SubtractionOperator:      "-",
	LessThanEqualOperator:    "<=",
	LessThanOperator:         "<",
	GreaterThanEqualOperator: ">=",
	GreaterThanOperator:      ">",
	StartsWithOperator:       "startswith",
	InOperator:               "in",
	NotOperator:              "not",
	ExistsOperator:           "exists",
	NotEmptyOperator:         "not empty",
	EmptyOperator:            "empty",
	EqualOperator:            "==",
	NotEqualOperator:         "!=",
	RegexpMatchOperator:      "=~",
	NotRegexpMatchOperator:   "!~",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}

// LogicalOperator is "and" or "or".
type LogicalOperator uint8

const (
	AndOperator LogicalOperator = iota
	OrOperator
)

func (o LogicalOperator) String() string {
	switch o {
	case AndOperator:
		return "and"
	case OrOperator:
		return "or"
	default:
		return "UNKNOWN"
	}
}
