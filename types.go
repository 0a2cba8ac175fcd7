package waygate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind is the navigation mode: which host primitive a transition uses.
type Kind int

const (
	// KindOpenNew pushes a new page onto the host page stack. Zero value,
	// so it is the default for requests that leave Kind unset.
	KindOpenNew Kind = iota
	// KindReplace swaps the current page for the destination.
	KindReplace
	// KindReset clears the page stack and opens the destination.
	KindReset
	// KindSwitchTab activates a fixed tab page. Tab destinations cannot
	// carry a query string, so parameters are dropped at dispatch.
	KindSwitchTab
	// KindBack pops one or more pages off the stack.
	KindBack
)

// Valid reports whether k is a known transition kind.
func (k Kind) Valid() bool {
	return k >= KindOpenNew && k <= KindBack
}

func (k Kind) String() string {
	switch k {
	case KindOpenNew:
		return "open_new"
	case KindReplace:
		return "replace"
	case KindReset:
		return "reset"
	case KindSwitchTab:
		return "switch_tab"
	case KindBack:
		return "back"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Params is the query parameter mapping attached to a transition.
type Params map[string]Value

type valueKind int

const (
	valueString valueKind = iota
	valueInt
	valueFloat
	valueBool
	valueJSON
)

// Value is a closed variant of the parameter types a destination URL can
// carry: string, integer, float, bool, or a structured value serialized
// as JSON. Construct with String, Int, Float, Bool, or JSON.
type Value struct {
	kind valueKind
	s    string
	i    int64
	f    float64
	b    bool
	j    any
}

// String wraps a string parameter.
func String(s string) Value { return Value{kind: valueString, s: s} }

// Int wraps an integer parameter.
func Int(i int64) Value { return Value{kind: valueInt, i: i} }

// Float wraps a floating-point parameter.
func Float(f float64) Value { return Value{kind: valueFloat, f: f} }

// Bool wraps a boolean parameter.
func Bool(b bool) Value { return Value{kind: valueBool, b: b} }

// JSON wraps a structured parameter, serialized as JSON text before
// percent-encoding.
func JSON(v any) Value { return Value{kind: valueJSON, j: v} }

// encode renders the value as the raw (pre-escaping) query text.
func (v Value) encode() string {
	switch v.kind {
	case valueString:
		return v.s
	case valueInt:
		return strconv.FormatInt(v.i, 10)
	case valueFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case valueBool:
		return strconv.FormatBool(v.b)
	case valueJSON:
		b, err := json.Marshal(v.j)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// Hint carries presentation preferences for page transitions. Hosts that
// do not animate ignore it.
type Hint struct {
	Style    string
	Duration time.Duration
}

// Request describes one navigation. It lives only for the duration of a
// Navigate call and is never stored by the pipeline.
type Request struct {
	// Path is the destination route. Required for every kind except KindBack.
	Path string
	// Kind selects the host primitive. Defaults to KindOpenNew.
	Kind Kind
	// Params is encoded into the destination URL for KindOpenNew,
	// KindReplace, and KindReset. Tab and back transitions cannot carry
	// parameters.
	Params Params
	// Hint is passed through to the host for page-opening kinds.
	Hint *Hint
	// Steps is how many pages KindBack pops. Values below 1 mean 1.
	Steps int

	// OnSuccess, OnFailure, and OnComplete are optional hooks invoked
	// after the outcome is settled. They observe the same result the
	// Navigate error return reports.
	OnSuccess  func()
	OnFailure  func(error)
	OnComplete func()
}
