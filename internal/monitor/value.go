package monitor

// Value is the closed set of payload types allowed in report context
// blocks. Keeping the variant closed preserves type safety for the
// open-ended key/value bags the demo attaches to reports; conversion to
// the SDK's untyped form happens once, at the reporting edge.
type Value interface {
	isValue()
}

// String, Int, Float, Bool, List and Map are the Value variants.
type (
	String string
	Int    int64
	Float  float64
	Bool   bool
	List   []Value
	Map    map[string]Value
)

func (String) isValue() {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (Bool) isValue()   {}
func (List) isValue()   {}
func (Map) isValue()    {}

// Context is one named block of structured report data.
type Context map[string]Value

// Native converts a context block into the any-typed form SDK clients and
// JSON encoders accept.
func (c Context) Native() map[string]any {
	if len(c) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(c))
	for k, v := range c {
		out[k] = nativeValue(v)
	}
	return out
}

func nativeValue(v Value) any {
	switch t := v.(type) {
	case String:
		return string(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case Bool:
		return bool(t)
	case List:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = nativeValue(item)
		}
		return out
	case Map:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = nativeValue(item)
		}
		return out
	default:
		return nil
	}
}
