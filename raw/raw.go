// Package raw defines the object model of a PDF file body: the closed set of
// value types a document dictionary can hold, plus indirect objects and
// references. Values nest directly (arrays, dictionaries); cycles are only
// possible through references.
package raw

// Object is the interface implemented by every PDF value type.
type Object interface {
	Type() string
}

// NullObj is the null object.
type NullObj struct{}

func (NullObj) Type() string { return "null" }

// BoolObj is a boolean object.
type BoolObj struct{ V bool }

func (BoolObj) Type() string  { return "boolean" }
func (b BoolObj) Value() bool { return b.V }

// NumberObj is a numeric object, integer or real.
type NumberObj struct {
	I     int64
	F     float64
	IsInt bool
}

func (NumberObj) Type() string { return "number" }
func (n NumberObj) Float() float64 {
	if n.IsInt {
		return float64(n.I)
	}
	return n.F
}

// StringObj is a literal string object. Bytes are stored unescaped; escaping
// happens at encode time.
type StringObj struct{ Bytes []byte }

func (StringObj) Type() string    { return "string" }
func (s StringObj) Value() []byte { return s.Bytes }

// NameObj is a name object. Val is stored without the leading slash and is
// emitted verbatim, never escaped.
type NameObj struct{ Val string }

func (NameObj) Type() string    { return "name" }
func (n NameObj) Value() string { return n.Val }

// ArrayObj is an ordered sequence of objects.
type ArrayObj struct{ Items []Object }

func (*ArrayObj) Type() string      { return "array" }
func (a *ArrayObj) Len() int        { return len(a.Items) }
func (a *ArrayObj) Append(o Object) { a.Items = append(a.Items, o) }

// RefObj is an indirect reference carrying only the object number.
// Generation numbers are always zero in a freshly built file.
type RefObj struct{ Num int }

func (RefObj) Type() string { return "ref" }

// DictObj is a dictionary with insertion-ordered keys. Setting an existing
// key overwrites its value in place without changing its position, which is
// what lets the builder reserve a slot early and backfill it later.
type DictObj struct {
	keys []string
	kv   map[string]Object
}

func (*DictObj) Type() string { return "dict" }

// Set stores value under key. A nil value is legal and acts as a
// placeholder: the entry is omitted when the dictionary is encoded.
func (d *DictObj) Set(key string, value Object) {
	if d.kv == nil {
		d.kv = make(map[string]Object)
	}
	if _, exists := d.kv[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.kv[key] = value
}

// Get returns the value stored under key.
func (d *DictObj) Get(key string) (Object, bool) {
	o, ok := d.kv[key]
	return o, ok
}

// Keys returns the dictionary keys in insertion order.
func (d *DictObj) Keys() []string { return d.keys }

func (d *DictObj) Len() int { return len(d.keys) }

// StreamObj pairs a dictionary with a raw byte payload. Use NewStream so the
// Length entry always matches the payload.
type StreamObj struct {
	Dict *DictObj
	Data []byte
}

func (*StreamObj) Type() string { return "stream" }

// Helpers mirroring the common construction patterns.

func Null() NullObj                      { return NullObj{} }
func Bool(v bool) BoolObj                { return BoolObj{V: v} }
func NumberInt(i int64) NumberObj        { return NumberObj{I: i, IsInt: true} }
func NumberFloat(f float64) NumberObj    { return NumberObj{F: f} }
func Str(b []byte) StringObj             { return StringObj{Bytes: b} }
func NameLiteral(v string) NameObj       { return NameObj{Val: v} }
func NewArray(items ...Object) *ArrayObj { return &ArrayObj{Items: items} }
func Dict() *DictObj                     { return &DictObj{} }
func Ref(num int) RefObj                 { return RefObj{Num: num} }

// NewStream builds a stream object and records the exact payload length in
// its dictionary.
func NewStream(dict *DictObj, data []byte) *StreamObj {
	if dict == nil {
		dict = Dict()
	}
	dict.Set("Length", NumberInt(int64(len(data))))
	return &StreamObj{Dict: dict, Data: data}
}
