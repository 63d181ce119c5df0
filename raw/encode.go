package raw

import (
	"strconv"
	"strings"
)

// Encode renders an object in its textual file representation. It is total
// over well-formed object trees: a nil Object encodes as null, and every
// concrete type has an arm in the switch.
func Encode(o Object) string {
	var b strings.Builder
	encode(&b, o)
	return b.String()
}

func encode(b *strings.Builder, o Object) {
	switch v := o.(type) {
	case nil, NullObj:
		b.WriteString("null")
	case BoolObj:
		if v.V {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case NumberObj:
		if v.IsInt {
			b.WriteString(strconv.FormatInt(v.I, 10))
		} else {
			b.WriteString(FormatNumber(v.F))
		}
	case StringObj:
		b.WriteByte('(')
		b.WriteString(EscapeString(v.Bytes))
		b.WriteByte(')')
	case NameObj:
		b.WriteByte('/')
		b.WriteString(v.Val)
	case *ArrayObj:
		b.WriteByte('[')
		for i, it := range v.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			encode(b, it)
		}
		b.WriteByte(']')
	case RefObj:
		b.WriteString(strconv.Itoa(v.Num))
		b.WriteString(" 0 R")
	case *DictObj:
		b.WriteString("<<")
		for _, k := range v.keys {
			val := v.kv[k]
			if val == nil {
				continue
			}
			b.WriteString("\n/")
			b.WriteString(k)
			b.WriteByte(' ')
			encode(b, val)
		}
		b.WriteString("\n>>")
	case *StreamObj:
		encode(b, v.Dict)
	default:
		b.WriteString("null")
	}
}

// FormatNumber renders a float with at most four decimal places, stripping
// trailing zeros and a trailing decimal point. Integer-valued floats come
// out as plain decimals.
func FormatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	"(", `\(`,
	")", `\)`,
	"\r", `\r`,
	"\n", `\n`,
)

// EscapeString escapes the characters that would break a literal string:
// backslash, both parentheses, carriage return and line feed. All other
// bytes pass through untouched.
func EscapeString(b []byte) string {
	return stringEscaper.Replace(string(b))
}
