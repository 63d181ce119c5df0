// Package fonts carries the metrics of the single built-in font. The core
// embeds no font programs; Helvetica is one of the standard fonts every
// reader supplies, so only its advance widths are needed for layout.
package fonts

// helveticaWidths holds the advance width, in 1/1000 em units, of each
// printable ASCII character, indexed by code point minus 32.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, // space ! " # $ % & '
	333, 333, 389, 584, 278, 333, 278, 278, // ( ) * + , - . /
	556, 556, 556, 556, 556, 556, 556, 556, // 0 1 2 3 4 5 6 7
	556, 556, 278, 278, 584, 584, 584, 556, // 8 9 : ; < = > ?
	1015, 667, 667, 722, 722, 667, 611, 778, // @ A B C D E F G
	722, 278, 500, 667, 556, 833, 722, 778, // H I J K L M N O
	667, 778, 722, 667, 611, 722, 667, 944, // P Q R S T U V W
	667, 667, 611, 278, 278, 278, 469, 556, // X Y Z [ \ ] ^ _
	333, 556, 556, 500, 556, 556, 278, 556, // ` a b c d e f g
	556, 222, 222, 500, 222, 833, 556, 556, // h i j k l m n o
	556, 556, 333, 500, 278, 556, 500, 722, // p q r s t u v w
	500, 500, 500, 334, 260, 334, 584, // x y z { | } ~
}

// fallbackWidth stands in for any character outside printable ASCII.
const fallbackWidth = 500

// Width returns the advance width of a single character in 1/1000 em units.
func Width(r rune) int {
	if r < 32 || r > 126 {
		return fallbackWidth
	}
	return helveticaWidths[r-32]
}

// Measure returns the advance width of text rendered at the given size.
// It is a pure sum of per-glyph advances: Measure(s, z) == Measure(s, 1)*z.
func Measure(text string, size float64) float64 {
	total := 0
	for _, r := range text {
		total += Width(r)
	}
	return float64(total) * size / 1000
}
