package text

import "fmt"

type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "normal"
}

type Slant int

const (
	SlantRoman Slant = iota
	SlantItalic
)

func (s Slant) String() string {
	if s == SlantItalic {
		return "italic"
	}
	return "roman"
}

// Style is the resolved text style a word is laid out and painted with.
// It is a comparable value and keys the face cache.
type Style struct {
	Size   int // pixels
	Weight Weight
	Slant  Slant
}

func (s Style) String() string {
	return fmt.Sprintf("%dpx %s %s", s.Size, s.Weight, s.Slant)
}

// SplitWords splits text on ASCII whitespace. Other Unicode spaces such as
// U+00A0 stay inside words.
func SplitWords(text string) []string {
	words := make([]string, 0)
	start := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r', '\f':
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}
