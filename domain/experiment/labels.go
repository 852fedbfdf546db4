package experiment

import "fmt"

var alphabet = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// Label offsets per hypothesis
const (
	OffsetFraming = "X"
	OffsetRegion  = "A"
	OffsetPriming = "P"
)

// Label returns "Country <letter>" for position i of a group whose first
// row gets the letter offset.
func Label(offset string, i int) (string, error) {
	start := -1
	for idx, letter := range alphabet {
		if letter == offset {
			start = idx
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("label offset %q is not a letter A-Z", offset)
	}
	if i < 0 || start+i >= len(alphabet) {
		return "", fmt.Errorf("no label for position %d from offset %s: only %d letters remain", i, offset, len(alphabet)-start)
	}
	return "Country " + alphabet[start+i], nil
}

// Labels returns the labels for a group of n rows
func Labels(offset string, n int) ([]string, error) {
	out := make([]string, n)
	for i := range out {
		l, err := Label(offset, i)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}
