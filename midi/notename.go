package midi

import (
	"fmt"
	"strconv"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName renders a note number like C4 or A#3 (C4 = 60).
func NoteName(n uint8) string {
	if n > 127 {
		return strconv.Itoa(int(n))
	}
	return fmt.Sprintf("%s%d", noteNames[n%12], int(n)/12-1)
}
