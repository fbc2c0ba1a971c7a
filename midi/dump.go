package midi

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Dump writes a human-readable event listing for one parsed file, one line
// per event with absolute ticks. Note-ons keep their raw velocity here, even
// zero, so the listing shows exactly what is in the file rather than what
// the extractor made of it.
func Dump(s *smf.SMF, name string, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "FILE: %v\n", name)
	fmt.Fprintf(bw, "format = %v, timeformat = %v\n", s.Format(), s.TimeFormat)
	fmt.Fprintf(bw, "tracks = %v\n\n", len(s.Tracks))

	for i, track := range s.Tracks {
		fmt.Fprintf(bw, "=== Track %v ===\n", i)
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				fmt.Fprintf(bw, "  t=%6d  note_on  ch=%d note=%d(%s) vel=%d\n",
					absTicks, channel, key, NoteName(key), velocity)
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				fmt.Fprintf(bw, "  t=%6d  note_off ch=%d note=%d(%s) vel=%d\n",
					absTicks, channel, key, NoteName(key), velocity)
			default:
				fmt.Fprintf(bw, "  t=%6d  %s\n", absTicks, event.Message.String())
			}
		}
		fmt.Fprintln(bw)
	}
	return errors.Wrapf(bw.Flush(), "writing dump for %v", name)
}
