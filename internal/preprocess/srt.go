package preprocess

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Cue is one block of a subtitle-cue file. Start and End are seconds.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

var cueTimeLine = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})`)

// ParseSRT reads cue blocks from r: a sequence line, a time line, then text
// lines up to a blank line. Surplus blank lines between blocks are skipped.
func ParseSRT(r io.Reader) ([]Cue, error) {
	br := bufio.NewReader(r)
	var cues []Cue

	for {
		seqLine, eof, err := readTrimmedLine(br)
		if err != nil {
			return nil, err
		}
		if eof && seqLine == "" {
			break
		}
		if seqLine == "" {
			continue
		}

		index, err := strconv.Atoi(seqLine)
		if err != nil {
			return nil, fmt.Errorf("srt format error: invalid sequence line %q", seqLine)
		}

		timeLine, _, err := readTrimmedLine(br)
		if err != nil {
			return nil, err
		}
		m := cueTimeLine.FindStringSubmatch(timeLine)
		if m == nil {
			return nil, fmt.Errorf("srt format error: invalid time line %q", timeLine)
		}
		start, err := SRTTimeToSeconds(m[1])
		if err != nil {
			return nil, fmt.Errorf("srt format error: %w", err)
		}
		end, err := SRTTimeToSeconds(m[2])
		if err != nil {
			return nil, fmt.Errorf("srt format error: %w", err)
		}

		var texts []string
		for {
			line, e, err := readTrimmedLine(br)
			if err != nil {
				return nil, err
			}
			if line != "" {
				texts = append(texts, line)
			}
			if line == "" || e {
				break
			}
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(texts, "\n"),
		})
	}
	return cues, nil
}

// LoadSRTFile reads and parses a subtitle-cue file, stripping a leading
// UTF-8 byte-order mark and falling back through legacy encodings.
func LoadSRTFile(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	return ParseSRT(strings.NewReader(decodeText(data)))
}

// readTrimmedLine reads one line, normalizing CRLF and trimming the end.
// eof reports true only when the underlying reader is exhausted and the
// final line carried no content.
func readTrimmedLine(br *bufio.Reader) (line string, eof bool, err error) {
	s, err := br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		eof = true
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return strings.TrimSpace(s), eof && s == "", nil
}
