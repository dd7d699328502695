package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	vttTimestampRegex = regexp.MustCompile(
		`(\d{2,}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttShortTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttTagRegex = regexp.MustCompile(`</?(?:c|v|lang|ruby|rt)(?:[.\s][^>]*)?>|<\d{2}:[\d:.]+>`)
)

func parseVTT(r io.Reader) ([]cue, error) {
	var cues []cue
	scanner := bufio.NewScanner(r)

	var current *cue
	var textLines []string
	lineNum := 0
	headerParsed := false

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
	}

	// skips the rest of a NOTE/STYLE/REGION block
	skipBlock := func() {
		for scanner.Scan() {
			lineNum++
			if strings.TrimSpace(scanner.Text()) == "" {
				break
			}
		}
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		if !headerParsed && strings.HasPrefix(trimmed, "WEBVTT") {
			headerParsed = true
			skipBlock()
			continue
		}

		if current == nil &&
			(strings.HasPrefix(trimmed, "NOTE") ||
				strings.HasPrefix(trimmed, "STYLE") ||
				strings.HasPrefix(trimmed, "REGION")) {
			skipBlock()
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		var hh, mm, ss, ms [2]string
		if m := vttTimestampRegex.FindStringSubmatch(line); len(m) == 9 {
			hh = [2]string{m[1], m[5]}
			mm = [2]string{m[2], m[6]}
			ss = [2]string{m[3], m[7]}
			ms = [2]string{m[4], m[8]}
		} else if m := vttShortTimestampRegex.FindStringSubmatch(line); len(m) == 7 {
			hh = [2]string{"00", "00"}
			mm = [2]string{m[1], m[4]}
			ss = [2]string{m[2], m[5]}
			ms = [2]string{m[3], m[6]}
		} else {
			if current != nil {
				textLines = append(textLines, vttTagRegex.ReplaceAllString(line, ""))
			}
			// a line before the timing line is the cue identifier
			continue
		}

		if current != nil && len(textLines) > 0 {
			flush()
		}

		start, err := parseClock(hh[0], mm[0], ss[0], ms[0])
		if err != nil {
			return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
		}
		end, err := parseClock(hh[1], mm[1], ss[1], ms[1])
		if err != nil {
			return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
		}

		current = &cue{
			Index:     len(cues) + 1,
			StartTime: start,
			EndTime:   end,
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}

	return cues, nil
}
