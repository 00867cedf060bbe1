package ledger

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-recall-keeper/models"
)

// Plaintext record layout, one field per line:
//
//	title
//	content
//	comma,separated,tags
//	interval
//	ease_factor
//	last_review        (unix seconds)
//	next_review        (unix seconds)
//	history_count
//	<timestamp> <quality> <interval_after>   x history_count
//	@ id=<id> lapses=<n> leech=<0|1> reviews=<n> streak=<n>   (optional)
//	---
//
// Title and content escape '\', CR and LF. Records without the "@" line
// load with a fresh ID and zero counters.
const (
	recordSeparator = "---"
	extensionPrefix = "@ "
)

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")
)

// MarshalBinary implements encoding.BinaryMarshaler.
func (l *Ledger) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	for _, id := range l.order {
		writeItem(&buf, l.items[id])
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the
// ledger contents only when the whole input parses; any malformed record
// fails the load with an error wrapping ErrData.
func (l *Ledger) UnmarshalBinary(data []byte) error {
	items, err := l.decode(data)
	if err != nil {
		return err
	}
	if err := l.reset(items); err != nil {
		return fmt.Errorf("%w: %v", ErrData, err)
	}
	return nil
}

func writeItem(buf *bytes.Buffer, it *models.Item) {
	buf.WriteString(escaper.Replace(it.Title))
	buf.WriteByte('\n')
	buf.WriteString(escaper.Replace(it.Content))
	buf.WriteByte('\n')
	buf.WriteString(strings.Join(it.Tags, ","))
	buf.WriteByte('\n')
	fmt.Fprintf(buf, "%d\n", it.Interval)
	buf.WriteString(strconv.FormatFloat(it.EaseFactor, 'g', -1, 64))
	buf.WriteByte('\n')
	fmt.Fprintf(buf, "%d\n%d\n", it.LastReview.Unix(), it.NextReview.Unix())
	fmt.Fprintf(buf, "%d\n", len(it.History))
	for _, h := range it.History {
		fmt.Fprintf(buf, "%d %d %d\n", h.At.Unix(), int(h.Quality), h.IntervalAfter)
	}
	leech := 0
	if it.IsLeech {
		leech = 1
	}
	fmt.Fprintf(buf, "%sid=%s lapses=%d leech=%d reviews=%d streak=%d\n",
		extensionPrefix, it.ID, it.Lapses, leech, it.ReviewCount, it.Streak)
	buf.WriteString(recordSeparator)
	buf.WriteByte('\n')
}

// lineReader walks the plaintext one line at a time.
type lineReader struct {
	lines []string
	pos   int
}

func (r *lineReader) next() (string, bool) {
	if r.pos >= len(r.lines) {
		return "", false
	}
	line := strings.TrimSuffix(r.lines[r.pos], "\r")
	r.pos++
	return line, true
}

func (r *lineReader) peek() (string, bool) {
	if r.pos >= len(r.lines) {
		return "", false
	}
	return strings.TrimSuffix(r.lines[r.pos], "\r"), true
}

func (r *lineReader) done() bool {
	return r.pos >= len(r.lines)
}

func (l *Ledger) decode(data []byte) ([]models.Item, error) {
	text := string(data)
	if text == "" {
		return nil, nil
	}
	r := &lineReader{lines: strings.Split(strings.TrimSuffix(text, "\n"), "\n")}

	var items []models.Item
	for record := 1; !r.done(); record++ {
		item, err := l.decodeItem(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", record, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (l *Ledger) decodeItem(r *lineReader) (models.Item, error) {
	var fields [8]string
	for i := range fields {
		line, ok := r.next()
		if !ok {
			return models.Item{}, ErrTruncatedRecord
		}
		fields[i] = line
	}

	item := models.Item{
		Title:   unescaper.Replace(fields[0]),
		Content: unescaper.Replace(fields[1]),
		Tags:    NormalizeTags([]string{fields[2]}),
	}

	var err error
	if item.Interval, err = strconv.Atoi(fields[3]); err != nil || item.Interval < 1 {
		return models.Item{}, fmt.Errorf("%w: interval %q", ErrBadField, fields[3])
	}
	if item.EaseFactor, err = strconv.ParseFloat(fields[4], 64); err != nil || math.IsNaN(item.EaseFactor) {
		return models.Item{}, fmt.Errorf("%w: ease factor %q", ErrBadField, fields[4])
	}
	item.EaseFactor = clamp(item.EaseFactor, models.EaseMin, models.EaseMax)
	if item.LastReview, err = parseUnix(fields[5]); err != nil {
		return models.Item{}, err
	}
	if item.NextReview, err = parseUnix(fields[6]); err != nil {
		return models.Item{}, err
	}

	count, err := strconv.Atoi(fields[7])
	if err != nil || count < 0 {
		return models.Item{}, fmt.Errorf("%w: history count %q", ErrBadField, fields[7])
	}
	for i := 0; i < count; i++ {
		line, ok := r.next()
		if !ok {
			return models.Item{}, ErrTruncatedRecord
		}
		entry, err := parseHistory(line)
		if err != nil {
			return models.Item{}, err
		}
		item.History = append(item.History, entry)
	}

	if line, ok := r.peek(); ok && strings.HasPrefix(line, extensionPrefix) {
		r.next()
		if err := parseExtension(&item, strings.TrimPrefix(line, extensionPrefix)); err != nil {
			return models.Item{}, err
		}
	}
	if item.ID == "" {
		item.ID = l.ids.Generate()
	}

	line, ok := r.next()
	if !ok {
		return models.Item{}, ErrTruncatedRecord
	}
	if line != recordSeparator {
		return models.Item{}, fmt.Errorf("%w: got %q", ErrMissingSeparator, line)
	}

	return item, nil
}

func parseUnix(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrBadField, s)
	}
	return time.Unix(sec, 0), nil
}

func parseHistory(line string) (models.ReviewEntry, error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return models.ReviewEntry{}, fmt.Errorf("%w: %q", ErrBadHistory, line)
	}

	at, err := parseUnix(parts[0])
	if err != nil {
		return models.ReviewEntry{}, fmt.Errorf("%w: %q", ErrBadHistory, line)
	}
	q, err := strconv.Atoi(parts[1])
	if err != nil || !models.Quality(q).IsValid() {
		return models.ReviewEntry{}, fmt.Errorf("%w: quality in %q", ErrBadHistory, line)
	}
	ivl, err := strconv.Atoi(parts[2])
	if err != nil || ivl < 1 {
		return models.ReviewEntry{}, fmt.Errorf("%w: interval in %q", ErrBadHistory, line)
	}

	return models.ReviewEntry{At: at, Quality: models.Quality(q), IntervalAfter: ivl}, nil
}

func parseExtension(item *models.Item, line string) error {
	for _, kv := range strings.Fields(line) {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("%w: extension %q", ErrBadField, kv)
		}

		if key == "id" {
			item.ID = value
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: extension %q", ErrBadField, kv)
		}
		switch key {
		case "lapses":
			item.Lapses = n
		case "leech":
			item.IsLeech = n != 0
		case "reviews":
			item.ReviewCount = n
		case "streak":
			item.Streak = n
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
