package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-recall-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []models.Item {
	t0 := time.Unix(1_700_000_000, 0)
	return []models.Item{
		{
			ID:          "id-a",
			Title:       "Channels",
			Content:     "unbuffered channels block\nuntil both sides are ready",
			Tags:        []string{"go", "concurrency"},
			Interval:    6,
			EaseFactor:  2.51,
			LastReview:  t0,
			NextReview:  t0.Add(6 * models.Day),
			Lapses:      2,
			ReviewCount: 4,
			Streak:      1,
			History: []models.ReviewEntry{
				{At: t0.Add(-3 * models.Day), Quality: models.Good, IntervalAfter: 3},
				{At: t0, Quality: models.Easy, IntervalAfter: 6},
			},
		},
		{
			ID:         "id-b",
			Title:      `C:\path with \n literal`,
			Interval:   1,
			EaseFactor: 1.3,
			LastReview: t0,
			NextReview: t0.Add(models.Day),
			Lapses:     8,
			IsLeech:    true,
		},
		{
			ID:         "id-c",
			Title:      "",
			Content:    "---",
			Interval:   1,
			EaseFactor: 2.5,
			LastReview: t0,
			NextReview: t0.Add(models.Day),
		},
	}
}

func TestLedgerCodec_RoundTrip(t *testing.T) {
	src := newTestLedger()
	for _, it := range sampleItems() {
		_, err := src.Add(it)
		require.NoError(t, err)
	}

	data, err := src.MarshalBinary()
	require.NoError(t, err)

	dst := newTestLedger()
	require.NoError(t, dst.UnmarshalBinary(data))
	assert.Equal(t, src.All(), dst.All())
}

func TestLedgerCodec_RoundTripTagsWithLineBreaks(t *testing.T) {
	src := newTestLedger()
	_, err := src.Add(src.NewItem("good", "c", []string{"go"}))
	require.NoError(t, err)
	id, err := src.Add(src.NewItem("bad", "c", []string{"a\nb"}))
	require.NoError(t, err)
	raw := models.Item{ID: "raw", Title: "raw", Tags: []string{"x\r\ny"}, EaseFactor: 2.5}
	raw.ScheduleNext(1, testNow)
	_, err = src.Add(raw)
	require.NoError(t, err)
	require.NoError(t, src.Update(id, "bad", "c", []string{"p\rq"}))

	data, err := src.MarshalBinary()
	require.NoError(t, err)

	dst := newTestLedger()
	require.NoError(t, dst.UnmarshalBinary(data))
	assert.Equal(t, src.All(), dst.All())

	got, _ := dst.Get(id)
	assert.Equal(t, []string{"p", "q"}, got.Tags)
	loaded, _ := dst.Get("raw")
	assert.Equal(t, []string{"x", "y"}, loaded.Tags)
}

func TestLedgerCodec_Layout(t *testing.T) {
	l := newTestLedger()
	t0 := time.Unix(100, 0)
	_, err := l.Add(models.Item{
		ID: "x", Title: "T", Content: "C", Tags: []string{"a", "b"},
		Interval: 2, EaseFactor: 2.5, LastReview: t0, NextReview: t0.Add(2 * models.Day),
		History: []models.ReviewEntry{{At: t0, Quality: models.Hard, IntervalAfter: 2}},
	})
	require.NoError(t, err)

	data, err := l.MarshalBinary()
	require.NoError(t, err)

	want := "T\nC\na,b\n2\n2.5\n100\n172900\n1\n100 1 2\n" +
		"@ id=x lapses=0 leech=0 reviews=0 streak=0\n---\n"
	assert.Equal(t, want, string(data))
}

// TestLedgerCodec_LoadsPlainRecords verifies that records without the
// extension line load with generated IDs and zero counters.
func TestLedgerCodec_LoadsPlainRecords(t *testing.T) {
	data := "T\nC\ngo\n3\n2.6\n100\n359200\n0\n---\n" +
		"U\n\n\n1\n2.5\n100\n86500\n0\n---\n"

	l := newTestLedger()
	require.NoError(t, l.UnmarshalBinary([]byte(data)))

	items := l.All()
	require.Len(t, items, 2)
	assert.Equal(t, "id-1", items[0].ID)
	assert.Equal(t, "id-2", items[1].ID)
	assert.Equal(t, []string{"go"}, items[0].Tags)
	assert.Nil(t, items[1].Tags)
	assert.Zero(t, items[0].Lapses)
}

func TestLedgerCodec_Empty(t *testing.T) {
	l := newTestLedger()
	_, err := l.Add(models.Item{Title: "stale"})
	require.NoError(t, err)

	require.NoError(t, l.UnmarshalBinary(nil))
	assert.Zero(t, l.Len())
}

func TestLedgerCodec_ClampsEase(t *testing.T) {
	data := "T\n\n\n1\n9.5\n100\n86500\n0\n---\n"
	l := newTestLedger()
	require.NoError(t, l.UnmarshalBinary([]byte(data)))
	assert.Equal(t, models.EaseMax, l.All()[0].EaseFactor)
}

func TestLedgerCodec_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "truncated", data: "T\nC\n", want: ErrTruncatedRecord},
		{name: "bad interval", data: "T\nC\n\nx\n2.5\n1\n2\n0\n---\n", want: ErrBadField},
		{name: "zero interval", data: "T\nC\n\n0\n2.5\n1\n2\n0\n---\n", want: ErrBadField},
		{name: "bad ease", data: "T\nC\n\n1\nNaN\n1\n2\n0\n---\n", want: ErrBadField},
		{name: "bad timestamp", data: "T\nC\n\n1\n2.5\nyesterday\n2\n0\n---\n", want: ErrBadField},
		{name: "bad count", data: "T\nC\n\n1\n2.5\n1\n2\n-1\n---\n", want: ErrBadField},
		{name: "history missing fields", data: "T\nC\n\n1\n2.5\n1\n2\n1\n1 2\n---\n", want: ErrBadHistory},
		{name: "history bad quality", data: "T\nC\n\n1\n2.5\n1\n2\n1\n1 7 2\n---\n", want: ErrBadHistory},
		{name: "history truncated", data: "T\nC\n\n1\n2.5\n1\n2\n2\n1 2 2\n", want: ErrTruncatedRecord},
		{name: "no separator", data: "T\nC\n\n1\n2.5\n1\n2\n0\nnext\n", want: ErrMissingSeparator},
		{name: "bad extension", data: "T\nC\n\n1\n2.5\n1\n2\n0\n@ lapses=x\n---\n", want: ErrBadField},
		{name: "duplicate id", data: strings.Repeat("T\nC\n\n1\n2.5\n1\n2\n0\n@ id=a\n---\n", 2), want: ErrData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			_, err := l.Add(models.Item{Title: "kept"})
			require.NoError(t, err)

			err = l.UnmarshalBinary([]byte(tt.data))
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrData)
			assert.Equal(t, 1, l.Len(), "failed load must not replace contents")
		})
	}
}
