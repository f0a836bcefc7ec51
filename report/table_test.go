package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/vgXhc/madison-accessibility/aggregate"
)

func sampleRows() []aggregate.ComparisonRow {
	after := aggregate.Pair{
		Key:           aggregate.PairKey{FromID: "capitol", ToID: "airport"},
		MeanTotalTime: 15.4,
		MeanWalkTime:  6.2,
	}
	return []aggregate.ComparisonRow{
		{
			Key:               after.Key,
			OriginDestination: "capitol to airport",
			Before: aggregate.Pair{
				Key:           after.Key,
				MeanTotalTime: 20.0,
				MeanWalkTime:  5.0,
			},
			After:       &after,
			ChangeTotal: aggregate.Ratio{Value: -0.23, Defined: true},
			ChangeWalk:  aggregate.Ratio{Value: 0.24, Defined: true},
		},
		{
			Key:               aggregate.PairKey{FromID: "capitol", ToID: "zoo"},
			OriginDestination: "capitol to zoo",
			Before: aggregate.Pair{
				Key:           aggregate.PairKey{FromID: "capitol", ToID: "zoo"},
				MeanTotalTime: 33.6,
				MeanWalkTime:  8.0,
			},
			// infeasible after the redesign
		},
	}
}

func TestWriteTable(t *testing.T) {
	var b strings.Builder
	if err := WriteTable(&b, "Travel times", sampleRows()); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	html := b.String()

	// one-decimal percentages
	for _, want := range []string{"-23.0%", "24.0%"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	// whole-minute times, rounded
	for _, want := range []string{"<td>20</td>", "<td>15</td>", "<td>34</td>"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	// infeasible after-cells render the marker, never zero
	if !strings.Contains(html, Infeasible) {
		t.Error("expected infeasible marker for missing after values")
	}
	if strings.Count(html, "<td>0</td>") != 0 {
		t.Error("missing after values must not render as zero")
	}
	for _, col := range []string{"From", "To", "Total time before", "Total time after", "Change total time (%)", "Walk time before", "Walk time after", "Change walk time (%)"} {
		if !strings.Contains(html, col) {
			t.Errorf("expected column header %q", col)
		}
	}
}

func TestWriteTable_Empty(t *testing.T) {
	var b strings.Builder
	if err := WriteTable(&b, "Travel times", nil); err != nil {
		t.Fatalf("WriteTable failed on empty rows: %v", err)
	}
	if !strings.Contains(b.String(), "<tbody>") {
		t.Error("expected a table skeleton even without rows")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestWriteTable_RenderError(t *testing.T) {
	err := WriteTable(failingWriter{}, "Travel times", sampleRows())
	if err == nil {
		t.Fatal("expected error from failing writer")
	}
	if _, ok := err.(*RenderError); !ok {
		t.Errorf("expected RenderError, got %T", err)
	}
}
