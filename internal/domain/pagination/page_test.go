package pagination

import (
	"errors"
	"testing"
)

func TestNewPage_Validation(t *testing.T) {
	if _, err := NewPage(0, 24); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := NewPage(1, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := NewPage(3, 24); err != nil {
		t.Fatalf("valid page rejected: %v", err)
	}
}

func TestPage_CeilingPageCount(t *testing.T) {
	page, err := NewPage(1, 24)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	// 50 items at 24 per page need 3 pages.
	if got := page.PageCount(50); got != 3 {
		t.Fatalf("page count for total=50 limit=24: got %d, want 3", got)
	}
	if got := page.PageCount(48); got != 2 {
		t.Fatalf("page count for total=48 limit=24: got %d, want 2", got)
	}
	if got := page.PageCount(0); got != 0 {
		t.Fatalf("page count for total=0: got %d, want 0", got)
	}
}

func TestPage_OffsetAndTotals(t *testing.T) {
	page, err := NewPage(3, 24)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	if got := page.Offset(); got != 48 {
		t.Fatalf("offset: got %d, want 48", got)
	}

	totals := page.TotalsFor(100)
	if totals.PageCount != 5 || totals.TotalCount != 100 || totals.Offset != 48 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestSlice_BoundsItems(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	page, err := NewPage(1, 24)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	got, total := Slice(items, page)
	if total != 50 {
		t.Fatalf("total: got %d, want 50", total)
	}
	if len(got) > 24 {
		t.Fatalf("page 1 length: got %d, want at most 24", len(got))
	}

	lastPage, err := NewPage(3, 24)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	got, _ = Slice(items, lastPage)
	if len(got) != 2 || got[0] != 48 {
		t.Fatalf("last page: got len=%d first=%v", len(got), got)
	}

	beyond, err := NewPage(4, 24)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	got, _ = Slice(items, beyond)
	if len(got) != 0 {
		t.Fatalf("page beyond range should be empty, got %d items", len(got))
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		width   int
		want    []int
	}{
		{"centered", 5, 10, 5, []int{3, 4, 5, 6, 7}},
		{"clamped at start", 1, 10, 5, []int{1, 2, 3, 4, 5}},
		{"clamped at end", 10, 10, 5, []int{6, 7, 8, 9, 10}},
		{"width exceeds total", 2, 3, 7, []int{1, 2, 3}},
		{"current beyond total", 99, 4, 3, []int{2, 3, 4}},
	}

	for _, tt := range tests {
		got := Window(tt.current, tt.total, tt.width)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s: got %v, want %v", tt.name, got, tt.want)
			}
		}
	}
}
