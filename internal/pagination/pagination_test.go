package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		wantPage int
		wantSize int
	}{
		{"zero values", PageRequest{}, 1, DefaultPageSize},
		{"keeps explicit values", PageRequest{Page: 3, PageSize: 10}, 3, 10},
		{"caps page size", PageRequest{Page: 1, PageSize: 500}, 1, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantSize {
				t.Errorf("expected %d/%d, got %d/%d", tt.wantPage, tt.wantSize, req.Page, req.PageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 20}
	if got := req.Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("computes total pages", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, 1, 2, 5)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
	})

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		resp := NewPageResponse[int](nil, 1, 20, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty slice, got %v", resp.Data)
		}
		if resp.TotalPages != 0 {
			t.Errorf("expected 0 pages, got %d", resp.TotalPages)
		}
	})
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("middle page", func(t *testing.T) {
		resp := Slice(items, PageRequest{Page: 2, PageSize: 2})
		if len(resp.Data) != 2 || resp.Data[0] != 3 || resp.Data[1] != 4 {
			t.Errorf("expected [3 4], got %v", resp.Data)
		}
		if resp.TotalItems != 5 || resp.TotalPages != 3 {
			t.Errorf("expected 5 items / 3 pages, got %d / %d", resp.TotalItems, resp.TotalPages)
		}
	})

	t.Run("past the end", func(t *testing.T) {
		resp := Slice(items, PageRequest{Page: 9, PageSize: 2})
		if len(resp.Data) != 0 {
			t.Errorf("expected empty page, got %v", resp.Data)
		}
	})

	t.Run("does not alias input", func(t *testing.T) {
		resp := Slice(items, PageRequest{})
		resp.Data[0] = 99
		if items[0] != 1 {
			t.Error("input slice was modified")
		}
	})
}
