package adminquery

import (
	"strings"
	"testing"
)

func TestBuildColumns(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"star passes through", "*", "*"},
		{"empty falls back to star", "", "*"},
		{"simple list quoted", "user_id,username", `"user_id", "username"`},
		{"injection stripped", "user_id; DROP TABLE users--,username", `"user_idDROPTABLEusers", "username"`},
		{"only garbage falls back to star", ";-- , ()", "*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildColumns(tt.raw); got != tt.want {
				t.Fatalf("BuildColumns(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildFilter(t *testing.T) {
	where, args := BuildFilter("username:neo|status:act")
	if len(args) != 2 || args[0] != "%neo%" || args[1] != "%act%" {
		t.Fatalf("unexpected args: %v", args)
	}
	if !strings.Contains(where, `"username"::text ILIKE $1`) ||
		!strings.Contains(where, `"status"::text ILIKE $2`) ||
		!strings.Contains(where, " AND ") {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if !strings.HasPrefix(where, " WHERE ") {
		t.Fatalf("where clause must start with WHERE: %q", where)
	}
}

func TestBuildFilterSkipsMalformedPairs(t *testing.T) {
	where, args := BuildFilter("nocolon|:noname|empty:|too:many:colons|username:neo")
	if len(args) != 1 || args[0] != "%neo%" {
		t.Fatalf("expected one bound arg, got %v", args)
	}
	if strings.Count(where, "ILIKE") != 1 {
		t.Fatalf("expected single condition, got %q", where)
	}
}

func TestBuildFilterEmpty(t *testing.T) {
	where, args := BuildFilter("")
	if where != "" || args != nil {
		t.Fatalf("expected empty filter, got %q %v", where, args)
	}
}

func TestBuildFilterValueIsBoundNotInlined(t *testing.T) {
	where, args := BuildFilter("username:'; DROP TABLE users--")
	if strings.Contains(where, "DROP TABLE") {
		t.Fatalf("filter value leaked into SQL: %q", where)
	}
	if len(args) != 1 || !strings.Contains(args[0].(string), "DROP TABLE") {
		t.Fatalf("expected value bound as parameter, got %v", args)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name                            string
		page, perPage, total            int
		wantPage, wantPages, wantOffset int
	}{
		{"first page", 1, 10, 25, 1, 3, 0},
		{"middle page", 2, 10, 25, 2, 3, 10},
		{"beyond total clamps to last", 99, 10, 25, 3, 3, 20},
		{"zero page clamps to first", 0, 10, 25, 1, 3, 0},
		{"negative page clamps to first", -3, 10, 25, 1, 3, 0},
		{"empty table still one page", 1, 10, 0, 1, 1, 0},
		{"exact division", 2, 5, 10, 2, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pages, offset := ClampPage(tt.page, tt.perPage, tt.total)
			if page != tt.wantPage || pages != tt.wantPages || offset != tt.wantOffset {
				t.Fatalf("ClampPage(%d,%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
					tt.page, tt.perPage, tt.total, page, pages, offset,
					tt.wantPage, tt.wantPages, tt.wantOffset)
			}
		})
	}
}

// Смещение всегда кратно размеру страницы и не выходит за totalItems
// (кроме пустой таблицы, где страница одна).
func TestClampPageOffsetInvariant(t *testing.T) {
	for page := -2; page <= 12; page++ {
		for _, perPage := range []int{1, 7, 10, 100} {
			for _, total := range []int{0, 1, 9, 10, 11, 95} {
				clamped, _, offset := ClampPage(page, perPage, total)
				if offset != (clamped-1)*perPage {
					t.Fatalf("offset %d != (page %d - 1) * perPage %d", offset, clamped, perPage)
				}
				if total > 0 && offset >= total {
					t.Fatalf("offset %d beyond total %d (page=%d perPage=%d)", offset, total, page, perPage)
				}
			}
		}
	}
}
