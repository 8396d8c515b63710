package pagination

import "testing"

func TestDescriptorDefaults(t *testing.T) {
	d := (&Params{}).Descriptor()
	if d.Page != 1 {
		t.Fatalf("page = %d, want 1", d.Page)
	}
	if d.PerPage != DefaultPerPage {
		t.Fatalf("per_page = %d, want %d", d.PerPage, DefaultPerPage)
	}
	if d.Sort != "" || d.Filter != "" {
		t.Fatalf("expected empty sort and filter, got %q / %q", d.Sort, d.Filter)
	}
}

func TestDescriptorClamping(t *testing.T) {
	cases := []struct {
		name          string
		page, perPage int
		wantPage      int
		wantPerPage   int
	}{
		{"negative page", -3, 50, 1, 50},
		{"zero per_page", 2, 0, 2, DefaultPerPage},
		{"over cap", 1, 5000, 1, MaxPerPage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := (&Params{Page: tc.page, PerPage: tc.perPage}).Descriptor()
			if d.Page != tc.wantPage || d.PerPage != tc.wantPerPage {
				t.Fatalf("got page=%d per_page=%d, want %d/%d", d.Page, d.PerPage, tc.wantPage, tc.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := &Params{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Fatalf("offset = %d, want 40", got)
	}
}

func TestSortPassthrough(t *testing.T) {
	d := (&Params{Sort: "-issue_date"}).Descriptor()
	if d.Sort != "-issue_date" {
		t.Fatalf("sort = %q, want -issue_date untouched", d.Sort)
	}
}

func TestFilterConjunction(t *testing.T) {
	p := &Params{Filters: []Filter{
		{Field: "status", Op: OpEquals, Value: "paid"},
		{Field: "issue_date", Op: OpGTE, Value: "2026-01-01"},
	}}
	d := p.Descriptor()
	want := "status = 'paid' && issue_date >= '2026-01-01'"
	if d.Filter != want {
		t.Fatalf("filter = %q, want %q", d.Filter, want)
	}
}

func TestFilterEscaping(t *testing.T) {
	p := &Params{Filters: []Filter{
		{Field: "name", Op: OpEquals, Value: "O'Brien' && status = 'paid"},
	}}
	d := p.Descriptor()
	want := "name = 'O''Brien'' && status = ''paid'"
	if d.Filter != want {
		t.Fatalf("filter = %q, want %q", d.Filter, want)
	}

	// Control characters are stripped, hostile field names reduced to
	// their legal identifier characters.
	p = &Params{Filters: []Filter{
		{Field: "na me; DROP", Op: Operator("!="), Value: "a\x00b\nc"},
	}}
	d = p.Descriptor()
	want = "nameDROP = 'abc'"
	if d.Filter != want {
		t.Fatalf("filter = %q, want %q", d.Filter, want)
	}
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sort string
		want string
		ok   bool
	}{
		{"issue_date", "issue_date ASC", true},
		{"-issue_date", "issue_date DESC", true},
		{"-total", "total DESC", true},
		{"", "", false},
		{"evil; DROP TABLE", "", false},
		{"-unknown", "", false},
	}
	for _, tc := range cases {
		got, ok := OrderClause(tc.sort, "issue_date", "total", "number")
		if got != tc.want || ok != tc.ok {
			t.Fatalf("OrderClause(%q) = %q/%v, want %q/%v", tc.sort, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 20, 45)
	if pag.TotalPages != 3 || !pag.HasNext || !pag.HasPrev {
		t.Fatalf("unexpected pagination: %+v", pag)
	}
}
