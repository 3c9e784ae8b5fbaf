package whatsapp

import (
	"strings"
	"testing"
)

func TestNewListClampsOversizedFields(t *testing.T) {
	long := strings.Repeat("x", 2000)
	list := NewList(long, long, long, []ListSection{{
		Title: long,
		Rows:  []ListRow{{ID: long, Title: long, Description: long}},
	}})
	if list == nil {
		t.Fatal("clamping must not discard a list with valid rows")
	}

	if n := len([]rune(list.Header.Text)); n != maxHeaderLen {
		t.Fatalf("header length = %d, want %d", n, maxHeaderLen)
	}
	if n := len([]rune(list.Body.Text)); n != maxBodyLen {
		t.Fatalf("body length = %d, want %d", n, maxBodyLen)
	}
	if n := len([]rune(list.Action.Button)); n != maxButtonLen {
		t.Fatalf("button length = %d, want %d", n, maxButtonLen)
	}

	sec := list.Action.Sections[0]
	if n := len([]rune(sec.Title)); n != maxSectionTitle {
		t.Fatalf("section title length = %d, want %d", n, maxSectionTitle)
	}
	row := sec.Rows[0]
	if len(row.ID) != maxRowID || len([]rune(row.Title)) != maxRowTitle || len([]rune(row.Description)) != maxRowDesc {
		t.Fatalf("row not clamped: id=%d title=%d desc=%d", len(row.ID), len([]rune(row.Title)), len([]rune(row.Description)))
	}
}

func TestNewListDropsExcessSectionsAndRows(t *testing.T) {
	rows := make([]ListRow, 15)
	for i := range rows {
		rows[i] = ListRow{ID: "id", Title: "title"}
	}
	sections := make([]ListSection, 12)
	for i := range sections {
		sections[i] = ListSection{Title: "s", Rows: rows}
	}

	list := NewList("h", "b", "go", sections)
	if len(list.Action.Sections) != maxSections {
		t.Fatalf("sections = %d, want %d", len(list.Action.Sections), maxSections)
	}
	for _, sec := range list.Action.Sections {
		if len(sec.Rows) != maxRows {
			t.Fatalf("rows = %d, want %d", len(sec.Rows), maxRows)
		}
	}
}

func TestNewListWithNoValidRowsIsNil(t *testing.T) {
	list := NewList("h", "b", "go", []ListSection{{
		Title: "s",
		Rows:  []ListRow{{ID: "", Title: "no id"}, {ID: "no-title", Title: ""}},
	}})
	if list != nil {
		t.Fatal("a list with no sendable rows must clamp to nil")
	}
}

func TestFallbackTextNumbersRows(t *testing.T) {
	in := &Interactive{
		Type: "list",
		Body: ListBody{Text: "Pick one"},
		Action: ListAction{Sections: []ListSection{
			{Title: "Trips", Rows: []ListRow{{ID: "a", Title: "Dolphin"}, {ID: "b", Title: "Snorkeling"}}},
			{Title: "Info", Rows: []ListRow{{ID: "c", Title: "Pricing"}}},
		}},
	}
	got := FallbackText(in)
	for _, want := range []string{"Pick one", "Trips:", "1. Dolphin", "2. Snorkeling", "3. Pricing"} {
		if !strings.Contains(got, want) {
			t.Fatalf("fallback missing %q:\n%s", want, got)
		}
	}
}
