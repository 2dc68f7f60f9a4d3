package notification

import (
	"testing"
	"time"

	"beu/models"
	"beu/services/calendar"
)

var (
	loc = time.FixedZone("CST", -6*3600)
	now = time.Date(2024, 6, 15, 12, 0, 0, 0, loc)
	es  = calendar.MustLocale("es")
)

func ids(items []models.Notification) []string {
	out := make([]string, len(items))
	for i, n := range items {
		out[i] = n.ID
	}
	return out
}

func TestGroupByDateTodayYesterdayOlder(t *testing.T) {
	items := []models.Notification{
		{ID: "a", Timestamp: "2024-06-15T10:00:00-06:00"},
		{ID: "b", Timestamp: "2024-06-15T08:00:00-06:00"},
		{ID: "c", Timestamp: "2024-06-14T09:00:00-06:00"},
		{ID: "d", Timestamp: "2024-01-01T09:00:00-06:00"},
	}
	groups := GroupByDate(items, now, loc, es)

	want := []struct {
		label string
		ids   []string
	}{
		{"HOY", []string{"a", "b"}},
		{"AYER", []string{"c"}},
		{"1 ene 2024", []string{"d"}},
	}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d: %+v", len(groups), len(want), groups)
	}
	for i, w := range want {
		if groups[i].Label != w.label {
			t.Errorf("group %d label = %q, want %q", i, groups[i].Label, w.label)
		}
		got := ids(groups[i].Items)
		if len(got) != len(w.ids) {
			t.Errorf("group %q items = %v, want %v", w.label, got, w.ids)
			continue
		}
		for j := range got {
			if got[j] != w.ids[j] {
				t.Errorf("group %q items = %v, want %v", w.label, got, w.ids)
				break
			}
		}
	}
	if groups[0].Key != GroupToday || groups[1].Key != GroupYesterday || groups[2].Key != "2024-01-01" {
		t.Errorf("keys = %s, %s, %s", groups[0].Key, groups[1].Key, groups[2].Key)
	}
}

func TestGroupByDateNormalisesToLocalMidnight(t *testing.T) {
	// 03:00 UTC on the 15th is still the evening of the 14th in CST.
	groups := GroupByDate([]models.Notification{{ID: "x", Timestamp: "2024-06-15T03:00:00Z"}}, now, loc, es)
	if len(groups) != 1 || groups[0].Key != GroupYesterday {
		t.Fatalf("groups = %+v", groups)
	}
}

func TestGroupByDateOlderDatesDescending(t *testing.T) {
	items := []models.Notification{
		{ID: "1", Timestamp: "2024-03-01T10:00:00-06:00"},
		{ID: "2", Timestamp: "2024-05-20T10:00:00-06:00"},
		{ID: "3", Timestamp: "2024-03-01T18:00:00-06:00"},
		{ID: "4", Timestamp: "2023-12-31T10:00:00-06:00"},
	}
	groups := GroupByDate(items, now, loc, es)
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	want := []string{"2024-05-20", "2024-03-01", "2023-12-31"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if got := ids(groups[1].Items); len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("2024-03-01 items = %v", got)
	}
}

func TestGroupByDateKeepsEveryItem(t *testing.T) {
	items := []models.Notification{
		{ID: "1", Timestamp: "2024-06-15T09:00:00-06:00"},
		{ID: "2", Timestamp: "not a date"},
		{ID: "3", Timestamp: "2024-06-10T09:00:00-06:00"},
		{ID: "4", Timestamp: ""},
		{ID: "5", Timestamp: "2024-06-14"},
	}
	groups := GroupByDate(items, now, loc, es)

	seen := map[string]int{}
	for _, g := range groups {
		if len(g.Items) == 0 {
			t.Errorf("group %q is empty", g.Label)
		}
		for _, n := range g.Items {
			seen[n.ID]++
		}
	}
	if len(seen) != len(items) {
		t.Errorf("saw %d distinct items, want %d", len(seen), len(items))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("item %s appears %d times", id, n)
		}
	}

	last := groups[len(groups)-1]
	if last.Key != GroupUndated || last.Label != "SIN FECHA" {
		t.Errorf("last group = %q/%q, want undated", last.Key, last.Label)
	}
	if got := ids(last.Items); len(got) != 2 || got[0] != "2" || got[1] != "4" {
		t.Errorf("undated items = %v", got)
	}
}

func TestGroupByDateEmpty(t *testing.T) {
	if groups := GroupByDate(nil, now, loc, es); len(groups) != 0 {
		t.Errorf("groups = %+v", groups)
	}
}

func TestCountUnread(t *testing.T) {
	items := []models.Notification{
		{ID: "1", Status: models.NotificationUnread},
		{ID: "2", Status: models.NotificationRead},
		{ID: "3", Status: models.NotificationUnread},
	}
	if n := CountUnread(items); n != 2 {
		t.Errorf("CountUnread = %d", n)
	}
}
