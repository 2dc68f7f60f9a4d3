package notification

import (
	"sort"
	"time"

	"beu/models"
	"beu/services/calendar"
)

const (
	GroupToday     = "today"
	GroupYesterday = "yesterday"
	GroupUndated   = "undated"
)

// GroupByDate buckets items by the local calendar day of their timestamp.
// Today comes first, then yesterday, then older days newest first. Items keep
// their input order inside a bucket and empty buckets are never emitted.
// Items whose timestamp cannot be parsed end up in a trailing undated bucket.
func GroupByDate(items []models.Notification, now time.Time, loc *time.Location, locale *calendar.Locale) []models.NotificationGroup {
	if loc == nil {
		loc = time.Local
	}
	if locale == nil {
		locale = calendar.MustLocale(calendar.DefaultLocale)
	}
	today := calendar.StartOfDay(now.In(loc))
	yesterday := today.AddDate(0, 0, -1)

	type bucket struct {
		group models.NotificationGroup
		first time.Time
	}
	var (
		todayB, yesterdayB, undatedB *bucket
		dated                        []*bucket
		byKey                        = make(map[string]*bucket)
	)

	for _, item := range items {
		ts, ok := calendar.ParseTimestamp(item.Timestamp, loc)
		if !ok {
			if undatedB == nil {
				undatedB = &bucket{group: models.NotificationGroup{Key: GroupUndated, Label: locale.Undated}}
			}
			undatedB.group.Items = append(undatedB.group.Items, item)
			continue
		}

		day := calendar.StartOfDay(ts)
		switch {
		case day.Equal(today):
			if todayB == nil {
				todayB = &bucket{group: models.NotificationGroup{Key: GroupToday, Label: locale.Today}}
			}
			todayB.group.Items = append(todayB.group.Items, item)
		case day.Equal(yesterday):
			if yesterdayB == nil {
				yesterdayB = &bucket{group: models.NotificationGroup{Key: GroupYesterday, Label: locale.Yesterday}}
			}
			yesterdayB.group.Items = append(yesterdayB.group.Items, item)
		default:
			key := calendar.FormatDate(day)
			b, ok := byKey[key]
			if !ok {
				b = &bucket{
					group: models.NotificationGroup{Key: key, Label: locale.DayMonthYear(day)},
					first: ts,
				}
				byKey[key] = b
				dated = append(dated, b)
			}
			b.group.Items = append(b.group.Items, item)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].first.After(dated[j].first)
	})

	groups := make([]models.NotificationGroup, 0, len(dated)+3)
	if todayB != nil {
		groups = append(groups, todayB.group)
	}
	if yesterdayB != nil {
		groups = append(groups, yesterdayB.group)
	}
	for _, b := range dated {
		groups = append(groups, b.group)
	}
	if undatedB != nil {
		groups = append(groups, undatedB.group)
	}
	return groups
}

// CountUnread counts unread items.
func CountUnread(items []models.Notification) int {
	n := 0
	for _, item := range items {
		if item.Status == models.NotificationUnread {
			n++
		}
	}
	return n
}
