package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestWeekdayMonday0(t *testing.T) {
	mon := time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC) // Monday
	if WeekdayMonday0(mon) != 0 {
		t.Fatalf("monday should be 0, got %d", WeekdayMonday0(mon))
	}
	sun := time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC) // Sunday
	if WeekdayMonday0(sun) != 6 {
		t.Fatalf("sunday should be 6, got %d", WeekdayMonday0(sun))
	}
}

func TestWeekendFlag(t *testing.T) {
	sat := time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC)
	if WeekendFlag(sat) != 1 {
		t.Fatalf("saturday should be weekend")
	}
	wed := time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC)
	if WeekendFlag(wed) != 0 {
		t.Fatalf("wednesday should not be weekend")
	}
}
