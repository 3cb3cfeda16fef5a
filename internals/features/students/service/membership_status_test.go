package service

import (
	"testing"
	"time"

	"gorm.io/datatypes"

	stuModel "librarydesk_backend/internals/features/students/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, canonicalZone)
}

func memberEnding(end time.Time) stuModel.StudentModel {
	return stuModel.StudentModel{
		StudentEndDate:  datatypes.Date(end),
		StudentIsActive: true,
	}
}

func TestClassifyDate(t *testing.T) {
	ref := date(2025, time.March, 10)

	cases := []struct {
		name string
		end  time.Time
		want MembershipStatus
	}{
		{"ends today", date(2025, time.March, 10), StatusExpiringToday},
		{"ends tomorrow", date(2025, time.March, 11), StatusExpiringTomorrow},
		{"ended yesterday", date(2025, time.March, 9), StatusExpired},
		{"ends next week", date(2025, time.March, 17), StatusActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyDate(tc.end, ref); got != tc.want {
				t.Fatalf("ClassifyDate(%v, %v) = %q, want %q", tc.end, ref, got, tc.want)
			}
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// 23:59 on the reference day must still classify as expiring today
	ref := time.Date(2025, time.March, 10, 23, 59, 0, 0, canonicalZone)
	end := time.Date(2025, time.March, 10, 0, 1, 0, 0, canonicalZone)
	if got := ClassifyDate(end, ref); got != StatusExpiringToday {
		t.Fatalf("ClassifyDate near midnight = %q, want %q", got, StatusExpiringToday)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	ref := date(2025, time.June, 1)
	end := date(2025, time.June, 2)
	if first, second := ClassifyDate(end, ref), ClassifyDate(end, ref); first != second {
		t.Fatalf("classification not pure: %q vs %q", first, second)
	}
}

func TestScanExpiring(t *testing.T) {
	ref := date(2025, time.March, 10)
	students := []stuModel.StudentModel{
		memberEnding(date(2025, time.March, 10)), // today
		memberEnding(date(2025, time.March, 11)), // tomorrow
		memberEnding(date(2025, time.March, 20)), // active
		memberEnding(date(2025, time.March, 1)),  // long expired, not in either bucket
	}

	scan := ScanExpiring(students, ref)
	if len(scan.ExpiredToday) != 1 {
		t.Fatalf("ExpiredToday = %d, want 1", len(scan.ExpiredToday))
	}
	if len(scan.ExpiringTomorrow) != 1 {
		t.Fatalf("ExpiringTomorrow = %d, want 1", len(scan.ExpiringTomorrow))
	}
	if scan.TotalExpiring() != 2 {
		t.Fatalf("TotalExpiring = %d, want 2", scan.TotalExpiring())
	}
	if len(scan.Errors) != 0 {
		t.Fatalf("unexpected scan errors: %v", scan.Errors)
	}
}

func TestScanExpiringExcludesInactive(t *testing.T) {
	ref := date(2025, time.March, 10)
	gone := memberEnding(date(2025, time.March, 10))
	gone.StudentIsActive = false

	scan := ScanExpiring([]stuModel.StudentModel{gone}, ref)
	if scan.TotalExpiring() != 0 {
		t.Fatalf("inactive student must not appear in any bucket, got %d", scan.TotalExpiring())
	}
}

func TestScanExpiringToleratesBadRecord(t *testing.T) {
	ref := date(2025, time.March, 10)
	bad := stuModel.StudentModel{StudentIsActive: true} // zero end date
	students := []stuModel.StudentModel{
		bad,
		memberEnding(date(2025, time.March, 10)),
	}

	scan := ScanExpiring(students, ref)
	if len(scan.Errors) != 1 {
		t.Fatalf("scan errors = %d, want 1", len(scan.Errors))
	}
	if len(scan.ExpiredToday) != 1 {
		t.Fatalf("a bad record must not abort the scan; ExpiredToday = %d, want 1", len(scan.ExpiredToday))
	}
}
