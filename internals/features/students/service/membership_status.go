// internals/features/students/service/membership_status.go
package service

import (
	"fmt"
	"time"

	stuModel "librarydesk_backend/internals/features/students/model"
)

type MembershipStatus string

const (
	StatusActive           MembershipStatus = "active"
	StatusExpiringToday    MembershipStatus = "expiring_today"
	StatusExpiringTomorrow MembershipStatus = "expiring_tomorrow"
	StatusExpired          MembershipStatus = "expired"
)

// All date comparisons run in one canonical zone so a scan near midnight never
// classifies off by one.
var canonicalZone = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

// dateOnly strips the time-of-day component in the canonical zone.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.In(canonicalZone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, canonicalZone)
}

// ClassifyDate is a pure function of (endDate, referenceDate); calendar dates
// only.
func ClassifyDate(endDate, referenceDate time.Time) MembershipStatus {
	end := dateOnly(endDate)
	ref := dateOnly(referenceDate)
	switch {
	case end.Equal(ref):
		return StatusExpiringToday
	case end.Equal(ref.AddDate(0, 0, 1)):
		return StatusExpiringTomorrow
	case end.Before(ref):
		return StatusExpired
	default:
		return StatusActive
	}
}

// Classify derives the membership status of one record. A zero end date is a
// classification error for that record only.
func Classify(s *stuModel.StudentModel, referenceDate time.Time) (MembershipStatus, error) {
	end := s.EndDateTime()
	if end.IsZero() {
		return "", fmt.Errorf("student %s: membership end date is missing or malformed", s.StudentID)
	}
	return ClassifyDate(end, referenceDate), nil
}

// ExpiryScan partitions the active subset of a snapshot. Records that fail to
// classify land in Errors and never abort the rest of the scan.
type ExpiryScan struct {
	ExpiredToday     []stuModel.StudentModel
	ExpiringTomorrow []stuModel.StudentModel
	Errors           []error
}

func (r ExpiryScan) TotalExpiring() int {
	return len(r.ExpiredToday) + len(r.ExpiringTomorrow)
}

// ScanExpiring buckets students whose membership ends on referenceDate or the
// day after. Inactive records are excluded from every bucket.
func ScanExpiring(students []stuModel.StudentModel, referenceDate time.Time) ExpiryScan {
	var out ExpiryScan
	for i := range students {
		s := &students[i]
		if !s.StudentIsActive {
			continue
		}
		status, err := Classify(s, referenceDate)
		if err != nil {
			out.Errors = append(out.Errors, err)
			continue
		}
		switch status {
		case StatusExpiringToday:
			out.ExpiredToday = append(out.ExpiredToday, *s)
		case StatusExpiringTomorrow:
			out.ExpiringTomorrow = append(out.ExpiringTomorrow, *s)
		}
	}
	return out
}
