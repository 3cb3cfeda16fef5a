// internals/features/students/service/seat_allocator.go
package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	stuModel "librarydesk_backend/internals/features/students/model"
)

/*
Seat allocation is a pure function over (totalSeats, active snapshot). Callers
must fetch the snapshot fresh per request; nothing here is cached. The write
path re-runs ValidateAssignment inside the storage transaction, and the partial
unique index catches whatever still slips through between read and write.
*/

type SeatConflictError struct {
	Seat int
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat %d is already occupied by another active student", e.Seat)
}

type SeatOutOfRangeError struct {
	Seat       int
	TotalSeats int
}

func (e *SeatOutOfRangeError) Error() string {
	return fmt.Sprintf("seat %d is outside the range 1..%d", e.Seat, e.TotalSeats)
}

// AvailableSeats returns {1..totalSeats} minus the seats held by active
// students, ascending.
func AvailableSeats(totalSeats int, active []stuModel.StudentModel) []int {
	return AvailableSeatsExcluding(totalSeats, active, 0)
}

// AvailableSeatsExcluding treats excludedSeat as vacant regardless of
// occupancy, so a student being edited sees their own seat as a valid choice.
// Pass 0 to exclude nothing.
func AvailableSeatsExcluding(totalSeats int, active []stuModel.StudentModel, excludedSeat int) []int {
	occupied := make(map[int]bool, len(active))
	for i := range active {
		if !active[i].StudentIsActive {
			continue
		}
		if active[i].StudentSeatNumber == excludedSeat {
			continue
		}
		occupied[active[i].StudentSeatNumber] = true
	}

	out := make([]int, 0, totalSeats)
	for seat := 1; seat <= totalSeats; seat++ {
		if !occupied[seat] {
			out = append(out, seat)
		}
	}
	return out
}

// OccupiedSeats returns the ascending seat numbers held by active students.
func OccupiedSeats(active []stuModel.StudentModel) []int {
	out := make([]int, 0, len(active))
	for i := range active {
		if active[i].StudentIsActive {
			out = append(out, active[i].StudentSeatNumber)
		}
	}
	sort.Ints(out)
	return out
}

// ValidateAssignment rejects targetSeat when it is outside [1, totalSeats] or
// held by an active student other than excludeStudentID. Idempotent over
// identical inputs.
func ValidateAssignment(totalSeats int, active []stuModel.StudentModel, targetSeat int, excludeStudentID uuid.UUID) error {
	if targetSeat < 1 || targetSeat > totalSeats {
		return &SeatOutOfRangeError{Seat: targetSeat, TotalSeats: totalSeats}
	}
	for i := range active {
		s := &active[i]
		if !s.StudentIsActive {
			continue
		}
		if s.StudentID == excludeStudentID {
			continue
		}
		if s.StudentSeatNumber == targetSeat {
			return &SeatConflictError{Seat: targetSeat}
		}
	}
	return nil
}
