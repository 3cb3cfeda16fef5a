package service

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	stuModel "librarydesk_backend/internals/features/students/model"
)

func activeOnSeat(seat int) stuModel.StudentModel {
	return stuModel.StudentModel{
		StudentID:         uuid.New(),
		StudentSeatNumber: seat,
		StudentIsActive:   true,
	}
}

func TestAvailableSeats(t *testing.T) {
	occupied := []stuModel.StudentModel{activeOnSeat(1), activeOnSeat(3), activeOnSeat(5)}

	got := AvailableSeats(5, occupied)
	want := []int{2, 4}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AvailableSeats = %v, want %v", got, want)
	}
}

func TestAvailableSeatsEmptyLibrary(t *testing.T) {
	got := AvailableSeats(3, nil)
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AvailableSeats on empty library = %v, want %v", got, want)
	}
}

func TestAvailableSeatsFullLibrary(t *testing.T) {
	full := []stuModel.StudentModel{activeOnSeat(1), activeOnSeat(2)}
	if got := AvailableSeats(2, full); len(got) != 0 {
		t.Fatalf("full library should have no seats, got %v", got)
	}
}

func TestAvailableSeatsIgnoresInactive(t *testing.T) {
	s := activeOnSeat(2)
	s.StudentIsActive = false
	got := AvailableSeats(3, []stuModel.StudentModel{activeOnSeat(1), s})
	want := []int{2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AvailableSeats = %v, want %v (inactive seat must be free)", got, want)
	}
}

func TestAvailableSeatsExcluding(t *testing.T) {
	occupied := []stuModel.StudentModel{activeOnSeat(1), activeOnSeat(2), activeOnSeat(4)}

	// editing the student on seat 2: their own seat stays selectable
	got := AvailableSeatsExcluding(4, occupied, 2)
	want := []int{2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AvailableSeatsExcluding = %v, want %v", got, want)
	}
}

func TestValidateAssignmentConflict(t *testing.T) {
	occupied := []stuModel.StudentModel{activeOnSeat(3)}

	err := ValidateAssignment(5, occupied, 3, uuid.Nil)
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
	if conflict.Seat != 3 {
		t.Fatalf("conflict seat = %d, want 3", conflict.Seat)
	}
}

func TestValidateAssignmentSelfSeat(t *testing.T) {
	me := activeOnSeat(3)
	if err := ValidateAssignment(5, []stuModel.StudentModel{me}, 3, me.StudentID); err != nil {
		t.Fatalf("own seat should validate during edit, got %v", err)
	}
}

func TestValidateAssignmentOutOfRange(t *testing.T) {
	for _, seat := range []int{0, -1, 6} {
		err := ValidateAssignment(5, nil, seat, uuid.Nil)
		var oor *SeatOutOfRangeError
		if !errors.As(err, &oor) {
			t.Fatalf("seat %d: expected SeatOutOfRangeError, got %v", seat, err)
		}
	}
}

func TestValidateAssignmentIdempotent(t *testing.T) {
	occupied := []stuModel.StudentModel{activeOnSeat(1)}
	first := ValidateAssignment(5, occupied, 1, uuid.Nil)
	second := ValidateAssignment(5, occupied, 1, uuid.Nil)
	if (first == nil) != (second == nil) {
		t.Fatalf("validation not idempotent: %v vs %v", first, second)
	}
}

func TestOccupiedSeatsSorted(t *testing.T) {
	got := OccupiedSeats([]stuModel.StudentModel{activeOnSeat(5), activeOnSeat(1), activeOnSeat(3)})
	want := []int{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("OccupiedSeats = %v, want %v", got, want)
	}
}
