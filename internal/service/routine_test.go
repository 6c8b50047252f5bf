package service

import (
	"errors"
	"testing"

	"github.com/repfit/repfit-go/model"
)

func TestRoutineFromRequestValidation(t *testing.T) {
	_, err := routineFromRequest(model.RoutineRequest{Name: ""})
	if !errors.Is(err, ErrRoutineNameRequired) {
		t.Errorf("blank name: got %v, want ErrRoutineNameRequired", err)
	}

	_, err = routineFromRequest(model.RoutineRequest{Name: "Push Day", Days: []string{"funday"}})
	if !errors.Is(err, ErrInvalidRoutineDay) {
		t.Errorf("bad day: got %v, want ErrInvalidRoutineDay", err)
	}
}

func TestRoutineFromRequestNormalizesDays(t *testing.T) {
	rt, err := routineFromRequest(model.RoutineRequest{
		Name: "Push Day",
		Days: []string{" Monday ", "FRIDAY"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rt.Days) != 2 || rt.Days[0] != "monday" || rt.Days[1] != "friday" {
		t.Errorf("days = %v, want [monday friday]", rt.Days)
	}
	if rt.Exercises == nil {
		t.Error("exercises should be non-nil")
	}
}
