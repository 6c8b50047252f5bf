package service

import (
	"errors"
	"testing"

	"github.com/repfit/repfit-go/model"
)

func TestExerciseFromRequestValidation(t *testing.T) {
	_, err := exerciseFromRequest(model.ExerciseRequest{Name: "  ", Type: model.ExerciseTypeRepsOnly})
	if !errors.Is(err, ErrExerciseNameRequired) {
		t.Errorf("blank name: got %v, want ErrExerciseNameRequired", err)
	}

	_, err = exerciseFromRequest(model.ExerciseRequest{Name: "Push Up", Type: "cardio"})
	if !errors.Is(err, ErrInvalidExerciseType) {
		t.Errorf("bad type: got %v, want ErrInvalidExerciseType", err)
	}

	_, err = exerciseFromRequest(model.ExerciseRequest{
		Name: "Push Up", Type: model.ExerciseTypeRepsOnly, Difficulty: "impossible",
	})
	if !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("bad difficulty: got %v, want ErrInvalidDifficulty", err)
	}
}

func TestExerciseFromRequestDefaults(t *testing.T) {
	ex, err := exerciseFromRequest(model.ExerciseRequest{
		Name: " Push Up ",
		Type: model.ExerciseTypeRepsOnly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Name != "Push Up" {
		t.Errorf("name = %q, want trimmed", ex.Name)
	}
	if !ex.IsPublic {
		t.Error("exercises should default to public")
	}
	if ex.Instructions == nil {
		t.Error("instructions should be non-nil")
	}
}

func TestExerciseFromRequestExplicitPrivate(t *testing.T) {
	private := false
	ex, err := exerciseFromRequest(model.ExerciseRequest{
		Name: "Push Up", Type: model.ExerciseTypeRepsOnly, IsPublic: &private,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.IsPublic {
		t.Error("explicit is_public=false should be honored")
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		in   model.Pagination
		want model.Pagination
	}{
		{model.Pagination{}, model.Pagination{Page: 1, Limit: 20}},
		{model.Pagination{Page: -1, Limit: 0}, model.Pagination{Page: 1, Limit: 20}},
		{model.Pagination{Page: 3, Limit: 50}, model.Pagination{Page: 3, Limit: 50}},
		{model.Pagination{Page: 1, Limit: 500}, model.Pagination{Page: 1, Limit: 20}},
	}
	for _, c := range cases {
		if got := normalizePage(c.in); got != c.want {
			t.Errorf("normalizePage(%+v) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestPageInfo(t *testing.T) {
	info := pageInfo(model.Pagination{Page: 2, Limit: 20}, 45)
	if info.Pages != 3 {
		t.Errorf("pages = %d, want 3", info.Pages)
	}
	if info.Total != 45 || info.Page != 2 || info.Limit != 20 {
		t.Errorf("unexpected page info: %+v", info)
	}

	if got := pageInfo(model.Pagination{Page: 1, Limit: 20}, 40).Pages; got != 2 {
		t.Errorf("exact multiple: pages = %d, want 2", got)
	}
	if got := pageInfo(model.Pagination{Page: 1, Limit: 20}, 0).Pages; got != 0 {
		t.Errorf("empty: pages = %d, want 0", got)
	}
}
