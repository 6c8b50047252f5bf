package service

import (
	"testing"
	"time"

	"github.com/repfit/repfit-go/model"
)

func TestWeekStart(t *testing.T) {
	// 2026-08-26 is a Wednesday; the week starts on Monday the 24th.
	wed := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	got := weekStart(wed)
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("weekStart(%v) = %v, want %v", wed, got, want)
	}

	// A Monday maps to itself at midnight.
	mon := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	if got := weekStart(mon); !got.Equal(want) {
		t.Errorf("weekStart(%v) = %v, want %v", mon, got, want)
	}

	// Sunday belongs to the week that started the previous Monday.
	sun := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	if got := weekStart(sun); !got.Equal(want) {
		t.Errorf("weekStart(%v) = %v, want %v", sun, got, want)
	}
}

func TestWeeklyVolume(t *testing.T) {
	since := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC) // a Monday

	workouts := []model.Workout{
		{
			Date: since.AddDate(0, 0, 1), // week 0
			Exercises: []model.WorkoutExercise{
				{Sets: []model.WorkoutSet{{Reps: 10, Weight: 50}, {Reps: 8, Weight: 60}}},
			},
		},
		{
			Date: since.AddDate(0, 0, 8), // week 1
			Exercises: []model.WorkoutExercise{
				{Sets: []model.WorkoutSet{{Reps: 5, Weight: 100}}},
			},
		},
		{
			Date:      since.AddDate(0, 0, -1), // before the window, dropped
			Exercises: []model.WorkoutExercise{{Sets: []model.WorkoutSet{{Reps: 1, Weight: 1}}}},
		},
	}

	series := weeklyVolume(workouts, since)
	if len(series) != volumeWeeks {
		t.Fatalf("weeklyVolume() returned %d weeks, want %d", len(series), volumeWeeks)
	}

	if series[0].Workouts != 1 || series[0].Sets != 2 {
		t.Errorf("week 0 = %+v, want 1 workout, 2 sets", series[0])
	}
	if got, want := series[0].Weight, 10*50.0+8*60.0; got != want {
		t.Errorf("week 0 weight = %v, want %v", got, want)
	}

	if series[1].Workouts != 1 || series[1].Sets != 1 || series[1].Weight != 500 {
		t.Errorf("week 1 = %+v, want 1 workout, 1 set, weight 500", series[1])
	}

	for i := 2; i < volumeWeeks; i++ {
		if series[i].Workouts != 0 {
			t.Errorf("week %d should be empty, got %+v", i, series[i])
		}
	}
}

func TestRecentSummaries(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var workouts []model.Workout
	for i := 0; i < 8; i++ {
		workouts = append(workouts, model.Workout{
			ID:   int64(i + 1),
			Date: base.AddDate(0, 0, i),
			Exercises: []model.WorkoutExercise{
				{Sets: []model.WorkoutSet{{Reps: 10}}},
			},
		})
	}

	summaries := recentSummaries(workouts)
	if len(summaries) != recentWorkoutCount {
		t.Fatalf("recentSummaries() returned %d, want %d", len(summaries), recentWorkoutCount)
	}
	// Newest first.
	if summaries[0].ID != 8 || summaries[recentWorkoutCount-1].ID != 4 {
		t.Errorf("recentSummaries() order wrong: first=%d last=%d", summaries[0].ID, summaries[recentWorkoutCount-1].ID)
	}
	if summaries[0].Sets != 1 {
		t.Errorf("summary sets = %d, want 1", summaries[0].Sets)
	}
}
