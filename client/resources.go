package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/repfit/repfit-go/model"
)

// Workouts returns a page of the user's workout log, most recent first.
func (c *Client) Workouts(ctx context.Context, page, limit int) (*model.WorkoutListResponse, error) {
	path := fmt.Sprintf("/api/v1/workouts?page=%d&limit=%d", page, limit)

	var resp model.WorkoutListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateWorkout logs a new workout.
func (c *Client) CreateWorkout(ctx context.Context, req model.WorkoutRequest) (*model.WorkoutResponse, error) {
	var resp struct {
		Workout model.WorkoutResponse `json:"workout"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts", req, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Workout, nil
}

// Exercises returns a page of the exercise catalog.
func (c *Client) Exercises(ctx context.Context, filter model.ExerciseFilter, page, limit int) (*model.ExerciseListResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Difficulty != "" {
		q.Set("difficulty", filter.Difficulty)
	}
	if filter.Equipment != "" {
		q.Set("equipment", filter.Equipment)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	path := "/api/v1/exercises?" + q.Encode()

	var resp model.ExerciseListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DashboardStats returns the dashboard projection.
func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var resp struct {
		Data model.DashboardStats `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/stats", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
