// Package task implements the list, create, update, and delete
// operations against the remote task endpoints.
package task

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/facildate/taskboard/internal/api"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/sanitize"
	"github.com/facildate/taskboard/internal/session"
)

const tasksPath = "/api/tasks/"

// listEnvelope is the paginated response wrapper some deployments of
// the API return instead of a bare array.
type listEnvelope struct {
	Results []model.Task `json:"results"`
}

// Service performs task CRUD calls with auth and CSRF headers sourced
// from the shared client and session.
type Service struct {
	client  *api.Client
	session *session.Store
}

// NewService creates a task service on top of the shared API client.
func NewService(client *api.Client, sess *session.Store) *Service {
	return &Service{client: client, session: sess}
}

// List fetches tasks matching filter. An unknown filter value falls
// back to FilterAll rather than erroring. The response may be a bare
// array or a {results: [...]} envelope.
func (s *Service) List(ctx context.Context, filter model.Filter) ([]model.Task, error) {
	if !filter.Valid() {
		filter = model.FilterAll
	}

	path := tasksPath
	if filter != model.FilterAll {
		path += "?status=" + url.QueryEscape(string(filter))
	}

	var raw json.RawMessage
	if err := s.client.Get(ctx, "listing tasks", path, &raw); err != nil {
		return nil, err
	}

	return decodeTaskList(raw)
}

// Create submits a new task. Title and description are sanitized.
// Anonymous callers may only create globally visible tasks, so an
// unauthenticated session forces visibility to global.
func (s *Service) Create(ctx context.Context, draft Draft) (model.Task, error) {
	status := draft.Status
	if status == "" {
		status = model.StatusTodo
	}

	visibility := draft.Visibility
	if !s.session.Current().IsAuthenticated {
		visibility = model.VisibilityGlobal
	} else if visibility == "" {
		visibility = model.VisibilityPrivate
	}

	body := map[string]interface{}{
		"title":       sanitize.Clean(draft.Title),
		"description": sanitize.CleanPtr(draft.Description),
		"status":      status,
		"visibility":  visibility,
	}

	var created model.Task
	if err := s.client.Post(ctx, "creating task", tasksPath, body, &created); err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// Update applies a partial update to the task with the given id.
// Only fields present in the patch are sent; title and description
// are sanitized when present.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (model.Task, error) {
	if id <= 0 {
		return model.Task{}, fmt.Errorf("updating task: %w", ErrInvalidTaskID)
	}

	body := make(map[string]interface{})
	if patch.Title != nil {
		body["title"] = sanitize.Clean(*patch.Title)
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			body["description"] = nil
		} else {
			body["description"] = sanitize.Clean(*patch.Description)
		}
	}
	if patch.Status != nil {
		body["status"] = *patch.Status
	}
	if patch.Visibility != nil {
		body["visibility"] = *patch.Visibility
	}

	path := fmt.Sprintf("%s%d/", tasksPath, id)

	var updated model.Task
	if err := s.client.Patch(ctx, "updating task", path, body, &updated); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// Delete removes the task with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("deleting task: %w", ErrInvalidTaskID)
	}

	path := fmt.Sprintf("%s%d/", tasksPath, id)
	return s.client.Delete(ctx, "deleting task", path)
}

// decodeTaskList accepts either a bare task array or the paginated
// envelope and returns the contained tasks.
func decodeTaskList(raw json.RawMessage) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tasks []model.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("listing tasks: decoding response: %w", err)
		}
		return tasks, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("listing tasks: decoding response: %w", err)
	}
	return envelope.Results, nil
}
