package task

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("task not found")
	ErrEmptyTitle = errors.New("task title is required")
)

type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DesiredDate string `json:"desiredDate"`
	DesiredTime string `json:"desiredTime"`
	Twin        string `json:"twin"`
}

// Patch represents a partial update.
// nil pointer => "no change". This is a raw overwrite escape hatch: it
// applies provided fields unconditionally and never runs transition rules.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	DesiredDate *string `json:"desiredDate,omitempty"`
	DesiredTime *string `json:"desiredTime,omitempty"`
	Twin        *string `json:"twin,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

type Repo interface {
	List() []Task
	Create(in CreateInput) (Task, error)
	Update(id string, p Patch) (Task, error)
	Delete(id string) error
	Claim(id, helperName string) (Task, error)
	Unclaim(id string) (Task, error)
	Complete(id string) (Task, error)
}

// Publisher receives the full task list after every successful mutation.
type Publisher interface {
	Publish(channel string, payload any)
}

func newID() string {
	return "task_" + uuid.NewString()
}

func applyPatch(t *Task, p Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DesiredDate != nil {
		t.DesiredDate = *p.DesiredDate
	}
	if p.DesiredTime != nil {
		t.DesiredTime = *p.DesiredTime
	}
	if p.Twin != nil {
		t.Twin = *p.Twin
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
