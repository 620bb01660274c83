package models

import "time"

// Project represents a container for tasks.
// Projects are the top-level organizational unit in TaskPilot.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	OwnerID     string    `json:"ownerId"`
}

// NewProject carries the caller-supplied fields of a project being created.
// CreatedAt is optional: nil means the creation instant.
type NewProject struct {
	Name        string
	Description string
	OwnerID     string
	CreatedAt   *time.Time
}

// ProjectPatch is a partial update for a project.
// Fields with pointers are optional - nil means don't update
type ProjectPatch struct {
	Name        *string
	Description *string
	OwnerID     *string
}

// IsEmpty reports whether the patch would change no field.
func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.OwnerID == nil
}

// Apply merges the patch into a copy of project and returns it.
// Timestamps are left to the caller.
func (p ProjectPatch) Apply(project Project) Project {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.OwnerID != nil {
		project.OwnerID = *p.OwnerID
	}
	return project
}

// GetID returns the project ID
func (p Project) GetID() string { return p.ID }
