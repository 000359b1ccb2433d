// Package store persists editor projects under their project name.
package store

import (
	"context"
	"errors"

	"scenescribe/types"
)

// ErrNotFound is returned when no project exists under the requested name.
var ErrNotFound = errors.New("project not found")

// ProjectStore is the load-by-name / replace-by-name contract the editor
// needs. Save always replaces any prior state under the same name.
type ProjectStore interface {
	Load(ctx context.Context, name string) (*types.Project, error)
	Save(ctx context.Context, project *types.Project) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}
