package repository

import (
	"context"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
)

// ProjectRepository reads and writes the projects collection. Revisions, general deviations
// and uploaded files are stored inline with their project.
type ProjectRepository struct {
	store Store
}

func NewProjectRepository(store Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) List(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	if err := r.store.GetAll(ctx, CollectionProjects, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// FindByID returns a detached copy of the project with id.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, bool, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return nil, false, err
	}
	if i := IndexOfProject(projects, id); i >= 0 {
		p := projects[i]
		return &p, true, nil
	}
	return nil, false, nil
}

func (r *ProjectRepository) SaveAll(ctx context.Context, projects []entity.Project) error {
	return r.store.SaveAll(ctx, CollectionProjects, projects)
}

func (r *ProjectRepository) NewID() string {
	return r.store.NewID()
}

// IndexOfProject returns the position of id in projects, or -1.
func IndexOfProject(projects []entity.Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// SparePartRepository stores notes in one collection per project and note type.
type SparePartRepository struct {
	store Store
}

func NewSparePartRepository(store Store) *SparePartRepository {
	return &SparePartRepository{store: store}
}

func (r *SparePartRepository) List(ctx context.Context, projectID, noteType string) ([]entity.SparePartNote, error) {
	var notes []entity.SparePartNote
	if err := r.store.GetAll(ctx, entity.SparePartCollection(projectID, noteType), &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *SparePartRepository) SaveAll(ctx context.Context, projectID, noteType string, notes []entity.SparePartNote) error {
	return r.store.SaveAll(ctx, entity.SparePartCollection(projectID, noteType), notes)
}

// DeleteProject removes the notes of every type for a project.
func (r *SparePartRepository) DeleteProject(ctx context.Context, projectID string) error {
	for _, t := range []string{entity.SparePartPreCommissioning, entity.SparePartTwoYear} {
		if err := r.store.Delete(ctx, entity.SparePartCollection(projectID, t)); err != nil {
			return err
		}
	}
	return nil
}

func (r *SparePartRepository) NewID() string {
	return r.store.NewID()
}
