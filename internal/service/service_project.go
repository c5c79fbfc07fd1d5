package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/store"
	"github.com/MKhiriev/go-vault-gate/models"
)

type projectService struct {
	projectRepository store.ProjectRepository
	ids               IDGenerator
	clock             clock.Clock

	logger *logger.Logger
}

func NewProjectService(projectRepository store.ProjectRepository, ids IDGenerator, clk clock.Clock, logger *logger.Logger) ProjectService {
	return &projectService{
		projectRepository: projectRepository,
		ids:               ids,
		clock:             clk,
		logger:            logger,
	}
}

func (s *projectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepository.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) CreateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error) {
	now := s.clock.Now().UTC()
	project := projectFromPayload(payload)
	project.ID = s.ids.Generate()
	project.CreatedAt = now
	project.UpdatedAt = now

	created, err := s.projectRepository.CreateProject(ctx, project)
	if err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

func (s *projectService) UpdateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error) {
	project := projectFromPayload(payload)
	project.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.projectRepository.UpdateProject(ctx, project)
	if err != nil {
		return models.Project{}, fmt.Errorf("update project %s: %w", payload.ID, err)
	}
	return updated, nil
}

// DeleteProject removes the project; its secrets stay and become unassigned.
func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projectRepository.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	logger.FromContext(ctx).Debug().Str("project_id", id).Msg("project deleted, secrets unassigned")
	return nil
}

// projectFromPayload trims the name and fills in the default color and icon.
func projectFromPayload(payload models.ProjectPayload) models.Project {
	project := models.Project{
		ID:          payload.ID,
		Name:        strings.TrimSpace(payload.Name),
		Description: payload.Description,
		Color:       payload.Color,
		Icon:        payload.Icon,
	}
	if project.Color == "" {
		project.Color = models.DefaultProjectColor
	}
	if project.Icon == "" {
		project.Icon = models.DefaultProjectIcon
	}
	return project
}
