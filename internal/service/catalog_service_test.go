package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

type classListerStub struct {
	classes []models.Class
	calls   int
	err     error
}

func (s *classListerStub) List(ctx context.Context, workspaceID string) ([]models.Class, error) {
	s.calls++
	return s.classes, s.err
}

type subjectListerStub struct{ subjects []models.Subject }

func (s *subjectListerStub) List(ctx context.Context, workspaceID, search string) ([]models.Subject, error) {
	return s.subjects, nil
}

type teacherListerStub struct{ teachers []models.Teacher }

func (s *teacherListerStub) List(ctx context.Context, workspaceID string) ([]models.Teacher, error) {
	return s.teachers, nil
}

func newCatalogFixture(cache *CacheService) (*CatalogService, *classListerStub) {
	classes := &classListerStub{classes: []models.Class{{ID: "x1", Name: "X-1"}}}
	svc := NewCatalogService(
		classes,
		&subjectListerStub{subjects: []models.Subject{{ID: "math", Name: "Mathematics", DefaultRoom: "R-101"}}},
		&teacherListerStub{teachers: []models.Teacher{{ID: "t1", FullName: "Ani"}}},
		cache,
		time.Minute,
		nil,
	)
	return svc, classes
}

func TestCatalogLoadResolvesNames(t *testing.T) {
	svc, _ := newCatalogFixture(nil)

	catalog, err := svc.Load(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "X-1", catalog.ClassName("x1"))
	assert.Equal(t, "Ani", catalog.TeacherName("t1"))
	assert.Equal(t, "R-101", catalog.DefaultRoom("math"))
	assert.Equal(t, "x9", catalog.ClassName("x9"), "unknown ids fall back to the id")
}

func TestCatalogLoadServedFromCache(t *testing.T) {
	cache := NewCacheService(&stubCacheRepo{}, nil, time.Minute, nil, true)
	svc, classes := newCatalogFixture(cache)

	_, err := svc.Load(context.Background(), "ws-1")
	require.NoError(t, err)
	catalog, err := svc.Load(context.Background(), "ws-1")
	require.NoError(t, err)

	assert.Equal(t, 1, classes.calls)
	assert.Equal(t, "Mathematics", catalog.SubjectName("math"))
}

func TestCatalogLoadFailure(t *testing.T) {
	svc, classes := newCatalogFixture(nil)
	classes.err = errors.New("db down")

	_, err := svc.Load(context.Background(), "ws-1")
	assert.Error(t, err)
}
