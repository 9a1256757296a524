package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/flowboard/internal/model"
	"github.com/existflow/flowboard/internal/store"
)

func TestCreateProject_DefaultBoard(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/api/firebase/projects",
		map[string]string{"userId": "u1", "title": "Website"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var p model.Project
	decodeBody(t, rec, &p)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "Website", p.Title)
	assert.Equal(t, model.StatusPlanning, p.Status)

	require.Len(t, p.Kanban.Columns, 3)
	titles := []string{p.Kanban.Columns[0].Title, p.Kanban.Columns[1].Title, p.Kanban.Columns[2].Title}
	assert.Equal(t, []string{"To Do", "In Progress", "Completed"}, titles)

	seen := make(map[string]bool)
	for _, col := range p.Kanban.Columns {
		assert.NotEmpty(t, col.ID)
		assert.False(t, seen[col.ID], "column ids must be unique")
		seen[col.ID] = true
		assert.Empty(t, col.Tasks)
	}
}

func TestCreateProject_ExplicitBoard(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/api/firebase/projects", map[string]any{
		"userId": "u1",
		"title":  "Custom",
		"status": "in-progress",
		"kanban": map[string]any{
			"columns": []map[string]any{
				{"id": "c1", "title": "Backlog", "tasks": []any{}},
			},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var p model.Project
	decodeBody(t, rec, &p)
	assert.Equal(t, model.StatusInProgress, p.Status)
	require.Len(t, p.Kanban.Columns, 1)
	assert.Equal(t, "Backlog", p.Kanban.Columns[0].Title)
}

func TestCreateProject_InvalidStatus(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/api/firebase/projects",
		map[string]string{"userId": "u1", "title": "X", "status": "done"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeValidation, body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "status", body.Details[0].Field)
}

func TestCreateProject_InvalidTaskPriority(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/api/firebase/projects", map[string]any{
		"userId": "u1",
		"title":  "X",
		"kanban": map[string]any{
			"columns": []map[string]any{
				{"id": "c1", "title": "Backlog", "tasks": []map[string]any{
					{"id": "t1", "columnId": "c1", "title": "Task", "priority": "critical"},
				}},
			},
		},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeValidation, body.Code)
	require.NotEmpty(t, body.Details)
	assert.Equal(t, "priority", body.Details[0].Field)
}

func TestCreateProject_MissingFields(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/api/firebase/projects", map[string]string{})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeValidation, body.Code)

	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"userId", "title"}, fields)
}

// lostWriteStore accepts writes but never finds them again.
type lostWriteStore struct {
	*store.Memory
}

func (s *lostWriteStore) Get(ctx context.Context, collection, id string, out any) error {
	return store.ErrNotFound
}

func TestCreateProject_ReadBackMiss(t *testing.T) {
	s := newTestServerWithStore(t, &lostWriteStore{Memory: store.NewMemory()})

	rec := doJSON(t, s, http.MethodPost, "/api/firebase/projects",
		map[string]string{"userId": "u1", "title": "Website"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeInternal, body.Code)
	assert.Equal(t, "Failed to create project", body.Error)
}

func TestListProjects_StoreFailure(t *testing.T) {
	s := newTestServerWithStore(t, &failingStore{err: errors.New("connection reset by mongod")})

	rec := doJSON(t, s, http.MethodGet, "/api/firebase/projects/u1", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeStore, body.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset", "upstream detail must not leak")
}

func TestListProjects_OrderedByUpdatedAtDesc(t *testing.T) {
	s, mem := newTestServer(t, nil)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	seed := func(id string, age time.Duration) {
		p := model.NewProject("u1", "Project "+id, "", "", nil)
		p.ID = id
		p.UpdatedAt = base.Add(-age)
		require.NoError(t, mem.Set(ctx, model.ProjectsCollection, id, p))
	}
	seed("old", 2*time.Hour)
	seed("new", 0)
	seed("mid", time.Hour)

	other := model.NewProject("u2", "Other", "", "", nil)
	require.NoError(t, mem.Set(ctx, model.ProjectsCollection, other.ID, other))

	rec := doJSON(t, s, http.MethodGet, "/api/firebase/projects/u1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var projects []model.Project
	decodeBody(t, rec, &projects)
	require.Len(t, projects, 3)
	assert.Equal(t, "new", projects[0].ID)
	assert.Equal(t, "mid", projects[1].ID)
	assert.Equal(t, "old", projects[2].ID)
}

func TestListProjects_EmptyIsNotFound(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodGet, "/api/firebase/projects/u1", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeNotFound, body.Code)
}

func TestCreateThenList(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/api/firebase/projects",
		map[string]string{"userId": "u1", "title": "Website"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/firebase/projects/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []model.Project
	decodeBody(t, rec, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "Website", projects[0].Title)
}
