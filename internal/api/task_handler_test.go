package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	ListTasksFn  func(ctx context.Context, q store.ListQuery) ([]domain.Task, error)
	CountTasksFn func(ctx context.Context, q store.ListQuery) (int64, error)
	GetTaskFn    func(ctx context.Context, id string) (*domain.Task, error)
	CreateTaskFn func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id string, set bson.D) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id string) (*domain.Task, error)
}

func (m *MockTaskService) ListTasks(ctx context.Context, q store.ListQuery) ([]domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, q)
	}
	return nil, nil
}

func (m *MockTaskService) CountTasks(ctx context.Context, q store.ListQuery) (int64, error) {
	if m.CountTasksFn != nil {
		return m.CountTasksFn(ctx, q)
	}
	return 0, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, task)
	}
	return task, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id string, set bson.D) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, set)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTaskRouter mounts a TaskHandler on a chi router so URL parameters are
// populated the same way as in production.
func newTaskRouter(svc *MockTaskService) http.Handler {
	h := NewTaskHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks/{id}", h.GetTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
	return r
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) (string, interface{}) {
	t.Helper()
	var envelope struct {
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &envelope))
	return envelope.Message, envelope.Data
}

// TestTaskHandler_ListTasks_DefaultLimit verifies that a task listing
// without a limit parameter is capped at 100 records, while an explicit
// limit passes through unchanged.
func TestTaskHandler_ListTasks_DefaultLimit(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		expectedLimit int64
	}{
		{"no_limit_defaults_to_100", "/tasks", 100},
		{"explicit_limit_passes_through", "/tasks?limit=5", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured store.ListQuery
			svc := &MockTaskService{
				ListTasksFn: func(ctx context.Context, q store.ListQuery) ([]domain.Task, error) {
					captured = q
					return []domain.Task{}, nil
				},
			}

			rr := httptest.NewRecorder()
			newTaskRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			require.NotNil(t, captured.Limit)
			assert.Equal(t, tt.expectedLimit, *captured.Limit)
		})
	}
}

// TestTaskHandler_ListTasks_MalformedWhere verifies that a malformed where
// parameter behaves identically to no filter at all.
func TestTaskHandler_ListTasks_MalformedWhere(t *testing.T) {
	var captured store.ListQuery
	svc := &MockTaskService{
		ListTasksFn: func(ctx context.Context, q store.ListQuery) ([]domain.Task, error) {
			captured = q
			return []domain.Task{}, nil
		},
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tasks?where="+url.QueryEscape(`{"bad json"`), nil)
	newTaskRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, captured.Filter)
	message, _ := decodeEnvelope(t, rr.Body)
	assert.Equal(t, "OK", message)
}

// TestTaskHandler_ListTasks_Count verifies count mode and the query-error path.
func TestTaskHandler_ListTasks_Count(t *testing.T) {
	svc := &MockTaskService{
		CountTasksFn: func(ctx context.Context, q store.ListQuery) (int64, error) {
			return 42, nil
		},
	}

	rr := httptest.NewRecorder()
	newTaskRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tasks?count=TRUE", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	message, data := decodeEnvelope(t, rr.Body)
	assert.Equal(t, "OK", message)
	assert.Equal(t, float64(42), data)
}

func TestTaskHandler_ListTasks_QueryError(t *testing.T) {
	svc := &MockTaskService{
		ListTasksFn: func(ctx context.Context, q store.ListQuery) ([]domain.Task, error) {
			return nil, errors.New("unknown operator $frob")
		},
	}

	rr := httptest.NewRecorder()
	newTaskRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	message, data := decodeEnvelope(t, rr.Body)
	assert.Equal(t, "Query Error", message)
	assert.Equal(t, "unknown operator $frob", data)
}

// TestTaskHandler_GetTask covers the found, not-found, and store-error paths.
func TestTaskHandler_GetTask(t *testing.T) {
	taskID := primitive.NewObjectID()

	tests := []struct {
		name            string
		setupMock       func(*MockTaskService)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "found",
			setupMock: func(svc *MockTaskService) {
				svc.GetTaskFn = func(ctx context.Context, id string) (*domain.Task, error) {
					return &domain.Task{ID: taskID, Name: "T", Deadline: "2030-01-01"}, nil
				}
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "OK",
		},
		{
			name: "not_found",
			setupMock: func(svc *MockTaskService) {
				svc.GetTaskFn = func(ctx context.Context, id string) (*domain.Task, error) {
					return nil, store.ErrTaskNotFound
				}
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Task not found",
		},
		{
			name: "malformed_id",
			setupMock: func(svc *MockTaskService) {
				svc.GetTaskFn = func(ctx context.Context, id string) (*domain.Task, error) {
					return nil, store.ErrInvalidID
				}
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTaskService{}
			tt.setupMock(svc)

			rr := httptest.NewRecorder()
			newTaskRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tasks/"+taskID.Hex(), nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			message, data := decodeEnvelope(t, rr.Body)
			assert.Equal(t, tt.expectedMessage, message)
			if tt.expectedStatus == http.StatusNotFound {
				assert.Equal(t, map[string]interface{}{}, data)
			}
		})
	}
}

// TestTaskHandler_CreateTask_MissingFields verifies the presence checks fire
// before any store call and produce the documented 400 envelope.
func TestTaskHandler_CreateTask_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing_deadline", `{"name":"T"}`},
		{"missing_name", `{"deadline":"2030-01-01"}`},
		{"empty_body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			svc := &MockTaskService{
				CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
					created = true
					return task, nil
				},
			}

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(tt.body))
			newTaskRouter(svc).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			message, data := decodeEnvelope(t, rr.Body)
			assert.Equal(t, "Name and deadline required", message)
			assert.Equal(t, map[string]interface{}{}, data)
			assert.False(t, created, "no record should be created when validation fails")
		})
	}
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	taskID := primitive.NewObjectID()
	svc := &MockTaskService{
		CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			task.ID = taskID
			task.Normalize()
			return task, nil
		},
	}

	rr := httptest.NewRecorder()
	body := `{"name":"T","deadline":"2030-01-01","assignedUser":"abc"}`
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(body))
	newTaskRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	message, data := decodeEnvelope(t, rr.Body)
	assert.Equal(t, "Task created", message)

	task, ok := data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, taskID.Hex(), task["_id"])
	assert.Equal(t, "abc", task["assignedUser"])
	assert.Equal(t, "unassigned", task["assignedUserName"])
	assert.Equal(t, false, task["completed"])
}

func TestTaskHandler_CreateTask_StoreFailure(t *testing.T) {
	svc := &MockTaskService{
		CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			return nil, errors.New("connection reset")
		},
	}

	rr := httptest.NewRecorder()
	body := `{"name":"T","deadline":"2030-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(body))
	newTaskRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	message, data := decodeEnvelope(t, rr.Body)
	assert.Equal(t, "Task creation failed", message)
	assert.Equal(t, "connection reset", data)
}

// TestTaskHandler_UpdateTask verifies the partial update document contains
// only the fields present in the body, and the not-found path.
func TestTaskHandler_UpdateTask(t *testing.T) {
	taskID := primitive.NewObjectID()

	t.Run("partial_body_builds_partial_set", func(t *testing.T) {
		var capturedSet bson.D
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id string, set bson.D) (*domain.Task, error) {
				capturedSet = set
				return &domain.Task{ID: taskID, Name: "T", Deadline: "2030-01-01", Completed: true}, nil
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+taskID.Hex(), bytes.NewBufferString(`{"completed":true}`))
		newTaskRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		message, _ := decodeEnvelope(t, rr.Body)
		assert.Equal(t, "Task updated", message)
		assert.Equal(t, bson.D{{Key: "completed", Value: true}}, capturedSet)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id string, set bson.D) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+taskID.Hex(), bytes.NewBufferString(`{"name":"X"}`))
		newTaskRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		message, _ := decodeEnvelope(t, rr.Body)
		assert.Equal(t, "Task not found", message)
	})

	t.Run("store_failure", func(t *testing.T) {
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id string, set bson.D) (*domain.Task, error) {
				return nil, errors.New("write conflict")
			},
		}

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+taskID.Hex(), bytes.NewBufferString(`{"name":"X"}`))
		newTaskRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		message, data := decodeEnvelope(t, rr.Body)
		assert.Equal(t, "Update failed", message)
		assert.Equal(t, "write conflict", data)
	})
}

// TestTaskHandler_DeleteTask verifies the 204 success path (no body, per
// net/http's handling of 204) and the 404 path.
func TestTaskHandler_DeleteTask(t *testing.T) {
	taskID := primitive.NewObjectID()

	t.Run("deleted", func(t *testing.T) {
		svc := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
				return &domain.Task{ID: taskID}, nil
			},
		}

		rr := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/tasks/"+taskID.Hex(), nil))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.Bytes())
	})

	t.Run("not_found", func(t *testing.T) {
		svc := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}

		rr := httptest.NewRecorder()
		newTaskRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/tasks/"+taskID.Hex(), nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		message, _ := decodeEnvelope(t, rr.Body)
		assert.Equal(t, "Task not found", message)
	})
}
