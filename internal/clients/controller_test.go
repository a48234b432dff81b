package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"clientctl/internal/api"
	"clientctl/internal/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer is an in-memory rendition of the Client REST resource.
type fakeServer struct {
	mu       sync.Mutex
	clients  []map[string]interface{}
	nextID   int64
	requests map[string]int
	bodies   []map[string]interface{}
	// failWith forces a status for a method.
	failWith map[string]int
}

func newFakeServer(seed ...map[string]interface{}) *fakeServer {
	f := &fakeServer{
		nextID:   100,
		requests: map[string]int{},
		failWith: map[string]int{},
	}
	f.clients = append(f.clients, seed...)
	return f
}

func seedClient(id int64, code, service string) map[string]interface{} {
	return map[string]interface{}{
		"id": id, "code": code, "service": service,
		"nameTh": "th-" + code, "nameEn": "en-" + code,
		"createdBy": 1, "createdAt": "2024-01-01 00:00:00",
		"updatedBy": nil,
	}
}

func (f *fakeServer) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[method]
}

func (f *fakeServer) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.requests {
		n += v
	}
	return n
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[r.Method]++

	if status, ok := f.failWith[r.Method]; ok {
		http.Error(w, "forced failure", status)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/client/api")
	w.Header().Set("Content-Type", "application/json")

	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(f.clients)
		case http.MethodPost:
			var body map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.bodies = append(f.bodies, body)
			for _, c := range f.clients {
				if c["code"] == body["code"] && c["service"] == body["service"] {
					http.Error(w, "duplicate", http.StatusConflict)
					return
				}
			}
			f.nextID++
			body["id"] = f.nextID
			body["createdAt"] = "2024-05-05 10:00:00"
			f.clients = append(f.clients, body)
			_ = json.NewEncoder(w).Encode(body)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(rest, "/"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	idx := -1
	for i, c := range f.clients {
		if fmt.Sprint(c["id"]) == strconv.FormatInt(id, 10) {
			idx = i
		}
	}
	if idx < 0 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.bodies = append(f.bodies, body)
		for k, v := range body {
			f.clients[idx][k] = v
		}
		f.clients[idx]["updatedAt"] = "2024-06-06 12:00:00"
		_ = json.NewEncoder(w).Encode(f.clients[idx])
	case http.MethodDelete:
		f.clients = append(f.clients[:idx], f.clients[idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func setupController(t *testing.T, fake *fakeServer) *Controller {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.Options{BaseURL: srv.URL + "/client/", HTTPClient: srv.Client()})
	require.NoError(t, err)

	c := NewController(client, ControllerOptions{ActorID: 42})
	require.NoError(t, c.Bootstrap(context.Background()))
	return c
}

func validForm(code, service string) Form {
	return Form{Code: code, Service: service, NameTh: "ชื่อ", NameEn: "Name"}
}

func TestController_Bootstrap(t *testing.T) {
	fake := newFakeServer(seedClient(2, "B", "S1"), seedClient(1, "A", "S1"))
	c := setupController(t, fake)

	assert.Equal(t, 2, c.Cache().Len())
	assert.Equal(t, 2, c.Grid().VisibleCount())
	got, ok := c.Cache().Find(2)
	require.True(t, ok)
	assert.Equal(t, "1", got.CreatedBy)
	assert.Equal(t, "", got.UpdatedBy, "null audit fields normalise to empty")

	rows := c.Grid().PageRows()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].ID, "grid sorts by code")
	assert.Equal(t, "edit 1 | delete 1", rows[0].Cell(len(Columns)-1))
}

func TestController_BootstrapFailure(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"))
	fake.failWith[http.MethodGet] = http.StatusInternalServerError
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client, err := api.NewClient(api.Options{BaseURL: srv.URL + "/client/", HTTPClient: srv.Client()})
	require.NoError(t, err)

	var counts []int
	c := NewController(client, ControllerOptions{})
	c.Grid().OnDraw(func(e grid.DrawEvent) { counts = append(counts, e.VisibleCount) })

	err = c.Bootstrap(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
	assert.Equal(t, 0, c.Cache().Len())
	assert.Equal(t, []int{0}, counts, "grid is initialised empty")

	delete(fake.failWith, http.MethodGet)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 1, c.Cache().Len())
}

func TestController_PageSizeOption(t *testing.T) {
	var seed []map[string]interface{}
	for i := 1; i <= 12; i++ {
		seed = append(seed, seedClient(int64(i), fmt.Sprintf("C%02d", i), "S"))
	}
	srv := httptest.NewServer(newFakeServer(seed...))
	defer srv.Close()
	client, err := api.NewClient(api.Options{BaseURL: srv.URL + "/client/", HTTPClient: srv.Client()})
	require.NoError(t, err)

	c := NewController(client, ControllerOptions{PageSize: 5})
	require.NoError(t, c.Bootstrap(context.Background()))
	assert.Equal(t, 5, c.Grid().PageSize())
	assert.Equal(t, 3, c.Grid().PageInfo().Pages)
}

func TestController_AddPrependsServerEntity(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"), seedClient(2, "B", "S1"))
	c := setupController(t, fake)
	before := c.Cache().Len()

	c.OpenAdd()
	created, err := c.SubmitAdd(context.Background(), Form{Code: " N ", Service: "S9", NameTh: " ใหม่ ", NameEn: "New "})
	require.NoError(t, err)

	assert.Equal(t, before+1, c.Cache().Len())
	first := c.Cache().All()[0]
	assert.Equal(t, int64(101), first.ID, "entity carries the server-assigned id")
	assert.Equal(t, created, first)
	assert.Equal(t, "N", first.Code)
	assert.Equal(t, "ใหม่", first.NameTh)
	assert.Equal(t, "42", first.CreatedBy)
	assert.Equal(t, Dialog{}, c.AddDialog(), "dialog closed and cleared")
	assert.Equal(t, 3, c.Grid().VisibleCount())

	require.Len(t, fake.bodies, 1)
	assert.Equal(t, float64(42), fake.bodies[0]["createdBy"])
	assert.Equal(t, float64(42), fake.bodies[0]["updatedBy"])
	assert.Equal(t, "N", fake.bodies[0]["code"])
}

func TestController_AddValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    Form
		missing []string
	}{
		{name: "all empty", form: Form{}, missing: []string{"code", "service", "nameTh", "nameEn"}},
		{name: "whitespace code", form: Form{Code: "  ", Service: "S", NameTh: "t", NameEn: "e"}, missing: []string{"code"}},
		{name: "missing nameEn", form: Form{Code: "A", Service: "S", NameTh: "t"}, missing: []string{"nameEn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeServer(seedClient(1, "A", "S1"))
			c := setupController(t, fake)
			requests := fake.total()

			c.OpenAdd()
			_, err := c.SubmitAdd(context.Background(), tt.form)
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.missing, validationErr.Fields)
			assert.Equal(t, MsgAddRequired, err.Error())
			assert.Equal(t, requests, fake.total(), "no request is made")
			assert.True(t, c.AddDialog().Open)
			assert.Equal(t, MsgAddRequired, c.AddDialog().Error)
			assert.Equal(t, 1, c.Cache().Len())
		})
	}
}

func TestController_AddDuplicate(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"))
	c := setupController(t, fake)
	before := c.Cache().All()

	c.OpenAdd()
	_, err := c.SubmitAdd(context.Background(), validForm("A", "S1"))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "Duplicate")
	assert.True(t, api.IsConflict(err))
	assert.Equal(t, before, c.Cache().All(), "cache unchanged")
	dialog := c.AddDialog()
	assert.True(t, dialog.Open)
	assert.Equal(t, MsgAddDuplicate, dialog.Error)
	assert.Equal(t, "A", dialog.Form.Code, "form keeps the input for another try")
}

func TestController_AddGenericFailure(t *testing.T) {
	fake := newFakeServer()
	c := setupController(t, fake)
	fake.failWith[http.MethodPost] = http.StatusBadRequest

	_, err := c.SubmitAdd(context.Background(), validForm("A", "S1"))
	require.Error(t, err)

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, MsgAddFailed, opErr.Message)
	assert.Contains(t, opErr.Detail(), "400")
	assert.Equal(t, MsgAddFailed, c.AddDialog().Error)
	assert.Equal(t, 0, c.Cache().Len())
}

func TestController_CloseAddClearsForm(t *testing.T) {
	c := setupController(t, newFakeServer())
	_, _ = c.SubmitAdd(context.Background(), Form{Code: "A"})
	require.True(t, c.AddDialog().Open)

	c.CloseAdd()
	assert.Equal(t, Dialog{}, c.AddDialog())
}

func TestController_EditReplacesOnlyTarget(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"), seedClient(2, "B", "S1"), seedClient(3, "C", "S2"))
	c := setupController(t, fake)
	before := c.Cache().All()

	require.NoError(t, c.OpenEdit(2))
	dialog := c.EditDialog()
	assert.True(t, dialog.Open)
	assert.Equal(t, FormFrom(before[1]), dialog.Form)
	id, ok := c.EditingID()
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)

	updated, err := c.SubmitEdit(context.Background(), Form{Code: "IGNORED", Service: " S5 ", NameTh: "th2", NameEn: "en2"})
	require.NoError(t, err)
	assert.Equal(t, "S5", updated.Service)
	assert.Equal(t, "B", updated.Code, "code is immutable")
	assert.Equal(t, "2024-06-06 12:00:00", updated.UpdatedAt, "server is authoritative for audit fields")
	assert.Equal(t, "42", updated.UpdatedBy)

	after := c.Cache().All()
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, updated, after[1])
	assert.Equal(t, before[2], after[2])

	require.Len(t, fake.bodies, 1)
	_, sentCode := fake.bodies[0]["code"]
	assert.False(t, sentCode, "code is not submitted")
	assert.Equal(t, float64(42), fake.bodies[0]["updatedBy"])

	assert.Equal(t, Dialog{}, c.EditDialog())
	_, ok = c.EditingID()
	assert.False(t, ok, "selection reset after success")
}

func TestController_EditValidation(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"))
	c := setupController(t, fake)
	before := c.Cache().All()
	requests := fake.total()

	require.NoError(t, c.OpenEdit(1))
	_, err := c.SubmitEdit(context.Background(), Form{Service: "S1", NameTh: "  ", NameEn: "en"})
	require.Error(t, err)

	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "required")
	assert.Equal(t, requests, fake.total(), "no request is made")
	assert.Equal(t, before, c.Cache().All())
	assert.Equal(t, MsgEditRequired, c.EditDialog().Error)
	assert.True(t, c.EditDialog().Open)
	_, ok := c.EditingID()
	assert.True(t, ok)
}

func TestController_EditFailure(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"))
	c := setupController(t, fake)
	before := c.Cache().All()
	fake.failWith[http.MethodPut] = http.StatusInternalServerError

	require.NoError(t, c.OpenEdit(1))
	_, err := c.SubmitEdit(context.Background(), validForm("A", "S2"))
	require.Error(t, err)

	assert.Equal(t, MsgEditFailed, err.Error())
	assert.Equal(t, before, c.Cache().All())
	assert.True(t, c.EditDialog().Open)
	assert.Equal(t, MsgEditFailed, c.EditDialog().Error)
}

func TestController_EditWithoutSelection(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"))
	c := setupController(t, fake)
	requests := fake.total()

	_, err := c.SubmitEdit(context.Background(), validForm("A", "S1"))
	assert.ErrorIs(t, err, ErrNoSelection)

	require.NoError(t, c.OpenEdit(1))
	c.CloseEdit()
	_, err = c.SubmitEdit(context.Background(), validForm("A", "S1"))
	assert.ErrorIs(t, err, ErrNoSelection, "closing the dialog resets the selection")
	assert.Equal(t, requests, fake.total())
}

func TestController_OpenUnknown(t *testing.T) {
	c := setupController(t, newFakeServer(seedClient(1, "A", "S1")))

	assert.ErrorIs(t, c.OpenEdit(99), ErrClientNotFound)
	assert.False(t, c.EditDialog().Open)
	assert.ErrorIs(t, c.OpenDelete(99), ErrClientNotFound)
	assert.False(t, c.DeleteDialog().Open)
}

func TestController_DeleteRemovesEntry(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"), seedClient(2, "B", "S1"))
	c := setupController(t, fake)
	before := c.Cache().Len()

	require.NoError(t, c.OpenDelete(2))
	assert.Equal(t, DeleteSummary{Code: "B", Name: "th-B / en-B"}, c.DeleteSummary())
	assert.True(t, c.DeleteDialog().Open)

	require.NoError(t, c.ConfirmDelete(context.Background()))
	assert.Equal(t, before-1, c.Cache().Len())
	_, ok := c.Cache().Find(2)
	assert.False(t, ok)
	_, ok = c.DeletingID()
	assert.False(t, ok)
	assert.False(t, c.DeleteDialog().Open)
	assert.Equal(t, 1, c.Grid().VisibleCount())
	assert.Equal(t, 1, fake.count(http.MethodDelete))
}

func TestController_DeleteFailureIsSurfaced(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"))
	c := setupController(t, fake)
	fake.failWith[http.MethodDelete] = http.StatusForbidden

	require.NoError(t, c.OpenDelete(1))
	err := c.ConfirmDelete(context.Background())
	require.Error(t, err)

	assert.Equal(t, MsgDeleteFailed, err.Error())
	assert.Equal(t, http.StatusForbidden, api.StatusCode(err))
	assert.Equal(t, 1, c.Cache().Len())
	assert.True(t, c.DeleteDialog().Open)
	assert.Equal(t, MsgDeleteFailed, c.DeleteDialog().Error)
	id, ok := c.DeletingID()
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestController_ConfirmDeleteWithoutSelection(t *testing.T) {
	fake := newFakeServer(seedClient(1, "A", "S1"))
	c := setupController(t, fake)

	assert.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNoSelection)
	require.NoError(t, c.OpenDelete(1))
	c.CloseDelete()
	assert.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNoSelection)
	assert.Equal(t, 0, fake.count(http.MethodDelete))
}

func TestController_Dispatch(t *testing.T) {
	c := setupController(t, newFakeServer(seedClient(1, "A", "S1")))

	require.NoError(t, c.Dispatch(RowAction{ID: 1, Action: "edit"}))
	assert.True(t, c.EditDialog().Open)

	require.NoError(t, c.Dispatch(RowAction{ID: 1, Action: "DELETE"}))
	assert.True(t, c.DeleteDialog().Open)

	assert.ErrorIs(t, c.Dispatch(RowAction{ID: 1, Action: "archive"}), ErrUnknownAction)
	assert.ErrorIs(t, c.Dispatch(RowAction{ID: 5, Action: "edit"}), ErrClientNotFound)
}

func TestParseRowAction(t *testing.T) {
	got, err := ParseRowAction("edit 12")
	require.NoError(t, err)
	assert.Equal(t, RowAction{ID: 12, Action: "edit"}, got)

	_, err = ParseRowAction("edit")
	assert.Error(t, err)
	_, err = ParseRowAction("edit twelve")
	assert.Error(t, err)
}

func TestController_RedrawKeepsGridState(t *testing.T) {
	var seed []map[string]interface{}
	for i := 1; i <= 25; i++ {
		seed = append(seed, seedClient(int64(i), fmt.Sprintf("C%02d", i), "S"))
	}
	fake := newFakeServer(seed...)
	c := setupController(t, fake)
	c.Grid().SetPage(2)

	_, err := c.SubmitAdd(context.Background(), validForm("C99", "S"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Grid().PageInfo().Page, "a write does not reset paging")

	c.Grid().Search("C0")
	require.NoError(t, c.OpenDelete(1))
	require.NoError(t, c.ConfirmDelete(context.Background()))
	assert.Equal(t, "C0", c.Grid().SearchTerm())
	assert.Equal(t, 8, c.Grid().VisibleCount())
}
