package clients

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"clientctl/internal/api"
	"clientctl/internal/grid"
	"clientctl/pkg/logging"
)

const (
	subsystem = "Controller"

	collectionPath = "api"

	// DefaultActorID stands in for the authenticated user on writes.
	DefaultActorID = 1
)

// Row actions understood by Dispatch.
const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// RowActions lists the actions rendered in every row, in display order.
var RowActions = []string{ActionEdit, ActionDelete}

// Columns are the fixed grid columns. Cells are produced by Row in the same order.
var Columns = []grid.Column{
	{Key: "code", Title: "CODE", Sortable: true, Searchable: true},
	{Key: "service", Title: "SERVICE", Sortable: true, Searchable: true},
	{Key: "nameTh", Title: "NAME (THAI)", Sortable: true, Searchable: true},
	{Key: "nameEn", Title: "NAME (ENG)", Sortable: true, Searchable: true},
	{Key: "createdBy", Title: "CREATED BY", Sortable: true, Searchable: true, Wide: true},
	{Key: "createdAt", Title: "CREATED AT", Sortable: true, Searchable: true, Wide: true},
	{Key: "updatedBy", Title: "UPDATED BY", Sortable: true, Searchable: true, Wide: true},
	{Key: "updatedAt", Title: "UPDATED AT", Sortable: true, Searchable: true, Wide: true},
	{Key: "actions", Title: "ACTIONS"},
}

// Row projects a client into grid cells aligned with Columns.
func Row(c Client) grid.Row {
	actions := make([]string, 0, len(RowActions))
	for _, a := range RowActions {
		actions = append(actions, a+" "+strconv.FormatInt(c.ID, 10))
	}
	return grid.Row{
		ID: c.ID,
		Cells: []string{
			c.Code, c.Service, c.NameTh, c.NameEn,
			c.CreatedBy, c.CreatedAt, c.UpdatedBy, c.UpdatedAt,
			strings.Join(actions, " | "),
		},
	}
}

// Requester is the subset of the HTTP client used by the Controller.
// *api.Client satisfies it.
type Requester interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
}

// Dialog is the state of one modal dialog.
type Dialog struct {
	Open  bool
	Form  Form
	Error string
}

// DeleteSummary is what the delete confirmation shows.
type DeleteSummary struct {
	Code string
	Name string
}

// RowAction names an action on a grid row.
type RowAction struct {
	ID     int64
	Action string
}

// ParseRowAction parses the "<action> <id>" text shown in the actions column.
func ParseRowAction(s string) (RowAction, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return RowAction{}, fmt.Errorf("invalid row action %q: expected \"<action> <id>\"", s)
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return RowAction{}, fmt.Errorf("invalid client id %q", fields[1])
	}
	return RowAction{ID: id, Action: strings.ToLower(fields[0])}, nil
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	// ActorID is sent as createdBy and updatedBy. Defaults to DefaultActorID.
	ActorID int
	// PageSize is applied after Bootstrap. Zero keeps the grid default.
	PageSize int
}

// Controller owns the cache, the grid and the three dialogs.
type Controller struct {
	requester Requester
	actorID   int
	pageSize  int

	cache *Cache
	grid  *grid.Grid

	add  Dialog
	edit Dialog
	del  Dialog

	editingID  int64
	editing    bool
	deletingID int64
	deleting   bool
	summary    DeleteSummary

	actions map[string]func(int64) error
}

// NewController creates a Controller with an empty cache and grid.
func NewController(requester Requester, opts ControllerOptions) *Controller {
	if opts.ActorID <= 0 {
		opts.ActorID = DefaultActorID
	}
	c := &Controller{
		requester: requester,
		actorID:   opts.ActorID,
		pageSize:  opts.PageSize,
		cache:     &Cache{},
		grid:      grid.New(Columns),
	}
	c.actions = map[string]func(int64) error{
		ActionEdit:   c.OpenEdit,
		ActionDelete: c.OpenDelete,
	}
	return c
}

// Cache returns the client cache.
func (c *Controller) Cache() *Cache { return c.cache }

// Grid returns the grid projecting the cache.
func (c *Controller) Grid() *grid.Grid { return c.grid }

// Bootstrap fetches the list, loads the cache and initialises the grid.
// On failure the grid is still initialised, empty, so the caller can retry
// with Refresh.
func (c *Controller) Bootstrap(ctx context.Context) error {
	list, err := c.fetch(ctx)
	if err != nil {
		logging.Error(subsystem, err, "Failed to load clients")
		c.cache.Load(nil)
		c.initGrid()
		return fmt.Errorf("loading clients: %w", err)
	}
	c.cache.Load(list)
	c.initGrid()
	logging.Debug(subsystem, "Loaded %d clients", c.cache.Len())
	return nil
}

// Refresh re-fetches the list and redraws, keeping page, sort and search.
// On failure the cache is left as it was.
func (c *Controller) Refresh(ctx context.Context) error {
	list, err := c.fetch(ctx)
	if err != nil {
		logging.Error(subsystem, err, "Failed to refresh clients")
		return fmt.Errorf("refreshing clients: %w", err)
	}
	c.cache.Load(list)
	c.Redraw()
	return nil
}

func (c *Controller) fetch(ctx context.Context) ([]Client, error) {
	var list []Client
	if err := c.requester.Get(ctx, collectionPath, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Controller) initGrid() {
	c.grid.Load(c.rows())
	if c.pageSize != 0 {
		c.grid.SetPageSize(c.pageSize)
	}
}

// Redraw re-projects the cache into the grid keeping its state.
func (c *Controller) Redraw() {
	c.grid.Redraw(c.rows())
}

func (c *Controller) rows() []grid.Row {
	all := c.cache.All()
	rows := make([]grid.Row, 0, len(all))
	for _, client := range all {
		rows = append(rows, Row(client))
	}
	return rows
}

// Dispatch routes a row action to its handler.
func (c *Controller) Dispatch(action RowAction) error {
	handler, ok := c.actions[strings.ToLower(action.Action)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action.Action)
	}
	return handler(action.ID)
}

// AddDialog returns the state of the add dialog.
func (c *Controller) AddDialog() Dialog { return c.add }

// OpenAdd opens the add dialog with an empty form.
func (c *Controller) OpenAdd() {
	c.add = Dialog{Open: true}
}

// CloseAdd closes the add dialog without submitting.
func (c *Controller) CloseAdd() {
	c.add = Dialog{}
}

// SubmitAdd validates the form and creates the client. On success the new
// client is first in the cache and the dialog is closed and cleared. On
// failure the dialog stays open with its error set and the cache is unchanged.
func (c *Controller) SubmitAdd(ctx context.Context, form Form) (Client, error) {
	form = form.Trimmed()
	c.add.Open = true
	c.add.Form = form

	if missing := missingFields(
		field{"code", form.Code}, field{"service", form.Service},
		field{"nameTh", form.NameTh}, field{"nameEn", form.NameEn},
	); len(missing) > 0 {
		c.add.Error = MsgAddRequired
		return Client{}, &ValidationError{Message: MsgAddRequired, Fields: missing}
	}

	body := createRequest{
		Code:      form.Code,
		Service:   form.Service,
		NameTh:    form.NameTh,
		NameEn:    form.NameEn,
		CreatedBy: c.actorID,
		UpdatedBy: c.actorID,
	}
	var created Client
	if err := c.requester.Post(ctx, collectionPath, body, &created); err != nil {
		msg := MsgAddFailed
		if api.IsConflict(err) {
			msg = MsgAddDuplicate
		}
		logging.Warn(subsystem, "Create of %s/%s failed: %v", form.Code, form.Service, err)
		c.add.Error = msg
		return Client{}, &OperationError{Op: "create", Message: msg, Err: err}
	}

	c.cache.Prepend(created)
	c.Redraw()
	c.add = Dialog{}
	logging.Info(subsystem, "Created client %d (%s/%s)", created.ID, created.Code, created.Service)
	return created, nil
}

// EditDialog returns the state of the edit dialog.
func (c *Controller) EditDialog() Dialog { return c.edit }

// EditingID returns the id targeted by the edit dialog.
func (c *Controller) EditingID() (int64, bool) { return c.editingID, c.editing }

// OpenEdit fills the edit form from the cached client and opens the dialog.
func (c *Controller) OpenEdit(id int64) error {
	client, ok := c.cache.Find(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrClientNotFound, id)
	}
	c.editingID, c.editing = id, true
	c.edit = Dialog{Open: true, Form: FormFrom(client)}
	return nil
}

// CloseEdit closes the edit dialog and clears the selection.
func (c *Controller) CloseEdit() {
	c.edit = Dialog{}
	c.editingID, c.editing = 0, false
}

// SubmitEdit validates the form and updates the selected client. Code is
// shown but never sent. The cache entry is replaced by the server's response.
func (c *Controller) SubmitEdit(ctx context.Context, form Form) (Client, error) {
	if !c.editing {
		return Client{}, ErrNoSelection
	}
	form = form.Trimmed()
	form.Code = c.edit.Form.Code
	c.edit.Form = form

	if missing := missingFields(
		field{"service", form.Service}, field{"nameTh", form.NameTh}, field{"nameEn", form.NameEn},
	); len(missing) > 0 {
		c.edit.Error = MsgEditRequired
		return Client{}, &ValidationError{Message: MsgEditRequired, Fields: missing}
	}

	id := c.editingID
	body := updateRequest{
		Service:   form.Service,
		NameTh:    form.NameTh,
		NameEn:    form.NameEn,
		UpdatedBy: c.actorID,
	}
	var updated Client
	if err := c.requester.Put(ctx, itemPath(id), body, &updated); err != nil {
		logging.Warn(subsystem, "Update of client %d failed: %v", id, err)
		c.edit.Error = MsgEditFailed
		return Client{}, &OperationError{Op: "update", Message: MsgEditFailed, Err: err}
	}

	if !c.cache.Replace(id, updated) {
		logging.Warn(subsystem, "Client %d left the cache while it was being edited", id)
	}
	c.Redraw()
	c.CloseEdit()
	logging.Info(subsystem, "Updated client %d", id)
	return updated, nil
}

// DeleteDialog returns the state of the delete confirmation.
func (c *Controller) DeleteDialog() Dialog { return c.del }

// DeleteSummary returns what the delete confirmation shows.
func (c *Controller) DeleteSummary() DeleteSummary { return c.summary }

// DeletingID returns the id targeted by the delete confirmation.
func (c *Controller) DeletingID() (int64, bool) { return c.deletingID, c.deleting }

// OpenDelete fills the confirmation summary and opens the dialog.
func (c *Controller) OpenDelete(id int64) error {
	client, ok := c.cache.Find(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrClientNotFound, id)
	}
	c.deletingID, c.deleting = id, true
	c.summary = DeleteSummary{Code: client.Code, Name: client.DisplayName()}
	c.del = Dialog{Open: true, Form: FormFrom(client)}
	return nil
}

// CloseDelete closes the confirmation and clears the selection.
func (c *Controller) CloseDelete() {
	c.del = Dialog{}
	c.summary = DeleteSummary{}
	c.deletingID, c.deleting = 0, false
}

// ConfirmDelete deletes the selected client. A failure is reported on the
// dialog, which stays open, and the cache is unchanged.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if !c.deleting {
		return ErrNoSelection
	}
	id := c.deletingID
	if err := c.requester.Delete(ctx, itemPath(id)); err != nil {
		logging.Error(subsystem, err, "Delete of client %d failed", id)
		c.del.Error = MsgDeleteFailed
		return &OperationError{Op: "delete", Message: MsgDeleteFailed, Err: err}
	}

	c.cache.Remove(id)
	c.Redraw()
	c.CloseDelete()
	logging.Info(subsystem, "Deleted client %d", id)
	return nil
}

func itemPath(id int64) string {
	return collectionPath + "/" + strconv.FormatInt(id, 10)
}

type field struct {
	name  string
	value string
}

// missingFields returns the names of empty fields in argument order.
func missingFields(fields ...field) []string {
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
