package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"clientctl/internal/api"
	"clientctl/internal/clients"
	"clientctl/internal/clients/clientstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOutput struct {
	buf bytes.Buffer
}

func (o *recordingOutput) Writer() io.Writer { return &o.buf }

func (o *recordingOutput) OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(&o.buf, format+"\n", args...)
}

func (o *recordingOutput) Info(format string, args ...interface{}) {
	fmt.Fprintf(&o.buf, "INFO "+format+"\n", args...)
}

func (o *recordingOutput) Success(format string, args ...interface{}) {
	fmt.Fprintf(&o.buf, "OK "+format+"\n", args...)
}

func (o *recordingOutput) Warning(format string, args ...interface{}) {
	fmt.Fprintf(&o.buf, "WARN "+format+"\n", args...)
}

func (o *recordingOutput) Error(format string, args ...interface{}) {
	fmt.Fprintf(&o.buf, "ERROR "+format+"\n", args...)
}

func (o *recordingOutput) String() string { return o.buf.String() }

// scriptedPrompter answers prompts from a queue. An exhausted queue cancels.
type scriptedPrompter struct {
	answers  []string
	defaults []string
	labels   []string
}

func (p *scriptedPrompter) next(label, def string) (string, error) {
	p.labels = append(p.labels, label)
	p.defaults = append(p.defaults, def)
	if len(p.answers) == 0 {
		return "", ErrCancelled
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	if a == "<default>" {
		return def, nil
	}
	return a, nil
}

func (p *scriptedPrompter) Prompt(label, def string) (string, error) {
	return p.next(label, def)
}

func (p *scriptedPrompter) Confirm(question string, def bool) (bool, error) {
	a, err := p.next(question, "")
	if err != nil {
		return false, err
	}
	return a == "y", nil
}

type fixture struct {
	srv      *clientstest.Server
	ctrl     *clients.Controller
	out      *recordingOutput
	prompter *scriptedPrompter
	base     *BaseCommand
}

func setup(t *testing.T, answers ...string) *fixture {
	t.Helper()
	srv := clientstest.NewServer(t,
		clientstest.Seed(1, "ACME", "billing"),
		clientstest.Seed(2, "BETA", "crm"),
		clientstest.Seed(3, "CORE", "billing"),
	)
	client, err := api.NewClient(api.Options{BaseURL: srv.Endpoint(), HTTPClient: srv.Client()})
	require.NoError(t, err)

	ctrl := clients.NewController(client, clients.ControllerOptions{ActorID: 7})
	require.NoError(t, ctrl.Bootstrap(context.Background()))

	f := &fixture{
		srv:      srv,
		ctrl:     ctrl,
		out:      &recordingOutput{},
		prompter: &scriptedPrompter{answers: answers},
	}
	f.base = NewBaseCommand(ctrl, f.out, f.prompter)
	return f
}

func TestRegistry(t *testing.T) {
	f := setup(t)
	r := NewRegistry()
	r.Register("exit", NewExitCommand(f.base))
	r.Register("list", NewListCommand(f.base))

	cmd, ok := r.Get("quit")
	require.True(t, ok)
	assert.Equal(t, "exit", cmd.Usage())

	_, ok = r.Get("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"exit", "list"}, r.List())
	assert.Equal(t, []string{"exit", "list", "ls", "q", "quit"}, r.AllCompletions())
}

func TestListCommand(t *testing.T) {
	f := setup(t)
	cmd := NewListCommand(f.base)

	require.NoError(t, cmd.Execute(context.Background(), nil))
	out := f.out.String()
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "edit 1 | delete 1")
	assert.Contains(t, out, "Total Rows: 3")
	assert.NotContains(t, out, "CREATED AT")

	require.NoError(t, cmd.Execute(context.Background(), []string{"wide"}))
	assert.Contains(t, f.out.String(), "CREATED AT")

	assert.Error(t, cmd.Execute(context.Background(), []string{"narrow"}))
}

func TestSearchCommands(t *testing.T) {
	f := setup(t)
	search := NewSearchCommand(f.base)
	clear := NewClearSearchCommand(f.base)

	assert.Error(t, search.Execute(context.Background(), nil))

	require.NoError(t, search.Execute(context.Background(), []string{"billing"}))
	assert.Equal(t, 2, f.ctrl.Grid().VisibleCount())
	assert.Contains(t, f.out.String(), "Total Rows: 2")

	require.NoError(t, search.Execute(context.Background(), []string{"billing", "core"}))
	assert.Equal(t, 1, f.ctrl.Grid().VisibleCount())

	require.NoError(t, clear.Execute(context.Background(), nil))
	assert.Equal(t, 3, f.ctrl.Grid().VisibleCount())
	assert.Equal(t, "", f.ctrl.Grid().SearchTerm())
}

func TestSortCommand(t *testing.T) {
	f := setup(t)
	cmd := NewSortCommand(f.base)

	require.NoError(t, cmd.Execute(context.Background(), []string{"code", "desc"}))
	rows := f.ctrl.Grid().PageRows()
	require.Len(t, rows, 3)
	assert.Equal(t, int64(3), rows[0].ID)

	err := cmd.Execute(context.Background(), []string{"actions"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "choose one of: code")

	assert.Error(t, cmd.Execute(context.Background(), []string{"code", "sideways"}))
	assert.Contains(t, cmd.Completions(""), "nameEn")
	assert.NotContains(t, cmd.Completions(""), "actions")
}

func TestPageAndSizeCommands(t *testing.T) {
	f := setup(t)
	page := NewPageCommand(f.base)
	size := NewSizeCommand(f.base)
	ctx := context.Background()

	require.NoError(t, size.Execute(ctx, []string{"1"}))
	assert.Equal(t, 1, f.ctrl.Grid().PageSize())
	assert.Equal(t, 1, f.ctrl.Grid().VisibleCount(), "visible count is the page length")

	require.NoError(t, page.Execute(ctx, []string{"next"}))
	assert.Equal(t, 1, f.ctrl.Grid().PageInfo().Page)

	require.NoError(t, page.Execute(ctx, []string{"last"}))
	assert.Equal(t, 2, f.ctrl.Grid().PageInfo().Page)

	require.NoError(t, page.Execute(ctx, []string{"next"}))
	assert.Contains(t, f.out.String(), "Already on the last page")

	require.NoError(t, page.Execute(ctx, []string{"1"}))
	assert.Equal(t, 0, f.ctrl.Grid().PageInfo().Page)

	assert.Error(t, page.Execute(ctx, []string{"0"}))
	assert.Error(t, page.Execute(ctx, []string{"x"}))

	require.NoError(t, size.Execute(ctx, []string{"all"}))
	assert.Equal(t, 3, f.ctrl.Grid().VisibleCount())
	assert.Error(t, size.Execute(ctx, []string{"-2"}))
}

func TestRefreshCommand(t *testing.T) {
	f := setup(t)
	before := f.srv.Count(http.MethodGet)

	require.NoError(t, NewRefreshCommand(f.base).Execute(context.Background(), nil))
	assert.Equal(t, before+1, f.srv.Count(http.MethodGet))
	assert.Contains(t, f.out.String(), "Loaded 3 clients")
}

func TestShowCommand(t *testing.T) {
	f := setup(t)
	cmd := NewShowCommand(f.base)

	require.NoError(t, cmd.Execute(context.Background(), []string{"2"}))
	assert.Contains(t, f.out.String(), "en-BETA")

	assert.ErrorIs(t, cmd.Execute(context.Background(), []string{"99"}), clients.ErrClientNotFound)
	assert.Error(t, cmd.Execute(context.Background(), []string{"abc"}))
	assert.ElementsMatch(t, []string{"1", "2", "3"}, cmd.Completions(""))
}

func TestAddCommand(t *testing.T) {
	t.Run("creates and prepends", func(t *testing.T) {
		f := setup(t, "NEW", "crm", "ใหม่", "New")
		require.NoError(t, NewAddCommand(f.base).Execute(context.Background(), nil))

		assert.Equal(t, 4, f.ctrl.Cache().Len())
		first := f.ctrl.Cache().All()[0]
		assert.Equal(t, "NEW", first.Code)
		assert.False(t, f.ctrl.AddDialog().Open)
		assert.Contains(t, f.out.String(), "Created client 101 (NEW)")
		assert.Equal(t, []string{"Code", "Service", "Name (Thai)", "Name (Eng)"}, f.prompter.labels)

		bodies := f.srv.Bodies()
		require.Len(t, bodies, 1)
		assert.EqualValues(t, 7, bodies[0]["createdBy"])
	})

	t.Run("required fields then retry keeps input", func(t *testing.T) {
		f := setup(t,
			"NEW", "", "ใหม่", "New",
			"y",
			"<default>", "crm", "<default>", "<default>",
		)
		require.NoError(t, NewAddCommand(f.base).Execute(context.Background(), nil))

		assert.Contains(t, f.out.String(), clients.MsgAddRequired)
		assert.Equal(t, 1, f.srv.Count(http.MethodPost), "validation failure sends nothing")
		assert.Equal(t, 4, f.ctrl.Cache().Len())
		assert.Equal(t, "NEW", f.prompter.defaults[5], "retry offers the typed code")
	})

	t.Run("duplicate then give up", func(t *testing.T) {
		f := setup(t, "ACME", "billing", "x", "y", "n")
		require.NoError(t, NewAddCommand(f.base).Execute(context.Background(), nil))

		assert.Contains(t, f.out.String(), clients.MsgAddDuplicate)
		assert.Equal(t, 3, f.ctrl.Cache().Len())
		assert.False(t, f.ctrl.AddDialog().Open)
	})

	t.Run("cancel closes the dialog", func(t *testing.T) {
		f := setup(t, "NEW")
		require.NoError(t, NewAddCommand(f.base).Execute(context.Background(), nil))

		assert.Contains(t, f.out.String(), "Cancelled")
		assert.False(t, f.ctrl.AddDialog().Open)
		assert.Equal(t, 0, f.srv.Count(http.MethodPost))
	})
}

func TestEditCommand(t *testing.T) {
	t.Run("updates in place", func(t *testing.T) {
		f := setup(t, "sales", "<default>", "Beta Corp")
		require.NoError(t, NewEditCommand(f.base).Execute(context.Background(), []string{"2"}))

		got, ok := f.ctrl.Cache().Find(2)
		require.True(t, ok)
		assert.Equal(t, "sales", got.Service)
		assert.Equal(t, "Beta Corp", got.NameEn)
		assert.Equal(t, "BETA", got.Code)
		assert.Equal(t, []string{"crm", "th-BETA", "en-BETA"}, f.prompter.defaults)
		assert.Contains(t, f.out.String(), "Editing client 2, code BETA")

		bodies := f.srv.Bodies()
		require.Len(t, bodies, 1)
		assert.NotContains(t, bodies[0], "code")
		_, editing := f.ctrl.EditingID()
		assert.False(t, editing)
	})

	t.Run("server failure keeps dialog until declined", func(t *testing.T) {
		f := setup(t, "sales", "a", "b", "n")
		f.srv.FailWith(http.MethodPut, http.StatusInternalServerError)
		require.NoError(t, NewEditCommand(f.base).Execute(context.Background(), []string{"2"}))

		out := f.out.String()
		assert.Contains(t, out, clients.MsgEditFailed)
		assert.Contains(t, out, "Cause:")
		got, _ := f.ctrl.Cache().Find(2)
		assert.Equal(t, "crm", got.Service)
		assert.False(t, f.ctrl.EditDialog().Open)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := setup(t)
		err := NewEditCommand(f.base).Execute(context.Background(), []string{"42"})
		assert.ErrorIs(t, err, clients.ErrClientNotFound)
	})
}

func TestDeleteCommand(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := setup(t, "y")
		require.NoError(t, NewDeleteCommand(f.base).Execute(context.Background(), []string{"3"}))

		assert.Contains(t, f.out.String(), "CORE")
		_, ok := f.ctrl.Cache().Find(3)
		assert.False(t, ok)
		assert.Equal(t, 2, f.srv.Len())
		assert.Contains(t, f.out.String(), "Deleted client 3")
	})

	t.Run("declined sends nothing", func(t *testing.T) {
		f := setup(t, "n")
		require.NoError(t, NewDeleteCommand(f.base).Execute(context.Background(), []string{"3"}))

		assert.Equal(t, 0, f.srv.Count(http.MethodDelete))
		assert.Equal(t, 3, f.ctrl.Cache().Len())
		_, deleting := f.ctrl.DeletingID()
		assert.False(t, deleting)
	})

	t.Run("failure is surfaced and retried", func(t *testing.T) {
		f := setup(t, "y", "y", "n")
		f.srv.FailWith(http.MethodDelete, http.StatusInternalServerError)
		require.NoError(t, NewDeleteCommand(f.base).Execute(context.Background(), []string{"1"}))

		assert.Equal(t, 2, f.srv.Count(http.MethodDelete))
		assert.Equal(t, 2, strings.Count(f.out.String(), clients.MsgDeleteFailed))
		assert.Equal(t, 3, f.ctrl.Cache().Len())
	})
}

func TestHelpAndExit(t *testing.T) {
	f := setup(t)
	r := NewRegistry()
	help := NewHelpCommand(f.base, r)
	r.Register("help", help)
	r.Register("exit", NewExitCommand(f.base))

	require.NoError(t, help.Execute(context.Background(), nil))
	assert.Contains(t, f.out.String(), "Available commands:")

	require.NoError(t, help.Execute(context.Background(), []string{"quit"}))
	assert.Contains(t, f.out.String(), "Aliases: quit, q")

	require.NoError(t, help.Execute(context.Background(), []string{"bogus"}))
	assert.Contains(t, f.out.String(), "Unknown command: bogus")

	assert.ErrorIs(t, NewExitCommand(f.base).Execute(context.Background(), nil), ErrExit)
}
