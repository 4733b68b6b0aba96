package script

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arplace/internal/app"
	"arplace/internal/commands"
	"arplace/internal/config"
)

func newRunner(t *testing.T, stop bool) (*Runner, *bytes.Buffer) {
	t.Helper()
	a, err := app.New(app.Options{Prefs: config.Default()})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	reg := commands.NewRegistry()
	a.RegisterCommands(context.Background(), reg)
	var out bytes.Buffer
	return &Runner{App: a, Registry: reg, Out: &out, StopOnError: stop}, &out
}

const session = `
# place two chairs and delete one
select Chair
place -x 0 -z 0
place -x 2 -z 0
tap focused
tap -control focused
list
`

func TestRunSession(t *testing.T) {
	rn, out := newRunner(t, false)
	res, err := rn.Run(context.Background(), strings.NewReader(session))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Lines)
	assert.Equal(t, 0, res.Errors)
	assert.Equal(t, 1, rn.App.Placement.Len())

	text := out.String()
	assert.Contains(t, text, "> select Chair")
	assert.Contains(t, text, "You are looking at Chair")
	assert.Contains(t, text, "Placed Chair")
	assert.Contains(t, text, "Removed Chair")
	assert.Contains(t, text, "1 placed, 0 loading")
	assert.Contains(t, text, "6 commands, 0 errors, 1 placed")
}

func TestRunContinuesAfterErrors(t *testing.T) {
	rn, out := newRunner(t, false)
	res, err := rn.Run(context.Background(), strings.NewReader("place\nbogus\nselect Oven\nplace\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Lines)
	assert.Equal(t, 2, res.Errors)
	assert.Equal(t, 1, rn.App.Placement.Len())
	assert.Contains(t, out.String(), "no model selected")
	assert.Contains(t, out.String(), "unknown command")
}

func TestRunStopsOnError(t *testing.T) {
	rn, _ := newRunner(t, true)
	res, err := rn.Run(context.Background(), strings.NewReader("select Lamp\nselect Chair\n"))
	assert.ErrorIs(t, err, app.ErrUnknownModel)
	assert.Equal(t, 1, res.Lines)
	_, ok := rn.App.Selection.Get()
	assert.False(t, ok)
}
