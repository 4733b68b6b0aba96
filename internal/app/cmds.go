package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"cogentcore.org/core/math32"

	"arplace/internal/anchor"
	"arplace/internal/commands"
	"arplace/internal/placement"
)

var ErrAmbiguousHandle = errors.New("app: ambiguous handle")

// RegisterCommands adds the app's text commands to reg. Placements started by commands use ctx.
func (a *App) RegisterCommands(ctx context.Context, reg *commands.Registry) {
	selFS := flag.NewFlagSet("select", flag.ContinueOnError)
	index := selFS.Int("index", -1, "catalog index")
	reg.Register("select", "select -index N | select <title>", selFS, func(args []string) error {
		if *index >= 0 {
			return a.SelectIndex(*index)
		}
		if len(args) == 0 {
			return errors.New("select: need -index or a title")
		}
		return a.SelectTitle(strings.Join(args, " "))
	})

	placeFS := flag.NewFlagSet("place", flag.ContinueOnError)
	x := placeFS.Float64("x", 0, "floor x")
	z := placeFS.Float64("z", 0, "floor z")
	reg.Register("place", "place -x X -z Z: place the selection on the floor", placeFS, func([]string) error {
		p, err := a.PlaceAt(ctx, float32(*x), float32(*z))
		if err != nil {
			return err
		}
		select {
		case <-p.Done():
			_, err = p.Result()
			return err
		default:
			return nil
		}
	})

	tapFS := flag.NewFlagSet("tap", flag.ContinueOnError)
	control := tapFS.Bool("control", false, "tap the control instead of the model")
	reg.Register("tap", "tap [-control] <handle>: tap a placed model or its control", tapFS, func(args []string) error {
		h, err := a.handleArg(args)
		if err != nil {
			return err
		}
		obj, _ := a.Placement.Object(h)
		node := obj.ModelNode
		if *control {
			node = obj.ControlNode
		}
		if !a.TapNode(node) {
			return fmt.Errorf("tap: %s is not visible", a.Graph.Name(node))
		}
		return nil
	})

	reg.Register("delete", "delete <handle>: remove a placed object", nil, func(args []string) error {
		h, err := a.handleArg(args)
		if err != nil {
			return err
		}
		return a.Placement.Remove(h)
	})

	reg.Register("list", "list placed objects", nil, func([]string) error {
		snaps := a.Placement.Snapshot()
		a.Log.Logf("%d placed, %d loading", len(snaps), a.Placement.InFlight())
		for _, s := range snaps {
			mark := " "
			if s.Focused {
				mark = "*"
			}
			a.Log.Logf("%s %s %-6s at (%.2f, %.2f, %.2f) control=%t",
				mark, s.Handle.String()[:8], s.Model.Title, s.Position.X, s.Position.Y, s.Position.Z, s.ControlVisible)
		}
		return nil
	})

	reg.Register("models", "list the catalog", nil, func([]string) error {
		for i, m := range a.Catalog.Models() {
			a.Log.Logf("%d %s", i, m.Title)
		}
		return nil
	})

	reg.Register("status", "print the status label", nil, func([]string) error {
		a.Log.Log(a.Status())
		return nil
	})

	camFS := flag.NewFlagSet("camera", flag.ContinueOnError)
	cx := camFS.Float64("x", 0, "")
	cy := camFS.Float64("y", 1.6, "")
	cz := camFS.Float64("z", 3, "")
	reg.Register("camera", "camera -x X -y Y -z Z: move the camera and run one update", camFS, func([]string) error {
		a.Update(math32.Vec3(float32(*cx), float32(*cy), float32(*cz)))
		return nil
	})

	reg.Register("lose-tracking", "pause every anchor", nil, func([]string) error {
		a.SetTracking(anchor.Paused)
		return nil
	})
	reg.Register("regain-tracking", "resume every anchor", nil, func([]string) error {
		a.SetTracking(anchor.Tracking)
		return nil
	})

	reg.Register("grid", "grid on|off", nil, func(args []string) error {
		on, err := onOff("grid", args)
		if err != nil {
			return err
		}
		a.Prefs.GridVisible = on
		a.savePrefs()
		return nil
	})
	reg.Register("fps", "fps on|off", nil, func(args []string) error {
		on, err := onOff("fps", args)
		if err != nil {
			return err
		}
		a.Prefs.ShowFPS = on
		a.savePrefs()
		return nil
	})

	reg.Register("help", "list commands", nil, func([]string) error {
		for _, line := range reg.Help() {
			a.Log.Log(line)
		}
		return nil
	})
}

func onOff(name string, args []string) (bool, error) {
	if len(args) == 1 {
		switch args[0] {
		case "on":
			return true, nil
		case "off":
			return false, nil
		}
	}
	return false, fmt.Errorf("%s: want on or off", name)
}

// handleArg resolves a full handle or a unique prefix of one. "focused" names the focused object.
func (a *App) handleArg(args []string) (placement.Handle, error) {
	if len(args) != 1 {
		return placement.Handle{}, errors.New("need exactly one handle")
	}
	s := args[0]
	if s == "focused" {
		if h, ok := a.Placement.Focused(); ok {
			return h, nil
		}
		return placement.Handle{}, fmt.Errorf("%w: nothing focused", placement.ErrNotFound)
	}
	if h, err := placement.ParseHandle(s); err == nil {
		if _, ok := a.Placement.Object(h); !ok {
			return h, fmt.Errorf("%w: %s", placement.ErrNotFound, h)
		}
		return h, nil
	}
	var match []placement.Handle
	for _, h := range a.Placement.Handles() {
		if strings.HasPrefix(h.String(), s) {
			match = append(match, h)
		}
	}
	switch len(match) {
	case 0:
		return placement.Handle{}, fmt.Errorf("%w: %s", placement.ErrNotFound, s)
	case 1:
		return match[0], nil
	}
	return placement.Handle{}, fmt.Errorf("%w: %s", ErrAmbiguousHandle, s)
}
