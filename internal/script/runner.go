package script

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"arplace/internal/app"
	"arplace/internal/commands"
)

// Runner drives an App from a script of command lines, without a window. After each line it
// waits for placements to settle so the next line sees their result, then prints what the line
// logged.
type Runner struct {
	App         *app.App
	Registry    *commands.Registry
	Out         io.Writer
	StopOnError bool

	seq int
}

// Result summarizes a run.
type Result struct {
	Lines  int
	Errors int
}

// Run executes every line read from r.
func (rn *Runner) Run(ctx context.Context, r io.Reader) (Result, error) {
	var res Result
	_, rn.seq = rn.App.Log.Since(0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res.Lines++
		fmt.Fprintln(rn.Out, commandStyle().Render("> "+line))

		err := rn.Registry.Run(line)
		if werr := rn.App.Wait(ctx); werr != nil {
			return res, werr
		}
		rn.flush()
		if err != nil {
			res.Errors++
			fmt.Fprintln(rn.Out, errorStyle().Render(err.Error()))
			if rn.StopOnError {
				return res, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}
	fmt.Fprintln(rn.Out, summaryStyle().Render(fmt.Sprintf("%d commands, %d errors, %d placed",
		res.Lines, res.Errors, rn.App.Placement.Len())))
	return res, nil
}

// flush prints the log lines written since the last flush, without their timestamps.
func (rn *Runner) flush() {
	var lines []string
	lines, rn.seq = rn.App.Log.Since(rn.seq)
	for _, l := range lines {
		if i := strings.Index(l, "] "); strings.HasPrefix(l, "[") && i > 0 {
			l = l[i+2:]
		}
		fmt.Fprintln(rn.Out, logStyle().Render(l))
	}
}
