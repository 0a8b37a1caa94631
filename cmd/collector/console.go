package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ganot/labelcap/internal/capture"
	"github.com/ganot/labelcap/internal/catalog"
	"github.com/ganot/labelcap/internal/dataset"
	"github.com/ganot/labelcap/internal/domain/record"
	"github.com/ganot/labelcap/internal/domain/schema"
	"github.com/ganot/labelcap/internal/domain/session"
	"github.com/ganot/labelcap/internal/export"
	"github.com/ganot/labelcap/internal/stats"
)

// console is the interactive command loop the operator drives during a
// collection session. Commands never terminate the loop on failure; errors
// are printed and the session continues.
type console struct {
	state    *session.State
	holder   *capture.Holder
	writer   *dataset.Writer
	exporter *export.Exporter
	tracker  *stats.Tracker
	samples  *catalog.Catalog // nil when the catalog is unavailable
	camera   capture.Settings
	runID    string
	logger   *slog.Logger
}

func (c *console) run(ctx context.Context, in io.Reader, out io.Writer) {
	fmt.Fprintf(out, "class: %s (type 'help' for commands)\n", c.state.CurrentClass())

	// Input is read on its own goroutine so a signal interrupts the loop
	// immediately instead of after the next line.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "> ")

		var line string
		select {
		case <-ctx.Done():
			return
		case text, ok := <-lines:
			if !ok {
				return
			}
			line = text
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			c.printHelp(out)
		case "classes":
			for _, id := range c.state.Classes() {
				marker := " "
				if id == c.state.CurrentClass() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, id)
			}
		case "class":
			if len(args) != 1 {
				fmt.Fprintln(out, "usage: class <ID>")
				continue
			}
			if err := c.state.SwitchClass(args[0]); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "class: %s\n", c.state.CurrentClass())
		case "fields":
			c.printFields(out)
		case "set":
			if len(args) < 2 {
				fmt.Fprintln(out, "usage: set <name> <value>")
				continue
			}
			c.setAttribute(out, args[0], strings.Join(args[1:], " "))
		case "reset":
			c.state.Reset()
			fmt.Fprintln(out, "attributes reset to defaults")
		case "save":
			c.save(ctx, out)
		case "stats":
			c.printStats(out)
		case "export":
			c.export(out)
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(out, "unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (c *console) printHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  classes             list object classes
  class <ID>          switch to a class
  fields              show attributes and current values
  set <name> <value>  set an attribute
  reset               restore class defaults
  save                capture the latest frame and persist it
  stats               per-class capture counts
  export              export all metadata to a single CSV
  quit                exit
`)
}

func (c *console) printFields(out io.Writer) {
	values := c.state.Values()
	for _, field := range schema.DescribeClass(c.state.Spec()) {
		line := fmt.Sprintf("  %s = %v", field.Name, values[field.Name])
		if field.Control == schema.ControlRadio {
			line += fmt.Sprintf("  (one of: %s)", strings.Join(field.Options, ", "))
		}
		fmt.Fprintln(out, line)
	}
}

func (c *console) setAttribute(out io.Writer, name, raw string) {
	attr, ok := c.state.Spec().Attribute(name)
	if !ok {
		fmt.Fprintf(out, "error: %v: %s\n", session.ErrUnknownAttribute, name)
		return
	}

	var value any = raw
	if attr.Kind == schema.KindBool {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			fmt.Fprintf(out, "error: %s expects true or false\n", name)
			return
		}
		value = parsed
	}

	if err := c.state.SetAttribute(name, value); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "%s = %v\n", name, value)
}

func (c *console) save(ctx context.Context, out io.Writer) {
	frame := c.holder.Latest()
	camera := record.CameraSettings{
		Width:  c.camera.Width,
		Height: c.camera.Height,
		FPS:    c.camera.FPS,
	}

	rec, err := record.Build(c.state, frame, camera, c.runID)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	res, err := c.writer.Persist(rec)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	c.tracker.Increment(rec.ClassID)
	c.indexSample(ctx, res.MetaPath)

	fmt.Fprintf(out, "saved %s\n", res.ImagePath)
}

func (c *console) indexSample(ctx context.Context, metaPath string) {
	if c.samples == nil {
		return
	}
	meta, err := dataset.ReadMeta(metaPath)
	if err == nil {
		err = c.samples.Insert(ctx, meta)
	}
	if err != nil {
		c.logger.Warn("failed to index sample in catalog", "path", metaPath, "error", err)
	}
}

func (c *console) printStats(out io.Writer) {
	counts, total := c.tracker.Snapshot()
	for _, id := range c.tracker.Classes() {
		fmt.Fprintf(out, "  %s: %d\n", id, counts[id])
	}
	fmt.Fprintf(out, "  total: %d\n", total)
}

func (c *console) export(out io.Writer) {
	summary, err := c.exporter.ExportAll(c.writer.Root(), "")
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "exported %d rows to %s", summary.Rows, summary.OutPath)
	if summary.Skipped > 0 {
		fmt.Fprintf(out, " (%d malformed files skipped)", summary.Skipped)
	}
	fmt.Fprintln(out)
}
