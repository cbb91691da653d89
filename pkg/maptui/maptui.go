package maptui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flahallen61-boop/dto-map-builder/pkg/genclient"
	"github.com/flahallen61-boop/dto-map-builder/pkg/log"
	"github.com/flahallen61-boop/dto-map-builder/pkg/mapcmd"
	"github.com/flahallen61-boop/dto-map-builder/pkg/schema"
)

// Commander is the workspace surface the TUI drives.
type Commander interface {
	Init() (bool, error)
	SetSource(location string, sourceType schema.SourceType, component string) error
	SetLocalSchema(jsBytes []byte, origin string) error
	Bind(field, expr string) error
	Unbind(field string) error
	SetClassName(name string) error
	Preview(ctx context.Context) (*genclient.PreviewResult, error)
	Register(ctx context.Context) (*genclient.RegisterResult, error)
	Generate(ctx context.Context) ([]genclient.GeneratedFile, error)
	Subscribe(f func(any))
}

// MapTUI runs workspace operations under a terminal UI. It implements
// io.Writer so log output lands in the UI scrollback rather than corrupting
// the drawn frame.
type MapTUI struct {
	ws Commander
	p  *tea.Program
	w  io.Writer
}

func NewMapTUI(w io.Writer, logLevel string, ws Commander) (*MapTUI, error) {
	c := &MapTUI{
		ws: ws,
		w:  w,
	}

	c.ws.Subscribe(c.broadcastEvent)

	logger, err := log.CreateHandler(c, logLevel, string(log.FormatText))
	if err != nil {
		return nil, fmt.Errorf("failed to create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logger))

	return c, nil
}

func (c *MapTUI) broadcastEvent(evt any) {
	if c.p != nil {
		c.p.Send(evt)
	}
}

func (c *MapTUI) Write(p []byte) (int, error) {
	c.broadcastEvent(logLineMsg(string(p)))

	return len(p), nil
}

func (c *MapTUI) Subscribe(f func(any)) {
	c.ws.Subscribe(f)
}

func (c *MapTUI) Init() (bool, error) {
	c.p = tea.NewProgram(NewActionModel("initialization", "initializing"), tea.WithOutput(c.w))

	go func() {
		_, err := c.ws.Init()
		c.broadcastEvent(mapcmd.EventDone{Err: err})
	}()

	if _, err := c.p.Run(); err != nil {
		return false, fmt.Errorf("failed to launch tui: %w", err)
	}

	return true, nil
}

func (c *MapTUI) SetSource(location string, sourceType schema.SourceType, component string) error {
	if location == "" {
		return errors.New("source location is required")
	}

	c.p = tea.NewProgram(NewActionModel("source update", "reading "+location), tea.WithOutput(c.w))

	go func() {
		err := c.ws.SetSource(location, sourceType, component)
		c.broadcastEvent(mapcmd.EventDone{Err: err})
	}()

	if _, err := c.p.Run(); err != nil {
		return fmt.Errorf("failed to launch tui: %w", err)
	}

	return nil
}

func (c *MapTUI) SetLocalSchema(jsBytes []byte, origin string) error {
	c.p = tea.NewProgram(NewActionModel("source update", "storing schema"), tea.WithOutput(c.w))

	go func() {
		err := c.ws.SetLocalSchema(jsBytes, origin)
		c.broadcastEvent(mapcmd.EventDone{Err: err})
	}()

	if _, err := c.p.Run(); err != nil {
		return fmt.Errorf("failed to launch tui: %w", err)
	}

	return nil
}

func (c *MapTUI) Bind(field, expr string) error {
	err := c.ws.Bind(field, expr)
	if err != nil {
		return fmt.Errorf("failed to bind target field: %w", err)
	}

	_, err = fmt.Fprintf(c.w, "Bound %s.\n", field)
	if err != nil {
		return fmt.Errorf("failed to write to output: %w", err)
	}

	return nil
}

func (c *MapTUI) Unbind(field string) error {
	err := c.ws.Unbind(field)
	if err != nil {
		return fmt.Errorf("failed to unbind target field: %w", err)
	}

	_, err = fmt.Fprintf(c.w, "Unbound %s.\n", field)
	if err != nil {
		return fmt.Errorf("failed to write to output: %w", err)
	}

	return nil
}

func (c *MapTUI) SetClassName(name string) error {
	err := c.ws.SetClassName(name)
	if err != nil {
		return fmt.Errorf("failed to set class name: %w", err)
	}

	_, err = fmt.Fprintf(c.w, "Set class name to %s.\n", name)
	if err != nil {
		return fmt.Errorf("failed to write to output: %w", err)
	}

	return nil
}

func (c *MapTUI) Preview(ctx context.Context) (*genclient.PreviewResult, error) {
	c.p = tea.NewProgram(NewActionModel("preview", "previewing schema"), tea.WithOutput(c.w))

	var (
		res *genclient.PreviewResult
		err error
	)

	go func() {
		res, err = c.ws.Preview(ctx)
		c.broadcastEvent(mapcmd.EventDone{Err: err})
	}()

	if _, err := c.p.Run(); err != nil {
		return nil, fmt.Errorf("failed to launch tui: %w", err)
	}

	if err != nil {
		return nil, err
	}

	return res, nil
}

func (c *MapTUI) Register(ctx context.Context) (*genclient.RegisterResult, error) {
	c.p = tea.NewProgram(NewActionModel("registration", "registering mapping"), tea.WithOutput(c.w))

	var (
		res *genclient.RegisterResult
		err error
	)

	go func() {
		res, err = c.ws.Register(ctx)
		c.broadcastEvent(mapcmd.EventDone{Err: err})
	}()

	if _, err := c.p.Run(); err != nil {
		return nil, fmt.Errorf("failed to launch tui: %w", err)
	}

	if err != nil {
		return nil, err
	}

	return res, nil
}

func (c *MapTUI) Generate(ctx context.Context) ([]genclient.GeneratedFile, error) {
	c.p = tea.NewProgram(NewGenerateModel(), tea.WithOutput(c.w))

	var (
		files []genclient.GeneratedFile
		err   error
	)

	go func() {
		files, err = c.ws.Generate(ctx)
		c.broadcastEvent(mapcmd.EventDone{Err: err})
	}()

	if _, err := c.p.Run(); err != nil {
		return nil, fmt.Errorf("failed to launch tui: %w", err)
	}

	if err != nil {
		return nil, err
	}

	return files, nil
}
