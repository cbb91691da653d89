package maptui_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/flahallen61-boop/dto-map-builder/pkg/mapcmd"
	"github.com/flahallen61-boop/dto-map-builder/pkg/maptui"
)

func init() {
	// Keep rendered output stable regardless of the terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestActionModel_Success(t *testing.T) {
	t.Parallel()

	m := maptui.NewActionModel("initialization", "initializing")
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)
	time.Sleep(100 * time.Millisecond)

	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Initializing"))
		},
	)

	tm.Send(mapcmd.EventDone{})

	out, err := io.ReadAll(tm.FinalOutput(t, teatest.WithFinalTimeout(10*time.Second)))
	require.NoError(t, err)
	require.Contains(t, string(out), "Initialization complete.")
}

func TestActionModel_Error(t *testing.T) {
	t.Parallel()

	m := maptui.NewActionModel("initialization", "initializing")
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)
	time.Sleep(100 * time.Millisecond)

	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Initializing"))
		},
	)

	tm.Send(mapcmd.EventDone{Err: errors.New("test error")})

	out, err := io.ReadAll(tm.FinalOutput(t, teatest.WithFinalTimeout(10*time.Second)))
	require.NoError(t, err)
	require.Contains(t, string(out), "test error")
}

func TestActionModel_EndpointCall(t *testing.T) {
	t.Parallel()

	m := maptui.NewActionModel("preview", "previewing schema")
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)
	time.Sleep(100 * time.Millisecond)

	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Previewing schema"))
		},
	)

	tm.Send(mapcmd.EventCalled{Endpoint: "preview"})
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("✓ preview"))
		},
	)

	tm.Send(mapcmd.EventDone{})

	out, err := io.ReadAll(tm.FinalOutput(t, teatest.WithFinalTimeout(10*time.Second)))
	require.NoError(t, err)
	require.Contains(t, string(out), "Preview complete.")
}
