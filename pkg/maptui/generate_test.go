package maptui_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/flahallen61-boop/dto-map-builder/pkg/mapcmd"
	"github.com/flahallen61-boop/dto-map-builder/pkg/maptui"
)

func TestGenerateModel_Success(t *testing.T) {
	t.Parallel()

	m := maptui.NewGenerateModel()
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)
	time.Sleep(100 * time.Millisecond)

	tm.Send(mapcmd.EventSetArtifactTotal(2))
	tm.Send(mapcmd.EventWritingArtifact("customer_dto.java"))
	tm.Send(mapcmd.EventWroteArtifact{Name: "customer_dto.java"})

	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("✓ customer_dto.java"))
		},
	)

	tm.Send(mapcmd.EventWritingArtifact("customer_dto_mapper.java"))
	tm.Send(mapcmd.EventWroteArtifact{Name: "customer_dto_mapper.java"})
	tm.Send(mapcmd.EventDone{})

	out, err := io.ReadAll(tm.FinalOutput(t, teatest.WithFinalTimeout(10*time.Second)))
	require.NoError(t, err)
	require.Contains(t, string(out), "Done! Wrote 2 files.")
}
