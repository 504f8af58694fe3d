package slot_test

import (
	"testing"

	"slot-swapper/internal/domain/slot"
	"slot-swapper/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to slot.Status
		allowed  bool
	}{
		{slot.StatusBusy, slot.StatusSwappable, true},
		{slot.StatusSwappable, slot.StatusSwapPending, true},
		{slot.StatusSwapPending, slot.StatusBusy, true},
		{slot.StatusSwapPending, slot.StatusSwappable, true},
		{slot.StatusBusy, slot.StatusSwapPending, false},
		{slot.StatusSwappable, slot.StatusBusy, false},
		{slot.StatusBusy, slot.StatusBusy, false},
		{slot.StatusSwapPending, slot.StatusSwapPending, false},
	}
	for _, c := range cases {
		t.Run(c.from.String()+"->"+c.to.String(), func(t *testing.T) {
			assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, st := range slot.AllStatuses() {
		parsed, err := slot.ParseStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
		assert.True(t, parsed.IsValid())
	}

	_, err := slot.ParseStatus("swappable")
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, "UNKNOWN", slot.Status(0).String())
}
