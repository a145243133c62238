package statemachine

import (
	"testing"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAndPrevious(t *testing.T) {
	tests := []struct {
		status   enum.KitchenStatus
		next     enum.KitchenStatus
		hasNext  bool
		previous enum.KitchenStatus
		hasPrev  bool
	}{
		{status: enum.KitchenStatusPending, next: enum.KitchenStatusInProgress, hasNext: true},
		{status: enum.KitchenStatusInProgress, next: enum.KitchenStatusReady, hasNext: true, previous: enum.KitchenStatusPending, hasPrev: true},
		{status: enum.KitchenStatusReady, next: enum.KitchenStatusCompleted, hasNext: true, previous: enum.KitchenStatusInProgress, hasPrev: true},
		{status: enum.KitchenStatusCompleted, previous: enum.KitchenStatusReady, hasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			next, ok := Next(tt.status)
			assert.Equal(t, tt.hasNext, ok)
			assert.Equal(t, tt.next, next)

			prev, ok := Previous(tt.status)
			assert.Equal(t, tt.hasPrev, ok)
			assert.Equal(t, tt.previous, prev)
		})
	}
}

func TestTransitions(t *testing.T) {
	transitions := Transitions()
	assert.Len(t, transitions, 6)
	assert.Contains(t, transitions, Transition{From: enum.KitchenStatusCompleted, To: enum.KitchenStatusReady, Direction: "back"})
}

func TestApply(t *testing.T) {
	t.Run("accepts any known target", func(t *testing.T) {
		order := &entity.Order{KitchenStatus: enum.KitchenStatusPending}
		require.NoError(t, Apply(order, enum.KitchenStatusCompleted))
		assert.Equal(t, enum.KitchenStatusCompleted, order.KitchenStatus)

		require.NoError(t, Apply(order, enum.KitchenStatusInProgress))
		assert.Equal(t, enum.KitchenStatusInProgress, order.KitchenStatus)
	})

	t.Run("rejects unknown target", func(t *testing.T) {
		order := &entity.Order{KitchenStatus: enum.KitchenStatusReady}
		err := Apply(order, "burnt")
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, err.Error(), "pending, in-progress, ready, completed")
		assert.Equal(t, enum.KitchenStatusReady, order.KitchenStatus)
	})

	t.Run("leaving completed clears archived flag", func(t *testing.T) {
		order := &entity.Order{KitchenStatus: enum.KitchenStatusCompleted, IsArchived: true}
		require.NoError(t, Apply(order, enum.KitchenStatusReady))
		assert.False(t, order.IsArchived)
	})
}

func TestApplyItemEdit(t *testing.T) {
	for _, status := range enum.KitchenStatuses {
		order := &entity.Order{KitchenStatus: status}
		ApplyItemEdit(order)
		assert.Equal(t, enum.KitchenStatusPending, order.KitchenStatus, "from %s", status)
	}
}

func TestArchive(t *testing.T) {
	for _, status := range enum.KitchenStatuses {
		order := &entity.Order{KitchenStatus: status}
		archived := Archive(order)
		if status == enum.KitchenStatusCompleted {
			assert.True(t, archived)
			assert.True(t, order.IsArchived)
		} else {
			assert.False(t, archived)
			assert.False(t, order.IsArchived)
		}
	}

	already := &entity.Order{KitchenStatus: enum.KitchenStatusCompleted, IsArchived: true}
	assert.False(t, Archive(already))
}

func TestRestore(t *testing.T) {
	order := &entity.Order{KitchenStatus: enum.KitchenStatusCompleted, IsArchived: true}
	Restore(order)
	assert.Equal(t, enum.KitchenStatusCompleted, order.KitchenStatus)
	assert.False(t, order.IsArchived)
}
