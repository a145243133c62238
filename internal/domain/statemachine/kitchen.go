package statemachine

import (
	"strings"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/pkg/apperror"
)

// Transition is one step the kitchen board offers for an order
type Transition struct {
	From      enum.KitchenStatus `json:"from"`
	To        enum.KitchenStatus `json:"to"`
	Direction string             `json:"direction"` // "forward" or "back"
}

// forward is the authoritative workflow; each status has exactly one successor
var forward = []Transition{
	{From: enum.KitchenStatusPending, To: enum.KitchenStatusInProgress, Direction: "forward"},
	{From: enum.KitchenStatusInProgress, To: enum.KitchenStatusReady, Direction: "forward"},
	{From: enum.KitchenStatusReady, To: enum.KitchenStatusCompleted, Direction: "forward"},
}

var (
	nextOf = func() map[enum.KitchenStatus]enum.KitchenStatus {
		m := make(map[enum.KitchenStatus]enum.KitchenStatus, len(forward))
		for _, t := range forward {
			m[t.From] = t.To
		}
		return m
	}()
	previousOf = func() map[enum.KitchenStatus]enum.KitchenStatus {
		m := make(map[enum.KitchenStatus]enum.KitchenStatus, len(forward))
		for _, t := range forward {
			m[t.To] = t.From
		}
		return m
	}()
)

// Initial is the status every new or edited order starts from
const Initial = enum.KitchenStatusPending

// Next returns the successor of status. ok is false for completed.
func Next(status enum.KitchenStatus) (enum.KitchenStatus, bool) {
	next, ok := nextOf[status]
	return next, ok
}

// Previous returns the predecessor of status. ok is false for pending.
func Previous(status enum.KitchenStatus) (enum.KitchenStatus, bool) {
	prev, ok := previousOf[status]
	return prev, ok
}

// Transitions lists the forward and backward steps available from each status
func Transitions() []Transition {
	out := make([]Transition, 0, len(forward)*2)
	out = append(out, forward...)
	for _, t := range forward {
		out = append(out, Transition{From: t.To, To: t.From, Direction: "back"})
	}
	return out
}

// ValidateTarget accepts any known status. Arbitrary reassignment is a supported recovery action.
func ValidateTarget(target enum.KitchenStatus) error {
	if target.IsValid() {
		return nil
	}
	known := make([]string, 0, len(enum.KitchenStatuses))
	for _, s := range enum.KitchenStatuses {
		known = append(known, s.String())
	}
	return apperror.NewFieldError("status",
		"unknown kitchen status '"+target.String()+"'. Valid statuses are: "+strings.Join(known, ", "))
}

// Apply moves order to target. Leaving completed clears the archived flag.
func Apply(order *entity.Order, target enum.KitchenStatus) error {
	if err := ValidateTarget(target); err != nil {
		return err
	}
	order.KitchenStatus = target
	if target != enum.KitchenStatusCompleted {
		order.IsArchived = false
	}
	return nil
}

// Reset puts an order back at the start of the workflow
func Reset(order *entity.Order) {
	order.KitchenStatus = Initial
	order.IsArchived = false
}

// ApplyItemEdit sends an order back to pending after its items change, whatever its previous status
func ApplyItemEdit(order *entity.Order) {
	Reset(order)
}

// Archive flags a completed order as archived. Other orders are left untouched.
func Archive(order *entity.Order) bool {
	if order.KitchenStatus != enum.KitchenStatusCompleted || order.IsArchived {
		return false
	}
	order.IsArchived = true
	return true
}

// Restore brings an order back to the board as completed
func Restore(order *entity.Order) {
	order.IsArchived = false
	order.KitchenStatus = enum.KitchenStatusCompleted
}
