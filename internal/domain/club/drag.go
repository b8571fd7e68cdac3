package club

// DragState is the ephemeral source/target pair recorded while a card is
// being dragged between slots. It never mutates the squad; a completed
// drop resolves into an ExchangeCards call, a cancel just clears it.
type DragState struct {
	SourceIndex int
	TargetIndex int
	active      bool
	targeted    bool
}

func BeginDrag(sourceIndex int) (DragState, error) {
	if err := validSlotIndex(sourceIndex); err != nil {
		return DragState{}, err
	}
	return DragState{SourceIndex: sourceIndex, active: true}, nil
}

func (d DragState) WithTarget(targetIndex int) (DragState, error) {
	if err := validSlotIndex(targetIndex); err != nil {
		return DragState{}, err
	}

	d.TargetIndex = targetIndex
	d.targeted = true
	return d, nil
}

func (d DragState) Active() bool {
	return d.active
}

// Resolved reports the swap pair once both ends are known.
func (d DragState) Resolved() (source, target int, ok bool) {
	if !d.active || !d.targeted {
		return 0, 0, false
	}
	return d.SourceIndex, d.TargetIndex, true
}

// Clear returns the zero state, used on drop and on cancel.
func (d DragState) Clear() DragState {
	return DragState{}
}
