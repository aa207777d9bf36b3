/*
transition.go - Reservation lifecycle transition table

PURPOSE:
  The legal status transitions, expressed once as an explicit table instead
  of ad hoc checks scattered across call sites:

      Pending  -> Approved | Rejected | Cancelled
      Approved -> Completed | Cancelled

  Rejected, Cancelled and Completed are terminal. Entry is Pending, or
  Approved directly when the resource auto-approves.
*/
package booking

type transitionKey struct {
	from ReservationStatus
	to   ReservationStatus
}

var legalTransitions = map[transitionKey]bool{
	{StatusPending, StatusApproved}:   true,
	{StatusPending, StatusRejected}:   true,
	{StatusPending, StatusCancelled}:  true,
	{StatusApproved, StatusCompleted}: true,
	{StatusApproved, StatusCancelled}: true,
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to ReservationStatus) bool {
	return legalTransitions[transitionKey{from: from, to: to}]
}

// checkTransition returns a StateError naming both states when the requested
// transition is illegal.
func checkTransition(r *Reservation, to ReservationStatus) error {
	if !CanTransition(r.Status, to) {
		return &StateError{ReservationID: r.ID, Current: r.Status, Requested: to}
	}
	return nil
}
