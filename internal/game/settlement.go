package game

// settle applies the wager of every hand whose outcome has appeared since
// the last settlement. Each hand is settled at most once per round; ties
// settle without touching the ledger.
func (r *Round) settle() {
	for i, h := range r.hands {
		if h.Outcome == OutcomeNone || h.settled {
			continue
		}
		h.settled = true

		delta := h.Outcome.Delta(h.Bet)
		if delta != 0 {
			r.ledger.UpdateBalance(delta)
		}
		r.logger.Debug("Hand settled", "round", r.id, "hand", i, "outcome", h.Outcome, "bet", h.Bet, "delta", delta)
		r.emit(HandSettledEvent{eventTime: r.now(), HandIndex: i, Outcome: h.Outcome, Delta: delta})
	}
}
