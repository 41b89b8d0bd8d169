package game

// startDealerTurn reveals the hole card and plays the dealer out. With no
// delay the dealer runs to completion before returning; otherwise each step
// is scheduled on the clock and re-checks that it still belongs to the
// round that scheduled it.
func (r *Round) startDealerTurn() {
	r.setPhase(DealerTurn)
	r.revealHole()

	gen := r.generation
	if r.delay <= 0 {
		for !r.dealerStep(gen) {
		}
		return
	}
	r.scheduleDealer(gen)
}

func (r *Round) scheduleDealer(gen uint64) {
	r.dealerTimer = r.clock.AfterFunc(r.delay, func() {
		r.do(func() {
			if r.dealerStep(gen) {
				return
			}
			r.scheduleDealer(gen)
		})
	}, "dealer")
}

// dealerStep performs one dealer decision and reports whether the dealer
// sequence is finished. A step from a cleared or restarted round is a no-op.
func (r *Round) dealerStep(gen uint64) bool {
	if gen != r.generation || r.phase != DealerTurn {
		r.logger.Debug("Dropping stale dealer step", "generation", gen, "current", r.generation)
		return true
	}

	if r.dealer.DealerShouldStop() {
		if r.dealer.IsBust() {
			r.dealerBusts()
		} else {
			r.finalizeOutcomes()
		}
		r.finishDealer()
		return true
	}

	card, ok := r.shoe.Draw()
	if !ok {
		r.logger.Warn("Shoe exhausted during dealer turn", "round", r.id, "dealer", r.dealer.Value())
		r.dealerTimer = nil
		return true
	}
	card = card.Up()
	r.dealer = append(r.dealer, card)
	r.logger.Debug("Dealer drew", "card", card, "value", r.dealer.Value())
	r.emit(CardDealtEvent{eventTime: r.now(), HandIndex: -1, Card: card})

	if r.dealer.IsBust() {
		r.dealerBusts()
		r.finishDealer()
		return true
	}
	return false
}

// dealerBusts pays every hand still without an outcome.
func (r *Round) dealerBusts() {
	for i, h := range r.hands {
		if h.Outcome == OutcomeNone {
			r.resolve(i, OutcomeDealerBusts)
		}
	}
}

// finalizeOutcomes compares every hand still without an outcome against the
// dealer's final total. Hands resolved earlier keep their outcome.
func (r *Round) finalizeOutcomes() {
	for i, h := range r.hands {
		if h.Outcome != OutcomeNone {
			continue
		}
		r.resolve(i, Resolve(h.Cards, r.dealer))
	}
}

func (r *Round) finishDealer() {
	r.dealerTimer = nil
	r.settle()
	r.setPhase(GameOver)
}
