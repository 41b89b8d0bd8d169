package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/blackjack/blackjack"
)

const cardsPerLine = 13

// ShoeCmd prints a shuffled shoe so a seed can be inspected
type ShoeCmd struct {
	Decks int `short:"d" default:"1" help:"Decks in the shoe"`
}

func (c *ShoeCmd) Run(g *Globals) error {
	logger, err := g.newLogger(os.Stderr, "warn")
	if err != nil {
		return err
	}
	rng, seed, err := g.rng(logger)
	if err != nil {
		return err
	}
	shoe, err := blackjack.NewShoe(rng, c.Decks)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Shoe: %d deck(s), seed %d", c.Decks, seed)))
	writeShoe(os.Stdout, shoe)
	return nil
}

// writeShoe prints the shoe in dealing order with the cut marker in place
func writeShoe(w io.Writer, shoe *blackjack.Shoe) {
	var line []string
	flush := func() {
		if len(line) > 0 {
			fmt.Fprintln(w, strings.Join(line, " "))
			line = line[:0]
		}
	}
	for _, e := range shoe.Entries() {
		if e.Cut {
			line = append(line, "|CUT|")
		} else {
			line = append(line, e.Card.String())
		}
		if len(line) == cardsPerLine {
			flush()
		}
	}
	flush()
	fmt.Fprintf(w, "\n%d cards, cut card at position %d\n", shoe.Remaining(), shoe.CutIndex())
}
