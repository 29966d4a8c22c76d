// Package blackjack implements the rules engine of a multiplayer blackjack
// table.
//
// A Table owns one Player per seat and a Dealer. Each session collects the
// seating and round count through a Prompter, then plays every round in the
// same order: two cards to each player in seat order, two to the dealer,
// each player's hit/stand turn, the dealer's turn, and finally one Outcome
// per player.
//
// # Basic Usage
//
//	table := blackjack.NewTable(source, prompter, reporter,
//	    blackjack.WithLogger(logger),
//	)
//	if err := table.Run(ctx); err != nil {
//	    // deck.ErrExhausted and ErrAborted end a session early
//	}
//
// # Deterministic Testing
//
// Any CardSource can drive a table. deck.NewStacked deals a fixed sequence
// of ranks, so a whole session can be scripted together with a Prompter
// that replays canned answers.
//
// # Policies
//
// The dealer hits while below 17 and any answer other than "h" stands.
// Both are policy functions and can be replaced with WithDealerPolicy and
// WithChoiceParser.
package blackjack
