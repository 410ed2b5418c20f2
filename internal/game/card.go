package game

// CardSize is the number of options on every card: a 5x5 grid minus the
// free center square.
const CardSize = 24

// Card is the fixed subset of the option pool issued to one connection.
// It never changes after issuance.
type Card struct {
	options []string
	set     map[string]struct{}
}

func newCard(options []string) Card {
	set := make(map[string]struct{}, len(options))
	for _, opt := range options {
		set[opt] = struct{}{}
	}
	return Card{options: options, set: set}
}

// Options returns the card's options in the order they were drawn.
func (c Card) Options() []string {
	out := make([]string, len(c.options))
	copy(out, c.options)
	return out
}

// Contains reports whether the option is on this card.
func (c Card) Contains(option string) bool {
	_, ok := c.set[option]
	return ok
}

// Size returns the number of options on the card.
func (c Card) Size() int {
	return len(c.options)
}
