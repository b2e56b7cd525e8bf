package game

// Resolve decides a round. Both moves are assumed to have been validated for
// their sides; a pair with no beats relation either way is a tie.
func Resolve(c *Catalog, user, bot Move) Outcome {
	switch {
	case c.Beats(user, bot):
		return OutcomeUserWins
	case c.Beats(bot, user):
		return OutcomeBotWins
	default:
		return OutcomeTie
	}
}
