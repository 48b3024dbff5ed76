package housing

// FilterByBudget returns the listings whose price lies within the
// bound. Input order is preserved and listings without a price are
// never excluded.
func FilterByBudget(listings []Listing, b BudgetBound) []Listing {
	if b.IsZero() {
		return listings
	}
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if l.Price == nil || b.Contains(*l.Price) {
			out = append(out, l)
		}
	}
	return out
}
