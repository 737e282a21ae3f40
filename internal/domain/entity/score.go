package entity

// Score is a 0-100 attractiveness rating for a priced deal.
type Score struct {
	Value       int
	Description string
	// Strong marks deals worth surfacing prominently.
	Strong bool
}
