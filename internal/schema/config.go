package schema

// Config holds the heuristics the inferencer applies. Keyword lists are
// ordered priority lists; scanning is always in original column order with
// the listed keywords tried as case-insensitive substrings, so classification
// of ambiguous headers is deterministic and reproducible.
type Config struct {
	// DateThreshold is the fraction of a column's values that must parse
	// as dates for the column to qualify as the date column.
	DateThreshold float64

	// DateLayouts are the accepted date formats, tried in order per value.
	DateLayouts []string

	// CategoryColumn is the exact-match category header; CategoryKeyword
	// is the substring fallback.
	CategoryColumn  string
	CategoryKeyword string

	// AmountKeyword is the name fallback when no column is numeric.
	AmountKeyword string

	// Keyword lists for the optional enrichment roles.
	DescriptionKeywords   []string
	MerchantKeywords      []string
	PaymentMethodKeywords []string
	FlowTypeKeywords      []string
}

// DefaultConfig returns the standard heuristic configuration.
func DefaultConfig() *Config {
	return &Config{
		DateThreshold: 0.5,
		DateLayouts: []string{
			"2006-01-02",
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05Z07:00",
			"2006-01-02T15:04:05",
			"2006/01/02",
			"01/02/2006",
			"1/2/2006",
			"01/02/2006 15:04:05",
			"01-02-2006",
			"02 Jan 2006",
			"02-Jan-2006",
			"Jan 2, 2006",
			"January 2, 2006",
		},
		CategoryColumn:        "category",
		CategoryKeyword:       "cat",
		AmountKeyword:         "amount",
		DescriptionKeywords:   []string{"description", "desc", "memo", "name"},
		MerchantKeywords:      []string{"merchant", "vendor", "payee"},
		PaymentMethodKeywords: []string{"method", "payment"},
		FlowTypeKeywords:      []string{"type", "income", "expense"},
	}
}
