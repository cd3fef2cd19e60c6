package cards

import "smartprice-backend/internal/model"

// defaultCards is the canonical card reference table. IDs are the issuing
// bank families used for offer matching; aliases cover bank-only names and
// the retail card products issued under each family. All alias comparison is
// case-insensitive, entries here are stored lowercase.
var defaultCards = []model.CanonicalCard{
	{
		ID: "HDFC Bank Credit Card",
		Aliases: []string{
			"hdfc", "hdfc bank", "hdfc credit card", "hdfc bank card",
			"hdfc bank millennia", "millennia",
			"hdfc bank regalia gold", "regalia", "regalia gold",
			"hdfc bank diners club black", "diners club black",
			"hdfc bank indianoil",
		},
	},
	{
		ID: "SBI Credit Card",
		Aliases: []string{
			"sbi", "sbi card", "sbi bank", "state bank of india",
			"sbi card simplyclick", "simplyclick",
			"sbi card simplysave", "simplysave",
			"sbi card elite", "bpcl sbi card octane",
		},
	},
	{
		ID: "ICICI Bank Credit Card",
		Aliases: []string{
			"icici", "icici bank", "icici credit card",
			"icici bank amazon pay", "amazon pay icici",
			"icici bank coral", "icici bank sapphiro",
		},
	},
	{
		ID: "Axis Bank Credit Card",
		Aliases: []string{
			"axis", "axis bank", "axis credit card",
			"axis bank ace", "axis bank magnus",
			"flipkart axis bank",
		},
	},
	{
		ID: "Kotak Mahindra Bank Credit Card",
		Aliases: []string{
			"kotak", "kotak mahindra", "kotak mahindra bank",
			"kotak league", "kotak 811",
		},
	},
	{
		ID: "American Express Credit Card",
		Aliases: []string{
			"amex", "american express",
			"american express membership rewards",
			"american express platinum travel",
		},
	},
}

// coBrandIssuers maps known co-brand card families to the canonical id of
// the issuing bank. Matched by substring after the exact and partial passes
// have failed.
var coBrandIssuers = map[string]string{
	"flipkart axis":    "Axis Bank Credit Card",
	"amazon pay icici": "ICICI Bank Credit Card",
	"amazon icici":     "ICICI Bank Credit Card",
	"bpcl sbi":         "SBI Credit Card",
	"indianoil hdfc":   "HDFC Bank Credit Card",
}

// Supported returns the canonical card names in registry order, for the
// /supported-cards endpoint.
func Supported() []string {
	names := make([]string, 0, len(defaultCards))
	for _, c := range defaultCards {
		names = append(names, c.ID)
	}
	return names
}
