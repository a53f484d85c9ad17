package importfilter

import "strings"

// Canonical column names recognized in trade-import datasets. Raw headers
// are trimmed and matched case-insensitively against this set; matches are
// rewritten to the canonical form, everything else passes through trimmed.
const (
	ColIndianImporterName   = "INDIAN IMPORTER NAME"
	ColAddress              = "ADDRESS"
	ColForeignExporterName  = "FOREIGN EXPORTER NAME"
	ColForeignCountry       = "FOREIGN COUNTRY"
	ColForeignExporterCity  = "FOREIGN EXPORTER CITY"
	ColIndianPort           = "INDIAN PORT"
	ColForeignPort          = "FOREIGN PORT"
	ColCHAName              = "CHA NAME"
	ColMode                 = "MODE"
	ColCity                 = "CITY"
	ColProductDescription   = "PRODUCT DESCRIPTION"
	ColDate                 = "DATE"
	ColQuantity             = "QUANTITY"
	ColUnit                 = "UNIT"
	ColUnitINR              = "UNIT INR"
	ColTotalValueINR        = "TOTAL ASS VALUE INR"
	ColDutyINR              = "DUTY IN INR"
	ColTotalValueForeign    = "TOTAL ASS VALUE IN FOREIGN CURRENCY"
	ColUnitRateForeign      = "UNIT RATE IN FOREIGN CURRENCY"
	ColForeignCurrencyLabel = "FOREIGN CURRENCY"
)

// canonicalColumns is the allow-list of recognized headers.
var canonicalColumns = []string{
	ColIndianImporterName,
	ColAddress,
	ColForeignExporterName,
	ColForeignCountry,
	ColForeignExporterCity,
	ColIndianPort,
	ColForeignPort,
	ColCHAName,
	ColMode,
	ColCity,
	ColProductDescription,
	ColDate,
	ColQuantity,
	ColUnit,
	ColUnitINR,
	ColTotalValueINR,
	ColDutyINR,
	ColTotalValueForeign,
	ColUnitRateForeign,
	ColForeignCurrencyLabel,
}

// numericColumns are canonical columns coerced to numbers at load time.
// Unparseable numeric cells become 0 so that aggregation over messy
// customs exports never loses rows.
var numericColumns = map[string]bool{
	ColQuantity:          true,
	ColUnitINR:           true,
	ColTotalValueINR:     true,
	ColDutyINR:           true,
	ColTotalValueForeign: true,
	ColUnitRateForeign:   true,
}

// canonicalByFold maps upper-cased header text to its canonical form.
var canonicalByFold = func() map[string]string {
	m := make(map[string]string, len(canonicalColumns))
	for _, name := range canonicalColumns {
		m[strings.ToUpper(name)] = name
	}
	return m
}()

// canonicalizeHeader trims a raw header and rewrites it to the canonical
// form when it matches the allow-list case-insensitively. Unrecognized
// headers are returned trimmed and otherwise untouched; they are simply
// never targeted by recognized filters.
func canonicalizeHeader(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := canonicalByFold[strings.ToUpper(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// AWPKeywords is the built-in vocabulary of aerial-work-platform and
// material-handling terms and brand names matched against the product
// description by the KeyAWPMachines filter. The list is fixed; callers
// select a subset of it per query.
var AWPKeywords = []string{
	"TELESCOPIC BOOMLIFT", "ARTICULATING BOOMLIFT", "SCISSOR LIFT",
	"AERIAL WORK PLATFORM", "AWP", "PERSONNEL LIFT", "BOOM LIFT", "JLG",
	"GENIE", "SKYJACK", "HAULOTTE", "DINGLI", "MAN LIFT", "PLATFORM LIFT",
	"FORKLIFT", "TELEHANDLER", "STACKER", "PALLET TRUCK", "CRANE", "HOIST",
}
