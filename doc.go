// Package importfilter loads tabular trade-import datasets and filters
// them with composable predicates.
//
// The package parses CSV/TXT (fields separated by two or more whitespace
// characters), XLSX (first sheet), and Parquet uploads, optionally
// wrapped in gzip, bzip2, xz, or zstd compression. Loading normalizes
// headers against a canonical column set, coerces the DATE column with
// day-first parsing (dropping rows whose date cannot be parsed), and
// zero-fills unparseable numeric cells.
//
// Tables are immutable: Apply evaluates a Criteria map as a sequential
// intersection of predicates and returns a new table sharing the input's
// rows. Filtered tables serialize back to CSV or a single-sheet XLSX
// workbook via Export.
//
//	table, err := importfilter.Load(raw, "imports.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//	filtered := importfilter.Apply(table, importfilter.Criteria{
//		importfilter.ColIndianPort:  importfilter.OneOf("NHAVA SHEVA", "CHENNAI"),
//		importfilter.ColCHAName:     importfilter.Contains("logistics"),
//		importfilter.KeyAWPMachines: importfilter.MatchesAny("CRANE", "FORKLIFT"),
//	})
//	err = importfilter.WriteCSV(filtered, os.Stdout)
package importfilter
