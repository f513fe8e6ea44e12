// Package nummi implements a personal ledger stored as plain text files.
//
// A ledger is a directory tree of ".txt" files, each line of a file being an
// Entry: a date, a signed amount with its currency, a one letter tag and a
// free text. The package provides:
//   - Entry Model: parsing and formatting ledger lines, with a *ParseError
//     naming the malformed field.
//   - Ledger Reader: a lazy sequence of entries across all files of the tree,
//     that stops at the first error, so that validating a large ledger costs
//     nothing past the first bad line.
//   - Aggregation: per currency inflow and outflow totals, totals converted to
//     EUR with a conversion table, and a monthly series of EUR in/out/net and
//     cumulative sums.
//
// All amounts are exact decimals (Amount), no computation goes through binary
// floating point.
//
// Conversion rates are kept in a local cache handled by the cache package, and
// the nummi command in cmd exposes all of it.
package nummi
