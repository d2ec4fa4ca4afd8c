// Package datetoolbox parses, formats and validates date/time strings
// described by PHP date() style patterns such as "Y-m-d" or "H:i".
//
// Parsing is strict: the whole value must match the pattern, numeric fields
// must be in range and the resulting calendar date must exist. Components the
// pattern does not mention default to the Unix epoch, so "Y-m-d" yields
// midnight of the given day.
package datetoolbox
