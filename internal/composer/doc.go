// Package composer implements the composing buffer of the input
// session: an ordered sequence of input units with a cursor expressed
// in convert-target character units.
//
// Each Unit records one keystroke or pasted fragment together with its
// origin and the input style that produced it. The convert target (the
// string offered to the conversion engine) is re-derived from the
// units on demand: contiguous runs of roman-style units transliterate
// as a whole, direct and table-mapped units contribute their text
// literally, and boundary markers contribute nothing.
//
// All mutating operations clamp silently at the buffer edges and never
// return errors; keystroke-driven callers cannot pre-validate counts.
// The package maintains two invariants at all times:
//
//   - the cursor stays within [0, len(convert target)]
//   - splitting at the cursor yields before/after strings whose
//     concatenation reproduces the convert target exactly
//
// Splits that fall inside a transliteration run freeze the run: its
// units are replaced by one literal unit per derived character, which
// preserves the derived text while making the cut representable.
package composer
