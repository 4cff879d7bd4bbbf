// Package values classifies arbitrary Go values into the small set of kinds that the assertion
// library reasons about (undefined, null, boolean, number, string, date, regexp, function,
// array, object), and defines the coercion rules used for loose equality.
//
// Null is nil, or any nil pointer, func, chan, or interface. Undefined is the Undefined
// sentinel. A time.Time is a date and a *regexp.Regexp is a regexp. Bool, numeric, and string
// kinds (including named types) are primitives. Maps, structs, and pointers to non-nil values
// are objects; slices and arrays are arrays.
package values
