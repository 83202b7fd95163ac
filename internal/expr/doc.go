/*
Package expr parses and evaluates calculator keypad arithmetic.

Input is restricted to what the keypad offers: numeric literals, the four
operators +, -, * and /, unary minus, and parentheses. Parse compiles an
input string into an Expr tree with standard precedence and left-to-right
associativity; Eval computes its decimal value.

Beyond evaluation the package answers the question the game actually cares
about: are two equations the same? Normalize collapses spacing differences
("2+3" vs "2 + 3"), and Canonical/FingerprintOf collapse commutative
reorderings ("9+1" vs "1+9") while keeping genuinely different equations
distinct ("6/2" vs "2*3").
*/
package expr
