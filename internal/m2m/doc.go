// Package m2m infers implicit many-to-many relations from join tables and
// names them.
//
// For every join table the two foreign keys are ordered into endpoints A and
// B, a relation name and two field names are resolved (reusing a relation
// recorded by a previous run when there is one), and one list field is
// appended to each referenced model, pointing at the other.
//
// Self-relations keep a recorded relation name but always take fresh field
// names from the default convention: the field names are the only thing
// telling the two directions apart, and a stored pair cannot be trusted to
// map back onto the A/B columns.
package m2m
