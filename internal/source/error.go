package source

import "fmt"

// Error is a diagnostic record with the position it was produced at.
// The lexer and parser append Errors to an externally owned list; they are
// never thrown and never printed by the producer.
type Error struct {
	Pos     Position
	Message string
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos.String(), e.Message)
}
