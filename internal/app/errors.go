package app

import "fmt"

// InitError is a panic recovered while bootstrapping.
type InitError struct {
	Message string
	Stack   string
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialization failed: %s", e.Message)
}
