package graphql

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// ErrGraphQL marks a response whose errors array was not empty.
var ErrGraphQL = errors.New("graphql error")

// ResponseError carries the errors array of a failed operation.
type ResponseError struct {
	Operation string
	Errors    gqlerror.List
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Errors.Error())
}

func (e *ResponseError) Unwrap() error {
	return ErrGraphQL
}

// Messages returns the message of each upstream error.
func (e *ResponseError) Messages() []string {
	out := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		out = append(out, ge.Message)
	}
	return out
}
