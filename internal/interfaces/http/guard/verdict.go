package guard

import "github.com/adebold/Commerce-Studio-sub022/internal/interfaces/http/dto"

// Verdict is the outcome of evaluating a guard against a request: either
// proceed, or halt with an HTTP status and a response body. The two states
// are mutually exclusive; a verdict can only be built through Proceed or
// Halt. The zero value proceeds.
type Verdict struct {
	halted bool
	status int
	body   dto.ErrorResponse
}

// Proceed returns the passing verdict.
func Proceed() Verdict {
	return Verdict{}
}

// Halt returns a verdict that stops the chain with the given status and body.
func Halt(status int, body dto.ErrorResponse) Verdict {
	return Verdict{
		halted: true,
		status: status,
		body:   body,
	}
}

// Halted reports whether the verdict stops the chain.
func (v Verdict) Halted() bool {
	return v.halted
}

// Status returns the HTTP status of a halting verdict, 0 otherwise.
func (v Verdict) Status() int {
	return v.status
}

// Body returns the response body of a halting verdict.
func (v Verdict) Body() dto.ErrorResponse {
	return v.body
}
