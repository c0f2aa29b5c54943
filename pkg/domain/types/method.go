package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Method selects which scoring formula branch applies to an assessment.
type Method string

const (
	MethodQualitative  Method = "qualitative"
	MethodQuantitative Method = "quantitative"
)

// Validate checks if the Method is one of the supported values
func (m Method) Validate() error {
	switch m {
	case MethodQualitative, MethodQuantitative:
		return nil
	}
	return goerr.New("invalid scoring method", goerr.V("method", m))
}

// String returns the string representation of Method
func (m Method) String() string {
	return string(m)
}
