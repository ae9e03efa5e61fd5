package searcherror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "unsupported node kind",
			err:      &UnsupportedNodeKindError{Kind: "hashtag"},
			expected: `search cannot handle "hashtag" nodes`,
		},
		{
			name:     "unknown operator",
			err:      &UnknownOperatorError{Operator: "bogus"},
			expected: `unsupported search operator: "bogus"`,
		},
		{
			name: "invalid operator value",
			err: &InvalidOperatorValueError{
				Operator: "amount",
				Value:    "ten",
				Err:      errors.New("can't convert ten to decimal"),
			},
			expected: `invalid value for operator "amount": 'ten': can't convert ten to decimal`,
		},
		{
			name: "resolver failure",
			err: &ResolverError{
				Operator: "category",
				Entity:   "category",
				Err:      errors.New("database is locked"),
			},
			expected: `category lookup for operator "category" failed: database is locked`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestBadRequestClassification(t *testing.T) {
	cause := errors.New("cause")

	assert.True(t, IsBadRequest(&UnsupportedNodeKindError{Kind: "mention"}))
	assert.True(t, IsBadRequest(&UnknownOperatorError{Operator: "x"}))
	assert.True(t, IsBadRequest(&InvalidOperatorValueError{Operator: "date", Value: "x", Err: cause}))
	assert.False(t, IsBadRequest(&ResolverError{Operator: "tag", Entity: "tag", Err: cause}))
	assert.False(t, IsBadRequest(cause))

	wrapped := fmt.Errorf("search failed: %w", &UnknownOperatorError{Operator: "x"})
	assert.True(t, IsBadRequest(wrapped))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("original error")

	valueErr := &InvalidOperatorValueError{Operator: "amount", Value: "x", Err: cause}
	assert.Equal(t, cause, valueErr.Unwrap())
	assert.True(t, errors.Is(valueErr, cause))

	resolverErr := &ResolverError{Operator: "bill", Entity: "bill", Err: cause}
	assert.True(t, errors.Is(resolverErr, cause))

	var target *UnknownOperatorError
	wrapped := fmt.Errorf("outer: %w", &UnknownOperatorError{Operator: "bogus"})
	if assert.True(t, errors.As(wrapped, &target)) {
		assert.Equal(t, "bogus", target.Operator)
	}
}
