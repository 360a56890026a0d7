package errortypes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadCode(t *testing.T) {
	assert.Equal(t, BadInputErrorCode, ReadCode(&BadInput{Message: "Missing size param"}))
	assert.Equal(t, TimeoutErrorCode, ReadCode(&Timeout{Message: "round timed out"}))
	assert.Equal(t, UnknownErrorCode, ReadCode(errors.New("plain")))
}

func TestSeverity(t *testing.T) {
	assert.False(t, IsWarning(&BadInput{Message: "Missing size param"}))
	assert.True(t, ContainsFatalError([]error{&BadInput{Message: "Missing size param"}}))
	assert.True(t, ContainsFatalError([]error{errors.New("plain")}))
	assert.False(t, ContainsFatalError(nil))
}
