package oops

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var SampleErrorValue = errors.New("some error occurred that you should handle")

type SampleErrorType struct {
	Message string
}

func (s SampleErrorType) Error() string {
	return s.Message
}

func init() {
	zerolog.ErrorStackMarshaler = ZerologStackMarshaler
}

func TestNew(t *testing.T) {
	t.Run("errors.Is", func(t *testing.T) {
		err := New(SampleErrorValue, "test error")
		assert.True(t, errors.Is(err, SampleErrorValue), "error did not appear to wrap the sample value")
	})
	t.Run("errors.As", func(t *testing.T) {
		err := New(SampleErrorType{Message: "some fancy error type has occurred"}, "test error")
		var sErr SampleErrorType
		assert.True(t, errors.As(err, &sErr), "error did not appear to wrap the sample error type")
	})
	t.Run("message", func(t *testing.T) {
		assert.Equal(t, "reading chunk 3: "+SampleErrorValue.Error(), New(SampleErrorValue, "reading chunk %d", 3).Error())
		assert.Equal(t, "no cause", New(nil, "no cause").Error())
	})
	t.Run("stack starts at caller", func(t *testing.T) {
		var oopsErr *Error
		require.True(t, errors.As(New(nil, "here"), &oopsErr))
		require.NotEmpty(t, oopsErr.Stack)
		assert.Contains(t, oopsErr.Stack[0].Function, "TestNew")
	})
}
