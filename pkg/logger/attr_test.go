package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestFormID(t *testing.T) {
	attr := logger.FormID("f-1")
	require.Equal(t, "form_id", attr.Key)
	assert.Equal(t, "f-1", attr.Value.Any())

	assert.True(t, logger.FormID(nil).Equal(slog.Attr{}))
}

func TestStringAttrs(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want string
	}{
		{logger.Component("form"), "component", "form"},
		{logger.Form("sign_in"), "form", "sign_in"},
		{logger.Field("username"), "field", "username"},
		{logger.Status("too_short"), "status", "too_short"},
		{logger.Phase("editing"), "phase", "editing"},
		{logger.Outcome("success"), "outcome", "success"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.attr.Key)
		assert.Equal(t, tt.want, tt.attr.Value.String())
	}
}

func TestDurationAndSeq(t *testing.T) {
	d := logger.Duration(250 * time.Millisecond)
	require.Equal(t, "duration", d.Key)
	assert.Equal(t, 250*time.Millisecond, d.Value.Duration())

	s := logger.Seq(7)
	require.Equal(t, "seq", s.Key)
	assert.Equal(t, uint64(7), s.Value.Uint64())
}
