package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchedule(t *testing.T) {
	valid := []string{
		`{"mon": ["09:00", "18:00"]}`,
		`{"tue": {"open": "08:00", "close": "17:00"}}`,
		`{"sun": {"open": "10:00", "close": "16:00", "isOpen": false}}`,
		`{}`,
	}
	for _, raw := range valid {
		assert.NoError(t, validateSchedule(json.RawMessage(raw)), raw)
	}

	invalid := []string{
		`["09:00", "18:00"]`,
		`{"monday": ["09:00", "18:00"]}`,
		`"mon"`,
		`not json`,
	}
	for _, raw := range invalid {
		assert.ErrorIs(t, validateSchedule(json.RawMessage(raw)), ErrInvalidHours, raw)
	}
}
