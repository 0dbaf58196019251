package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	base := GetCounter("test_counter")
	Increment("test_counter", 2)
	Increment("test_counter", 3)
	assert.Equal(t, base+5, GetCounter("test_counter"))
	assert.Equal(t, 0, GetCounter("never_touched"))
}

func TestWarnAndErrorCount(t *testing.T) {
	warnings := GetCounter("warnings")
	Warn("something odd in [%s]", "input")
	assert.Equal(t, warnings+1, GetCounter("warnings"))

	errs := GetCounter("errors")
	Error(errors.New("boom"), "doing a thing")
	assert.Equal(t, errs+1, GetCounter("errors"))
}
