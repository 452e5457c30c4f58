package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronSpec(t *testing.T) {
	spec, err := CronSpec("09:30")
	require.NoError(t, err)
	assert.Equal(t, "30 9 * * *", spec)

	spec, err = CronSpec("00:00")
	require.NoError(t, err)
	assert.Equal(t, "0 0 * * *", spec)

	spec, err = CronSpec("23:59")
	require.NoError(t, err)
	assert.Equal(t, "59 23 * * *", spec)
}

func TestCronSpecRejectsMalformedTimes(t *testing.T) {
	for _, input := range []string{"", "9am", "25:00", "12:60", "12-30"} {
		_, err := CronSpec(input)
		assert.Error(t, err, "input %q", input)
	}
}
