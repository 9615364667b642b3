package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNow_TruncatedToStoredPrecision(t *testing.T) {
	now := Now()
	assert.Equal(t, now.Truncate(TimestampPrecision), now)
	assert.Equal(t, "UTC", now.Location().String())
}
