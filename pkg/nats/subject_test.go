package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectsLiveUnderStreamSpace(t *testing.T) {
	assert.Equal(t, "FAMILY_EVENTS", StreamName)
	assert.Equal(t, "family.CONTACT_REQUESTED", Subject("CONTACT_REQUESTED"))
	assert.Equal(t, "family.MESSAGE_POSTED", Subject("MESSAGE_POSTED"))
}
