package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobWrapsPayload(t *testing.T) {
	job, err := NewJob(JobTypeTicketConfirmation, TicketConfirmationPayload{TicketID: "t-1", Price: 199})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, JobTypeTicketConfirmation, job.Type)
	assert.Zero(t, job.Attempt)

	var p TicketConfirmationPayload
	require.NoError(t, json.Unmarshal(job.Payload, &p))
	assert.Equal(t, "t-1", p.TicketID)
	assert.Equal(t, 199, p.Price)
}

func TestNewJobRejectsUnencodablePayload(t *testing.T) {
	_, err := NewJob(JobTypeTicketConfirmation, make(chan int))
	assert.Error(t, err)
}
