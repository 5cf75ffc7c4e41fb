package list_appointments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	req, err := ToServiceRequest(1, "2026-03-01", "2026-03-31", "confirmed", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), *req.From)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, loc), *req.To)
	assert.Equal(t, "confirmed", *req.Status)

	req, err = ToServiceRequest(1, "2026-03-01T10:00:00Z", "2026-03-01T12:00:00Z", "", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), *req.To)
	assert.Nil(t, req.Status)

	req, err = ToServiceRequest(1, "", "", "", loc)
	require.NoError(t, err)
	assert.Nil(t, req.From)
	assert.Nil(t, req.To)

	_, err = ToServiceRequest(1, "01.03.2026", "", "", loc)
	assert.Error(t, err)
}
