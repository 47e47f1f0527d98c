package scheduler

import (
	"context"
	"testing"

	"kidspace/database"
	"kidspace/database/dbtest"
	"kidspace/metrics"
	"kidspace/services"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func TestRefreshPendingApprovals(t *testing.T) {
	db := dbtest.Open(t)
	kid := database.UserRow{Nickname: "kid"}
	require.NoError(t, db.Create(&kid).Error)
	require.NoError(t, db.Create(&database.ChallengeRow{Title: "A", Description: "a", CreatedBy: kid.ID}).Error)
	require.NoError(t, db.Create(&database.ChallengeRow{Title: "B", Description: "b", CreatedBy: kid.ID}).Error)

	require.NoError(t, RefreshPendingApprovals(context.Background(), db))
	assert.Equal(t, 2.0, gaugeValue(t, metrics.PendingApprovals.WithLabelValues(services.KindChallenge)))
	assert.Equal(t, 0.0, gaugeValue(t, metrics.PendingApprovals.WithLabelValues(services.KindSolution)))
}

func TestStartAndShutdown(t *testing.T) {
	sched, err := Start(dbtest.Open(t), logrus.New())
	require.NoError(t, err)
	assert.Len(t, sched.Jobs(), 2)
	assert.NoError(t, sched.Shutdown())
}
