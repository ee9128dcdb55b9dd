package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"esp-monitor/internal/mq"
)

type recordingNotifier struct {
	msgs []mq.StageChangeMsg
	err  error
}

func (r *recordingNotifier) NotifyStageChange(msg mq.StageChangeMsg) error {
	r.msgs = append(r.msgs, msg)
	return r.err
}

func TestHandleStageChange(t *testing.T) {
	n := &recordingNotifier{}
	l := newListener(nil, n, zap.NewNop())

	l.handleStageChange([]byte(`{"region": "eskom", "name": "National", "stage": "3", "previous_stage": "2",
		"stage_updated": "2022-08-08T16:12:53+02:00",
		"next_stages": [{"stage": 4, "starts": "2022-08-08T20:00:00+02:00"}]}`))

	require.Len(t, n.msgs, 1)
	assert.Equal(t, "3", n.msgs[0].Stage)
	require.Len(t, n.msgs[0].NextStages, 1)
	assert.Equal(t, 4, n.msgs[0].NextStages[0].Stage)
}

func TestHandleStageChangeDropsMalformed(t *testing.T) {
	n := &recordingNotifier{}
	l := newListener(nil, n, zap.NewNop())

	l.handleStageChange([]byte(`not json`))
	assert.Empty(t, n.msgs)
}

func TestHandleStageChangeSurvivesSendError(t *testing.T) {
	n := &recordingNotifier{err: errors.New("chat not found")}
	l := newListener(nil, n, zap.NewNop())

	assert.NotPanics(t, func() {
		l.handleStageChange([]byte(`{"region": "capetown", "stage": "0"}`))
	})
	assert.Len(t, n.msgs, 1)
}
