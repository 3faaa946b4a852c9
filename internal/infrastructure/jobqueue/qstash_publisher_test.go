package jobqueue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/amateur-league/internal/domain/notification"
	"github.com/riskibarqy/amateur-league/internal/platform/logging"
	"github.com/riskibarqy/amateur-league/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotice() notification.Notice {
	return notification.Notice{
		Kind:       notification.KindGoalScored,
		MatchID:    "m1",
		TeamID:     "t0",
		PlayerID:   "t0-p1",
		Recipients: []string{"captain@example.test"},
		OccurredAt: time.Date(2026, 4, 12, 15, 4, 5, 0, time.UTC),
	}
}

func TestQStashPublisher_Publish(t *testing.T) {
	t.Parallel()

	var (
		gotPath    string
		gotHeaders http.Header
		gotNotice  notification.Notice
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &gotNotice)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	p := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "secret",
		TargetBaseURL:    "https://league.example.test/",
		Retries:          3,
		InternalJobToken: "forward",
	}, logging.NewNop())

	notice := testNotice()
	require.NoError(t, p.Publish(context.Background(), notice))

	assert.Equal(t, "/v2/publish/https://league.example.test/v1/internal/notices/goal_scored", gotPath)
	assert.Equal(t, "Bearer secret", gotHeaders.Get("Authorization"))
	assert.Equal(t, "3", gotHeaders.Get("Upstash-Retries"))
	assert.Equal(t, "forward", gotHeaders.Get("Upstash-Forward-X-Internal-Job-Token"))
	assert.Equal(t, DeduplicationID(notice), gotHeaders.Get("Upstash-Deduplication-Id"))
	assert.Equal(t, notice.MatchID, gotNotice.MatchID)
	assert.Equal(t, notice.PlayerID, gotNotice.PlayerID)
}

func TestQStashPublisher_PermanentFailureKeepsCircuitClosed(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad destination", http.StatusBadRequest)
	}))
	defer server.Close()

	p := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		TargetBaseURL: "https://league.example.test",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	}, logging.NewNop())

	for i := 0; i < 3; i++ {
		err := p.Publish(context.Background(), testNotice())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status=400")
		assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestQStashPublisher_TransientFailureOpensCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		TargetBaseURL: "https://league.example.test",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
		},
	}, logging.NewNop())

	ctx := context.Background()
	require.ErrorIs(t, p.Publish(ctx, testNotice()), errQStashTransient)
	require.ErrorIs(t, p.Publish(ctx, testNotice()), errQStashTransient)

	err := p.Publish(ctx, testNotice())
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQStashPublisher_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	p := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "ftp://qstash.example.test",
		TargetBaseURL: "https://league.example.test",
	}, nil)
	err := p.Publish(context.Background(), testNotice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QSTASH_BASE_URL")

	err = p.Publish(context.Background(), notification.Notice{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind is required")
}

func TestBuildQStashCurlPreview_MasksSecrets(t *testing.T) {
	t.Parallel()

	preview := buildQStashCurlPreview("https://qstash.example/v2/publish/x", "/v1/internal/notices/x", 2, "dedup", `{"a":"it's"}`, true)
	assert.True(t, strings.HasPrefix(preview, "curl -X POST"))
	assert.Contains(t, preview, "Bearer ***")
	assert.Contains(t, preview, "X-Internal-Job-Token: ***")
	assert.Contains(t, preview, `'"'"'`)
}

func TestDeduplicationID_Stable(t *testing.T) {
	t.Parallel()

	a := testNotice()
	b := testNotice()
	b.Recipients = nil
	assert.Equal(t, DeduplicationID(a), DeduplicationID(b))

	b.OccurredAt = b.OccurredAt.Add(time.Millisecond)
	assert.NotEqual(t, DeduplicationID(a), DeduplicationID(b))
}
