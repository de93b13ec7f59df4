package queue

import (
	"strings"
	"testing"
)

func TestKeysDefaultQueue(t *testing.T) {
	q := NewRedisQueue(nil)

	k := q.keys("")
	if k.base != "score_matches" || k.retry != "score_matches:retry" || k.dlq != "score_matches:dlq" {
		t.Errorf("unexpected default keys: %+v", k)
	}

	k = q.keys("custom")
	if k.base != "custom" || k.retry != "custom:retry" || k.dlq != "custom:dlq" {
		t.Errorf("unexpected named keys: %+v", k)
	}
}

func TestRetryCounterKey(t *testing.T) {
	a := retryCounterKey("score_matches", []byte(`{"match_id":"a"}`))
	b := retryCounterKey("score_matches", []byte(`{"match_id":"b"}`))

	if !strings.HasPrefix(a, "score_matches:retry-count:") {
		t.Errorf("unexpected prefix: %s", a)
	}
	if len(a) != len("score_matches:retry-count:")+64 {
		t.Errorf("expected hex sha256 suffix, got %s", a)
	}
	if a == b {
		t.Error("different payloads must not share a counter")
	}
	if a != retryCounterKey("score_matches", []byte(`{"match_id":"a"}`)) {
		t.Error("counter key must be stable")
	}
}

func TestShouldRetry(t *testing.T) {
	for attempt := int64(1); attempt <= maxRetryAttempts; attempt++ {
		if !shouldRetry(attempt) {
			t.Errorf("attempt %d should be retried", attempt)
		}
	}
	if shouldRetry(maxRetryAttempts + 1) {
		t.Error("attempts past the limit go to the DLQ")
	}
}
