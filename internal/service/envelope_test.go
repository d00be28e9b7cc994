package service_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/Stendhalsynd/RoutineMate-sub000/internal/service"
	"github.com/Stendhalsynd/RoutineMate-sub000/internal/store"
)

func TestErrorEnvelopeCodes(t *testing.T) {
	t.Parallel()
	notFound := service.NewErrorEnvelope(fmt.Errorf("delete meal log x: %w", store.ErrNotFound), nil)
	if notFound.Error.Code != service.ErrCodeNotFound {
		t.Fatalf("expected not_found, got %q", notFound.Error.Code)
	}
	failed := service.NewErrorEnvelope(errors.New("weekly routine target must be >= 1"), map[string]int{"weeklyRoutineTarget": 0})
	if failed.Error.Code != service.ErrCodeFailed {
		t.Fatalf("expected command_failed, got %q", failed.Error.Code)
	}

	raw, err := json.Marshal(service.NewErrorEnvelope(errors.New("boom"), nil))
	if err != nil {
		t.Fatalf("marshal error envelope: %v", err)
	}
	if string(raw) != `{"error":{"code":"command_failed","message":"boom"}}` {
		t.Fatalf("unexpected error envelope %s", raw)
	}
	raw, err = json.Marshal(service.NewEnvelope([]int{1}))
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	if string(raw) != `{"data":[1]}` {
		t.Fatalf("unexpected envelope %s", raw)
	}
}
