package recovery

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/mahdiidarabi/chonker/pkg/cryptoerr"
)

func quietClient() (*Client, *test.Hook) {
	logger, hook := test.NewNullLogger()
	strategy := NewSmartBruteForceStrategy().WithLogger(logger)
	return NewClient().WithStrategy(strategy).WithLogger(logger), hook
}

func TestClient_RecoverKey(t *testing.T) {
	client, hook := quietClient()

	result, err := client.RecoverKey(context.Background(), mustNum(t, "85"), mustNum(t, "268970693"))
	if err != nil {
		t.Fatalf("Failed to recover key: %v", err)
	}

	if result.KeyPair.PrivateExponent.String() != "88590349" {
		t.Errorf("d = %s, want 88590349", result.KeyPair.PrivateExponent)
	}
	if !result.Verified {
		t.Error("Key should be verified")
	}
	if result.Strategy != "SmartBruteForce" {
		t.Errorf("Strategy = %s", result.Strategy)
	}
	if result.RunID == "" {
		t.Error("Expected a run id from the parallel phase")
	}

	last := hook.LastEntry()
	if last == nil || last.Message != "Recovered private key" || last.Level != logrus.InfoLevel {
		t.Errorf("Unexpected last log entry: %+v", last)
	}
	if last != nil && last.Data["run_id"] != result.RunID {
		t.Errorf("Log run_id %v does not match result %s", last.Data["run_id"], result.RunID)
	}
}

func TestClient_RecoverKeys_JSON(t *testing.T) {
	client, _ := quietClient()

	outcomes, err := client.RecoverKeys(context.Background(), fixturePath("test_keys.json"))
	if err != nil {
		t.Fatalf("Failed to recover keys: %v", err)
	}
	if len(outcomes) != 4 {
		t.Fatalf("Expected 4 outcomes, got %d", len(outcomes))
	}

	want := []string{"88590349", "5", "2598113033", "180017"}
	for i, o := range outcomes {
		if o.Err != nil {
			t.Errorf("Key %d: %v", i, o.Err)
			continue
		}
		if got := o.Result.KeyPair.PrivateExponent.String(); got != want[i] {
			t.Errorf("Key %d: d = %s, want %s", i, got, want[i])
		}
	}
}

func TestClient_RecoverKeys_CSV(t *testing.T) {
	client, _ := quietClient()

	outcomes, err := client.WithParser(&CSVParser{}).RecoverKeys(context.Background(), fixturePath("test_keys.csv"))
	if err != nil {
		t.Fatalf("Failed to recover keys: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(outcomes))
	}
	for i, o := range outcomes {
		if o.Err != nil || !o.Result.Verified {
			t.Errorf("Key %d should recover and verify: %v", i, o.Err)
		}
	}
}

func TestClient_RecoverKeys_Unrecoverable(t *testing.T) {
	client, _ := quietClient()

	outcomes, err := client.RecoverKeys(context.Background(), fixturePath("test_keys_unrecoverable.json"))
	if err != nil {
		t.Fatalf("Failed to read keys: %v", err)
	}

	want := []error{
		cryptoerr.ErrNotFactorable,
		cryptoerr.ErrNotFactorable,
		cryptoerr.ErrPolicyViolation,
		cryptoerr.ErrPolicyViolation,
	}
	if len(outcomes) != len(want) {
		t.Fatalf("Expected %d outcomes, got %d", len(want), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Result != nil {
			t.Errorf("Key %d: unexpected result", i)
		}
		if !errors.Is(o.Err, want[i]) {
			t.Errorf("Key %d: expected %v, got %v", i, want[i], o.Err)
		}
	}
}

func TestClient_RecoverKeys_Cancelled(t *testing.T) {
	client, _ := quietClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := client.RecoverKeys(ctx, fixturePath("test_keys.json"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("Expected no outcomes, got %d", len(outcomes))
	}
}

func TestClient_RecoverKeys_MissingFile(t *testing.T) {
	client, _ := quietClient()
	if _, err := client.RecoverKeys(context.Background(), fixturePath("does_not_exist.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
