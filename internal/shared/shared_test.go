package shared

import (
	"context"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != `{"key":"value"}` {
			t.Errorf("unexpected output %s", out)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "{\n  \"key\": \"value\"\n}" {
			t.Errorf("unexpected output %s", out)
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	t.Run("known platforms have an opener", func(t *testing.T) {
		for _, goos := range []string{"darwin", "linux", "windows"} {
			if _, ok := browserCommand[goos]; !ok {
				t.Errorf("expected an opener for %s", goos)
			}
		}
	})

	t.Run("unsupported platform errors", func(t *testing.T) {
		original := getRuntime
		t.Cleanup(func() { getRuntime = original })
		getRuntime = func() string { return "plan9" }

		if err := OpenBrowser("http://localhost:3000/"); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	if id := RequestIDFrom(ctx); id != "" {
		t.Errorf("expected empty id, got %q", id)
	}

	ctx = WithRequestID(ctx, "abc-123")
	if id := RequestIDFrom(ctx); id != "abc-123" {
		t.Errorf("expected abc-123, got %q", id)
	}
}
