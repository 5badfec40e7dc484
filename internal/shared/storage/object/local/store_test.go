package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestPutAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "runs/run-1/cv.tex", "application/x-tex", strings.NewReader(`\name{Jane}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len(`\name{Jane}`)) {
		t.Fatalf("unexpected size %d", n)
	}

	rc, err := store.Open(ctx, "runs/run-1/cv.tex")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != `\name{Jane}` {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestRejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../outside.txt", "/etc/passwd", ""} {
		if _, err := store.Put(context.Background(), key, "", strings.NewReader("x")); err == nil {
			t.Fatalf("expected Put(%q) to fail", key)
		}
		if _, err := store.Open(context.Background(), key); err == nil {
			t.Fatalf("expected Open(%q) to fail", key)
		}
	}
}
