package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hanzireel/internal/history"
	"hanzireel/internal/services"
	"hanzireel/internal/testsupport"
)

func TestBeginFinishRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	started := time.Now().Add(-time.Minute).UTC().Truncate(time.Millisecond)
	if err := store.Begin(ctx, history.Run{ID: "run-1", Character: "茶", Pinyin: "chá", Seed: 42, StartedAt: started}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	run, err := store.Get(ctx, "run-1")
	if err != nil || run == nil {
		t.Fatalf("Get: %v %v", run, err)
	}
	if run.Status != history.StatusRunning || run.Character != "茶" || run.Seed != 42 || !run.StartedAt.Equal(started) {
		t.Fatalf("unexpected running row: %+v", run)
	}
	if run.Elapsed() != 0 {
		t.Fatal("running rows have no elapsed time")
	}

	if err := store.Finish(ctx, "run-1", services.StatusSucceeded, 945, 31.5, "media/videos/out.mp4", nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	run, err = store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if run.Status != services.StatusSucceeded || run.Frames != 945 || run.Duration != 31.5 || run.OutputPath != "media/videos/out.mp4" || run.Error != "" {
		t.Fatalf("unexpected finished row: %+v", run)
	}
	if run.FinishedAt.IsZero() || run.Elapsed() <= 0 {
		t.Fatalf("expected finished time, got %+v", run)
	}
}

func TestDescribeFillsEpisode(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()
	if err := store.Begin(ctx, history.Run{ID: "run-d"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Describe(ctx, "run-d", "爱", "ài", 7, "media/videos/ai.mp4"); err != nil {
		t.Fatalf("Describe: %v", err)
	}
	run, err := store.Get(ctx, "run-d")
	if err != nil || run == nil {
		t.Fatalf("Get: %v %v", run, err)
	}
	if run.Character != "爱" || run.Pinyin != "ài" || run.Seed != 7 || run.OutputPath != "media/videos/ai.mp4" || run.Status != history.StatusRunning {
		t.Fatalf("unexpected described row: %+v", run)
	}
	if err := store.Describe(ctx, "missing", "爱", "ài", 7, ""); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestFinishRecordsError(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()
	if err := store.Begin(ctx, history.Run{ID: "run-err", Character: "我", Pinyin: "wǒ"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Finish(ctx, "run-err", services.StatusFailed, 0, 0, "", errors.New("ffmpeg exploded")); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	run, _ := store.Get(ctx, "run-err")
	if run.Status != services.StatusFailed || run.Error != "ffmpeg exploded" || run.OutputPath != "" {
		t.Fatalf("unexpected row: %+v", run)
	}
	if err := store.Finish(ctx, "missing", services.StatusFailed, 0, 0, "", nil); err == nil {
		t.Fatal("expected error finishing unknown run")
	}
}

func TestListNewestFirst(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := store.Begin(ctx, history.Run{ID: id, Character: "人", Pinyin: "rén", StartedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("Begin %s: %v", id, err)
		}
	}
	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected order: %+v", runs)
	}
	all, err := store.List(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all runs, got %d err=%v", len(all), err)
	}
}

func TestMarkAbandoned(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()
	for _, id := range []string{"x", "y"} {
		if err := store.Begin(ctx, history.Run{ID: id, Character: "水", Pinyin: "shuǐ"}); err != nil {
			t.Fatalf("Begin: %v", err)
		}
	}
	if err := store.Finish(ctx, "y", services.StatusSucceeded, 1, 1, "", nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	n, err := store.MarkAbandoned(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected one abandoned run, got %d err=%v", n, err)
	}
	run, _ := store.Get(ctx, "x")
	if run.Status != services.StatusFailed || run.Error != "render interrupted" {
		t.Fatalf("unexpected abandoned row: %+v", run)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Begin(context.Background(), history.Run{ID: "keep", Character: "火", Pinyin: "huǒ"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened := testsupport.MustOpenHistory(t, cfg)
	run, err := reopened.Get(context.Background(), "keep")
	if err != nil || run == nil {
		t.Fatalf("expected persisted run, got %v err=%v", run, err)
	}
	if missing, err := reopened.Get(context.Background(), "nope"); err != nil || missing != nil {
		t.Fatalf("expected nil for unknown id, got %v err=%v", missing, err)
	}
}

func TestBeginRequiresID(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	if err := store.Begin(context.Background(), history.Run{}); err == nil {
		t.Fatal("expected error for empty id")
	}
}
