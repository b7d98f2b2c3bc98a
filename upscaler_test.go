package upscaler_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	upscaler "github.com/Skryldev/image-upscaler"
	"github.com/Skryldev/image-upscaler/config"
	apperrors "github.com/Skryldev/image-upscaler/errors"
)

// ── Test helpers ──────────────────────────────────────────────────────────────

func writeGradientPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func baseConfig(in, out string) config.Config {
	cfg := config.Default()
	cfg.InputPath = in
	cfg.OutputPath = out
	cfg.Scale = 2
	return cfg
}

func decodePNGFile(t *testing.T, path string) (int, int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

// ── Pipeline mode ─────────────────────────────────────────────────────────────

func TestRunPipeline_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeGradientPNG(t, in, 40, 30)

	cfg := baseConfig(in, out)
	cfg.Scale = 2.5
	app := upscaler.New(cfg)

	res, err := app.RunPipeline(context.Background())
	if err != nil {
		t.Fatalf("RunPipeline: %v", err)
	}
	if !res.Success {
		t.Fatalf("run failed: %v", res.Failure)
	}
	if res.AlgorithmUsed == "" {
		t.Error("AlgorithmUsed not recorded")
	}

	w, h := decodePNGFile(t, out)
	if w != 100 || h != 75 {
		t.Errorf("output dims: got %dx%d, want 100x75", w, h)
	}

	// Every event succeeded exactly once.
	if res.Metrics == nil {
		t.Fatal("no metrics snapshot")
	}
	events := res.Metrics.Events()
	if len(events) != 8 {
		t.Errorf("metered events: got %d (%v), want 8", len(events), events)
	}
	for _, name := range events {
		st := res.Metrics.Stats[name]
		if st.Count != 1 || st.Failure != 0 {
			t.Errorf("%s: count=%d failure=%d", name, st.Count, st.Failure)
		}
	}
}

func TestRunPipeline_UnknownAlgorithmFails(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeGradientPNG(t, in, 20, 20)

	cfg := baseConfig(in, filepath.Join(dir, "out.png"))
	cfg.Algorithm = "quantum-enhance"
	app := upscaler.New(cfg)

	res, err := app.RunPipeline(context.Background())
	if err != nil {
		t.Fatalf("RunPipeline: %v", err)
	}
	if res.Success {
		t.Fatal("run should have failed")
	}
	if !errors.Is(res.Failure, apperrors.ErrUnsupportedAlgorithm) {
		t.Errorf("failure: got %v", res.Failure)
	}
	// SaveImage never ran, so no output file.
	if _, err := os.Stat(filepath.Join(dir, "out.png")); !errors.Is(err, os.ErrNotExist) {
		t.Error("failed run must not write output")
	}
	if res.Metrics != nil {
		if _, ok := res.Metrics.Stats["SaveImage"]; ok {
			t.Error("SaveImage must not appear in metrics after abort")
		}
	}
}

// ── Traditional and compare modes ─────────────────────────────────────────────

func TestRunTraditional(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeGradientPNG(t, in, 16, 16)

	cfg := baseConfig(in, out)
	cfg.Algorithm = "bilinear"
	res, err := upscaler.New(cfg).RunTraditional(context.Background())
	if err != nil {
		t.Fatalf("RunTraditional: %v", err)
	}
	if res.Algorithm != "bilinear" {
		t.Errorf("algorithm: %q", res.Algorithm)
	}
	if w, h := decodePNGFile(t, out); w != 32 || h != 32 {
		t.Errorf("dims: %dx%d", w, h)
	}
}

func TestPipelineAndTraditional_ByteIdentical(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeGradientPNG(t, in, 24, 18)

	cfg := baseConfig(in, filepath.Join(dir, "out.png"))
	cfg.Algorithm = "lanczos3"
	// Preprocessing may legitimately alter pixels; parity holds without it.
	cfg.EnablePreprocess = false
	cfg.PostSharpen = false

	report, err := upscaler.New(cfg).Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !report.Success() {
		t.Fatalf("compare failed: trad=%v pipe=%v", report.TraditionalErr, report.Pipeline.Failure)
	}

	trad, err := os.ReadFile(report.Traditional.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	pipe, err := os.ReadFile(report.PipelineOut)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(trad, pipe) {
		t.Error("pipeline and traditional outputs differ for the same algorithm")
	}
}

func TestCompare_ReportRenders(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeGradientPNG(t, in, 16, 16)

	cfg := baseConfig(in, filepath.Join(dir, "out.png"))
	cfg.Algorithm = "nearest"
	report, err := upscaler.New(cfg).Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	var sb strings.Builder
	if err := report.WriteReport(&sb); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"Mode", "traditional", "pipeline", "Overhead"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if report.Overhead() == 0 && report.PipelineDur != report.Traditional.Duration {
		t.Log("overhead computed as zero; durations equal by chance")
	}
}

// ── Large scale factor ────────────────────────────────────────────────────────

func TestRunPipeline_LargeScaleFactor(t *testing.T) {
	if testing.Short() {
		t.Skip("3000x3000 lanczos3 output is slow")
	}
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeGradientPNG(t, in, 200, 200)

	cfg := baseConfig(in, out)
	cfg.Scale = 15
	cfg.Algorithm = "lanczos3"
	res, err := upscaler.New(cfg).RunPipeline(context.Background())
	if err != nil {
		t.Fatalf("RunPipeline: %v", err)
	}
	if !res.Success {
		t.Fatalf("run failed: %v", res.Failure)
	}
	if w, h := decodePNGFile(t, out); w != 3000 || h != 3000 {
		t.Errorf("dims: got %dx%d, want 3000x3000", w, h)
	}
}

// ── Derived output path ───────────────────────────────────────────────────────

func TestOutputPath_Derived(t *testing.T) {
	cfg := config.Default()
	cfg.InputPath = "photos/cat.png"
	app := upscaler.New(cfg)
	if got := app.OutputPath(); got != "photos/cat_upscaled.png" {
		t.Errorf("derived path: %q", got)
	}
}
