package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/csheth/promptlens/internal/tuitest"
)

func TestInteractiveAnalysisRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary and drives it through a pty")
	}
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analyze":
			_, _ = io.WriteString(w, `{"score":9,"technique":"Role prompting","strengths":["Specific persona"],"issues":[],"suggestions":[]}`)
		case "/health":
			_, _ = io.WriteString(w, `{"status":"healthy","version":"1.0.0"}`)
		case "/examples":
			_, _ = io.WriteString(w, `{"examples":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	rec := runInteractive(t, server.URL, []tuitest.Step{
		tuitest.Wait(time.Second),
		tuitest.Type("Act as a tax advisor"),
		tuitest.Wait(300 * time.Millisecond),
		{Input: tuitest.KeyCtrlS},
		tuitest.Wait(time.Second),
		{Input: tuitest.KeyEsc},
	})

	for _, want := range []string{
		"Prompt Analyzer",
		"20 / 2000 characters",
		"Analysis Results",
		"9/10",
		"Technique: Role prompting",
		"Specific persona",
	} {
		if !rec.Contains(want) {
			frame, _ := rec.FinalFrame()
			t.Fatalf("terminal never showed %q; final frame:\n%s", want, frame.Plain)
		}
	}
}

func TestInteractiveFailureShowsGenericMessage(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary and drives it through a pty")
	}
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	rec := runInteractive(t, server.URL, []tuitest.Step{
		tuitest.Wait(time.Second),
		tuitest.Type("Summarize this"),
		{Input: tuitest.KeyCtrlS},
		tuitest.Wait(time.Second),
		{Input: tuitest.KeyCtrlC},
	})

	if !rec.Contains("Failed to analyze prompt. Please try again.") {
		frame, _ := rec.FinalFrame()
		t.Fatalf("generic failure banner missing; final frame:\n%s", frame.Plain)
	}
	if rec.Contains("boom") {
		t.Fatal("server error body leaked into the UI")
	}
}

func runInteractive(t *testing.T, apiURL string, steps []tuitest.Step) *tuitest.Recording {
	t.Helper()
	binary := buildBinary(t, moduleDir(t))
	home := t.TempDir()
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{
			binary,
			"--no-alt-screen",
			"--api-url", apiURL,
			"--log-file", filepath.Join(home, "promptlens.log"),
		},
		Dir:            home,
		Env:            []string{"HOME=" + home, "XDG_STATE_HOME=" + home, "PROMPTLENS_API_URL="},
		Width:          100,
		Height:         40,
		Steps:          steps,
		Timeout:        10 * time.Second,
		AllowInterrupt: true,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}
	return rec
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	tmp := t.TempDir()
	name := "promptlens-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(tmp, name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
