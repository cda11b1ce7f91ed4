package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/karantnn/GitCode/pkg/record"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func analysisJSON(agent string) string {
	return `{"agent": "` + agent + `", "agent_name": "` + agent + ` analyst", "ticker": "INTC", "date": "2025-12-25", "analysis": "## Overview\nLooks fine."}`
}

func TestOneDerivesOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "market_analysis.json", analysisJSON("market"))

	out, err := New().One(context.Background(), input, "")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := filepath.Join(dir, "market_analysis.docx")
	if out != want {
		t.Fatalf("output path = %q, want %q", out, want)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected artifact on disk: %v", err)
	}
}

func TestOneMissingInput(t *testing.T) {
	_, err := New().One(context.Background(), filepath.Join(t.TempDir(), "absent.json"), "")
	var notFound *InputNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected InputNotFoundError, got %v", err)
	}
}

func TestOneMalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "broken.json", `{"agent": `)

	_, err := New().One(context.Background(), input, "")
	var parseErr *record.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != input {
		t.Fatalf("ParseError.Path = %q, want %q", parseErr.Path, input)
	}
}

func TestBatchMissingDirectory(t *testing.T) {
	_, err := New().Batch(context.Background(), BatchOptions{InputDir: filepath.Join(t.TempDir(), "absent")})
	var notFound *InputNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected InputNotFoundError, got %v", err)
	}
}

func TestBatchConvertsInSortedOrder(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "news_analysis.json", analysisJSON("news"))
	writeInput(t, dir, "fundamentals_analysis.json", analysisJSON("fundamentals"))
	writeInput(t, dir, "market_analysis.json", analysisJSON("market"))
	writeInput(t, dir, "notes.txt", "not json")

	outDir := filepath.Join(dir, "reports")
	produced, err := New(WithWorkers(4)).Batch(context.Background(), BatchOptions{
		InputDir:  dir,
		OutputDir: outDir,
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	want := []string{
		filepath.Join(outDir, "fundamentals_analysis.docx"),
		filepath.Join(outDir, "market_analysis.docx"),
		filepath.Join(outDir, "news_analysis.docx"),
	}
	if len(produced) != len(want) {
		t.Fatalf("produced %d artifacts, want %d: %v", len(produced), len(want), produced)
	}
	for i := range want {
		if produced[i] != want[i] {
			t.Fatalf("artifact[%d] = %q, want %q", i, produced[i], want[i])
		}
	}
}

func TestBatchSkipsMalformedInputs(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "good_analysis.json", analysisJSON("market"))
	writeInput(t, dir, "bad_analysis.json", `{invalid`)

	produced, err := New().Batch(context.Background(), BatchOptions{InputDir: dir})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(produced) != 1 {
		t.Fatalf("produced %d artifacts, want 1: %v", len(produced), produced)
	}
	if filepath.Base(produced[0]) != "good_analysis.docx" {
		t.Fatalf("unexpected artifact %q", produced[0])
	}
}

func TestBatchEmptyDirectory(t *testing.T) {
	produced, err := New().Batch(context.Background(), BatchOptions{InputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(produced) != 0 {
		t.Fatalf("expected no artifacts, got %v", produced)
	}
}

func TestBatchCombineProducesSingleArtifact(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "market_analysis.json", analysisJSON("market"))
	writeInput(t, dir, "news_analysis.json", analysisJSON("news"))

	produced, err := New().Batch(context.Background(), BatchOptions{
		InputDir: dir,
		Combine:  true,
		Title:    "INTC Analysis - 2025-12-25",
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(produced) != 1 {
		t.Fatalf("combine should yield one artifact, got %v", produced)
	}
	if filepath.Base(produced[0]) != CombinedName {
		t.Fatalf("artifact = %q, want %q", filepath.Base(produced[0]), CombinedName)
	}

	entries, err := filepath.Glob(filepath.Join(dir, "*.docx"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("combine must not leave per-file documents, found %v", entries)
	}
}

// documentXML extracts word/document.xml from a .docx artifact on disk.
func documentXML(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive %s: %v", path, err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		return string(content)
	}
	t.Fatal("word/document.xml not found in archive")
	return ""
}

func TestBatchCombineSectionsFollowFilenameOrder(t *testing.T) {
	dir := t.TempDir()
	// Written out of sorted order on purpose.
	writeInput(t, dir, "c_analysis.json", analysisJSON("gamma"))
	writeInput(t, dir, "a_analysis.json", analysisJSON("alpha"))
	writeInput(t, dir, "b_analysis.json", analysisJSON("beta"))

	produced, err := New().Batch(context.Background(), BatchOptions{InputDir: dir, Combine: true})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(produced) != 1 {
		t.Fatalf("combine should yield one artifact, got %v", produced)
	}
	content := documentXML(t, produced[0])

	// Section headings carry the per-record subtitle; one per input, in
	// filename-sorted order.
	prev := -1
	for _, marker := range []string{
		"alpha analyst - INTC (2025-12-25)",
		"beta analyst - INTC (2025-12-25)",
		"gamma analyst - INTC (2025-12-25)",
	} {
		if n := strings.Count(content, marker); n != 1 {
			t.Fatalf("section %q appears %d time(s), want 1", marker, n)
		}
		i := strings.Index(content, marker)
		if i <= prev {
			t.Fatalf("section %q out of order (index %d, previous %d)", marker, i, prev)
		}
		prev = i
	}
}

func TestBatchCombineSkipsMalformedInputs(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "good_analysis.json", analysisJSON("market"))
	writeInput(t, dir, "bad_analysis.json", `{invalid`)

	produced, err := New().Batch(context.Background(), BatchOptions{InputDir: dir, Combine: true})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(produced) != 1 || filepath.Base(produced[0]) != CombinedName {
		t.Fatalf("unexpected artifacts %v", produced)
	}
}

func TestReplaceExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"market_analysis.json", "market_analysis.docx"},
		{"dir/report.JSON", "dir/report.docx"},
		{"no_extension", "no_extension.docx"},
	}
	for _, tc := range tests {
		if got := replaceExt(tc.in, ".docx"); got != tc.want {
			t.Fatalf("replaceExt(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
