package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestReportFinalize(t *testing.T) {
	reportFile, err := os.CreateTemp(t.TempDir(), "report-*.zip")
	if err != nil {
		t.Fatalf("failed to create temp report file: %v", err)
	}

	r := &Report{
		entries: make(map[string]entry),
		file:    reportFile,
	}

	dir := t.TempDir()
	stored := filepath.Join(dir, "scan.log")
	if err := os.WriteFile(stored, []byte("scanned 3 pages"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r.Store("scan.log", stored)
	r.StoreData("config.yaml", []byte("version: 1\n"))
	r.Store("absent.log", filepath.Join(dir, "no-such-file"))

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	zr, err := zip.OpenReader(reportFile.Name())
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer zr.Close()

	found := make(map[string]string)
	for _, f := range zr.File {
		rd, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rd)
		rd.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		found[f.Name] = string(data)
	}

	if _, ok := found["MANIFEST"]; !ok {
		t.Error("report has no MANIFEST")
	}
	if got := found["scan.log"]; got != "scanned 3 pages" {
		t.Errorf("wrong scan.log content: %q", got)
	}
	if got := found["config.yaml"]; got != "version: 1\n" {
		t.Errorf("wrong config.yaml content: %q", got)
	}
	// absent files are silently skipped but still listed in manifest
	if _, ok := found["absent.log"]; ok {
		t.Error("absent file should not be archived")
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
