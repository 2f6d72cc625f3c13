package main

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/kei/js"
	"github.com/dhamidi/kei/project"
)

func newScanCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a directory, zip file, or source file for JavaScript summaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return runScan(path, timeout)
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "timeout per file")

	return cmd
}

func runScan(path string, timeout time.Duration) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var summaries []*js.FileSummary
	var errors []string

	if info.IsDir() {
		summaries, errors = scanDirectory(path, timeout)
	} else {
		ext := filepath.Ext(path)
		if ext == ".zip" {
			summaries, errors = scanZipFile(path, timeout)
		} else if project.IsSourceFile(path) {
			summaries, errors = scanSingleFile(path, timeout)
		} else {
			return fmt.Errorf("unsupported file type: %s", ext)
		}
	}

	functions := 0
	for _, sum := range summaries {
		functions += len(sum.Functions)
	}

	fmt.Printf("\n=== SCAN COMPLETE ===\n")
	fmt.Printf("Files parsed: %d\n", len(summaries))
	fmt.Printf("Functions found: %d\n", functions)
	fmt.Printf("Errors: %d\n", len(errors))
	for _, e := range errors {
		fmt.Printf("  - %s\n", e)
	}
	return nil
}

func scanSingleFile(path string, timeout time.Duration) ([]*js.FileSummary, []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []string{fmt.Sprintf("read %s: %v", path, err)}
	}

	moduleDefault := false
	if proj, err := project.LoadFrom(filepath.Dir(path)); err == nil {
		moduleDefault = proj.IsModule()
	}

	sum, fileErrors := parseWithTimeout(path, data, project.SourceTypeFor(path, moduleDefault), timeout)
	if sum == nil {
		return nil, fileErrors
	}
	return []*js.FileSummary{sum}, fileErrors
}

func scanDirectory(path string, timeout time.Duration) ([]*js.FileSummary, []string) {
	var files []string
	var errors []string

	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			errors = append(errors, fmt.Sprintf("walk %s: %v", p, err))
			return nil
		}
		if info.IsDir() {
			name := info.Name()
			if p != path && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if project.IsSourceFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		errors = append(errors, fmt.Sprintf("walk %s: %v", path, err))
	}

	moduleDefault := false
	if proj, err := project.LoadFrom(path); err == nil {
		moduleDefault = proj.IsModule()
	}

	fmt.Printf("Found %d files to scan\n", len(files))

	var summaries []*js.FileSummary
	for i, file := range files {
		fmt.Printf("[%d/%d] ", i+1, len(files))

		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("[ERROR] read %s: %v\n", file, err)
			errors = append(errors, fmt.Sprintf("read %s: %v", file, err))
			continue
		}

		sum, fileErrors := parseWithTimeout(file, data, project.SourceTypeFor(file, moduleDefault), timeout)
		if sum != nil {
			summaries = append(summaries, sum)
		}
		errors = append(errors, fileErrors...)
	}

	return summaries, errors
}

func scanZipFile(path string, timeout time.Duration) ([]*js.FileSummary, []string) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, []string{fmt.Sprintf("open zip: %v", err)}
	}
	defer r.Close()

	moduleDefault := false
	var sourceFiles []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if filepath.Base(f.Name) == "package.json" && !strings.Contains(f.Name, "/") {
			moduleDefault = zipManifestIsModule(f)
			continue
		}
		if project.IsSourceFile(f.Name) {
			sourceFiles = append(sourceFiles, f)
		}
	}

	fmt.Printf("Found %d files to scan\n", len(sourceFiles))

	var summaries []*js.FileSummary
	var errors []string

	for i, f := range sourceFiles {
		fmt.Printf("[%d/%d] ", i+1, len(sourceFiles))

		rc, err := f.Open()
		if err != nil {
			fmt.Printf("[ERROR] open %s: %v\n", f.Name, err)
			errors = append(errors, fmt.Sprintf("open %s: %v", f.Name, err))
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			fmt.Printf("[ERROR] read %s: %v\n", f.Name, err)
			errors = append(errors, fmt.Sprintf("read %s: %v", f.Name, err))
			continue
		}

		sum, fileErrors := parseWithTimeout(f.Name, data, project.SourceTypeFor(f.Name, moduleDefault), timeout)
		if sum != nil {
			summaries = append(summaries, sum)
		}
		errors = append(errors, fileErrors...)
	}

	return summaries, errors
}

func zipManifestIsModule(f *zip.File) bool {
	rc, err := f.Open()
	if err != nil {
		return false
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return false
	}

	var manifest project.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return false
	}
	return manifest.Type == "module"
}

func parseWithTimeout(name string, data []byte, sourceType js.SourceType, timeout time.Duration) (*js.FileSummary, []string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	var sum *js.FileSummary
	var parseErr error

	go func() {
		defer close(done)
		sum, parseErr = js.SummarizeFile(name, data, sourceType)
	}()

	select {
	case <-done:
		if parseErr != nil {
			fmt.Printf("[ERROR] %s: %v\n", name, parseErr)
			return nil, []string{fmt.Sprintf("parse %s: %v", name, parseErr)}
		}
		fmt.Printf("[OK] %s (%d functions)\n", name, len(sum.Functions))
		return sum, nil
	case <-ctx.Done():
		fmt.Printf("[TIMEOUT] %s\n", name)
		return nil, []string{fmt.Sprintf("timeout parsing %s", name)}
	}
}
