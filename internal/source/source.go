// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source discovers and decodes spill record files. A spill file
// is JSON lines: one spill object per line. Files with a .json
// extension holding a single object are accepted too.
package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/numusel/pkg/types"
)

// maxLineSize bounds a single spill record. Spills with thousands of
// candidates stay well under this.
const maxLineSize = 16 * 1024 * 1024

// ListFiles returns the spill files under dir in lexical order.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".jsonl":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile decodes every spill in the file, reporting malformed lines
// on log and continuing past them. The context aborts a long read
// between lines.
func ReadFile(ctx context.Context, path string, log io.Writer) ([]types.Spill, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening spill file: %w", err)
	}
	defer f.Close()

	var spills []types.Spill
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var s types.Spill
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			fmt.Fprintf(log, "%s:%d: skipping malformed spill record: %v\n", path, line, err)
			continue
		}
		spills = append(spills, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return spills, nil
}
