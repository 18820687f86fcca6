// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deliver

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pdiddy/pastemd/pkg/types"
)

// Retain moves a transient artifact into the save directory under a
// collision-safe name: timestamp plus ULID suffix, so rapid consecutive
// runs never share a filename. Falls back to copy+remove across devices.
func Retain(path, saveDir string) (string, error) {
	if saveDir == "" {
		return "", fmt.Errorf("save directory not configured")
	}
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", fmt.Errorf("creating save dir %s: %w", saveDir, err)
	}

	dst := filepath.Join(saveDir, savedName(filepath.Ext(path)))
	if err := os.Rename(path, dst); err != nil {
		if cerr := copyFile(path, dst); cerr != nil {
			return "", fmt.Errorf("moving artifact to %s: %w", dst, cerr)
		}
		os.Remove(path)
	}
	return dst, nil
}

// WriteTableFile materializes table rows as a TSV file in the save
// directory, flattening any formatting runs.
func WriteTableFile(rows [][]types.Cell, saveDir string) (string, error) {
	if saveDir == "" {
		return "", fmt.Errorf("save directory not configured")
	}
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", fmt.Errorf("creating save dir %s: %w", saveDir, err)
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(flattenCell(cell.Text))
		}
		b.WriteByte('\n')
	}

	path := filepath.Join(saveDir, savedName(".tsv"))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing table file %s: %w", path, err)
	}
	return path, nil
}

// flattenCell strips characters TSV cannot carry inside a cell.
func flattenCell(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func savedName(ext string) string {
	if ext == "" {
		ext = ".docx"
	}
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return fmt.Sprintf("pastemd-%s-%s%s", time.Now().Format("20060102-150405"), id.String(), ext)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func removeFile(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
