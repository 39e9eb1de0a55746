// =============================================================================
// Sales Reporter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the reporter:
//   - Input file checks (missing, empty)
//   - Output file naming with placeholders
//   - Shop names turned into safe file names
//   - All-or-nothing writing of a set of output files
//
// COMMIT STRATEGY:
//   Every output file is first written to a temporary file in the output
//   directory. Only when all of them are on disk are they renamed into place.
//   Existing files with the same names are moved aside first and restored if
//   any rename fails, so a failed run leaves the directory as it found it.
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// ErrEmptyFile is returned by CheckInputFile for a zero-length file.
var ErrEmptyFile = errors.New("file is empty")

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles output files for the reporter.
type FileManager struct {
	// OutputDir is the directory where output files are placed.
	OutputDir string

	// FileMode is the permission of written files.
	FileMode fs.FileMode
}

// NewFileManager creates a new FileManager writing into outputDir.
func NewFileManager(outputDir string) *FileManager {
	if outputDir == "" {
		outputDir = "."
	}
	return &FileManager{
		OutputDir: outputDir,
		FileMode:  0644,
	}
}

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// =============================================================================
// INPUT CHECKS
// =============================================================================

// CheckInputFile verifies that path names a regular, non-empty file.
//
// RETURNS:
//   - nil if the file can be read.
//   - An error matching fs.ErrNotExist if it is missing, ErrEmptyFile if it
//     holds no bytes, or the stat error.
func CheckInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName builds an output file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//             plus any key given in params, e.g. {command} or {input}.
//   - ext: The extension the name must end with, e.g. ".xml".
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{input}_{command}"
//   params: {"input": "sales", "command": "city-money-max"}
//   output: "sales_city-money-max.xml"
func GenerateOutputFileName(format, ext string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Each {uuid} gets its own value.
	for strings.Contains(result, "{uuid}") {
		result = strings.Replace(result, "{uuid}", uuid.New().String(), 1)
	}

	result = SanitizeFileName(result)

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// SanitizeFileName replaces characters that are unsafe in file names with
// underscores. Leading and trailing dots and spaces are dropped, and an
// empty result becomes "_".
func SanitizeFileName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsControl(r):
			return '_'
		default:
			return r
		}
	}, name)

	mapped = strings.Trim(mapped, ". ")
	if mapped == "" {
		return "_"
	}
	return mapped
}

// =============================================================================
// ALL-OR-NOTHING WRITE
// =============================================================================

// PendingFile is one output file waiting to be written.
type PendingFile struct {
	// Name is the file name relative to the output directory.
	Name string

	// Data is the complete file content.
	Data []byte
}

// staged tracks one file through the commit.
type staged struct {
	target  string
	temp    string
	backup  string
	renamed bool
}

// WriteAll writes every file or none of them.
//
// PARAMETERS:
//   - files: The files to write. Names must be unique.
//
// RETURNS:
//   - The paths of the written files, in the order given.
//   - An error if any file could not be staged or committed. In that case
//     no new file is left behind and any overwritten file is restored.
func (fm *FileManager) WriteAll(files []PendingFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f.Name != filepath.Base(f.Name) || f.Name == "." || f.Name == ".." {
			return nil, fmt.Errorf("invalid output file name %q", f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate output file name %q", f.Name)
		}
		seen[f.Name] = true
	}

	if err := fm.EnsureOutputDir(); err != nil {
		return nil, err
	}

	// Stage every file next to its target so the rename stays on one device.
	stages := make([]*staged, 0, len(files))
	for _, f := range files {
		temp, err := fm.writeTemp(f.Data)
		if err != nil {
			removeTemps(stages)
			return nil, err
		}
		stages = append(stages, &staged{
			target: filepath.Join(fm.OutputDir, f.Name),
			temp:   temp,
		})
	}

	if err := commit(stages); err != nil {
		rollback(stages)
		return nil, fmt.Errorf("failed to write output files: %w", err)
	}

	paths := make([]string, len(stages))
	for i, s := range stages {
		paths[i] = s.target
		if s.backup != "" {
			os.Remove(s.backup)
		}
	}
	return paths, nil
}

// writeTemp writes data to a new temporary file in the output directory.
func (fm *FileManager) writeTemp(data []byte) (string, error) {
	file, err := os.CreateTemp(fm.OutputDir, ".salesreport-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	name := file.Name()
	fail := func(err error) (string, error) {
		file.Close()
		os.Remove(name)
		return "", err
	}

	if _, err := file.Write(data); err != nil {
		return fail(fmt.Errorf("failed to write temporary file: %w", err))
	}
	if err := file.Sync(); err != nil {
		return fail(fmt.Errorf("failed to sync temporary file: %w", err))
	}
	if err := file.Chmod(fm.FileMode); err != nil {
		return fail(fmt.Errorf("failed to set file mode: %w", err))
	}
	if err := file.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}

	return name, nil
}

// commit moves existing targets aside and renames the staged files into place.
func commit(stages []*staged) error {
	for _, s := range stages {
		if FileExists(s.target) {
			backup := s.target + ".bak-" + uuid.New().String()
			if err := os.Rename(s.target, backup); err != nil {
				return fmt.Errorf("failed to move aside %s: %w", s.target, err)
			}
			s.backup = backup
		}

		if err := os.Rename(s.temp, s.target); err != nil {
			return fmt.Errorf("failed to commit %s: %w", s.target, err)
		}
		s.renamed = true
	}
	return nil
}

// rollback undoes a partial commit in reverse order.
func rollback(stages []*staged) {
	for i := len(stages) - 1; i >= 0; i-- {
		s := stages[i]
		if s.renamed {
			os.Remove(s.target)
		} else {
			os.Remove(s.temp)
		}
		if s.backup != "" {
			os.Rename(s.backup, s.target)
		}
	}
}

// removeTemps deletes staged temporary files.
func removeTemps(stages []*staged) {
	for _, s := range stages {
		os.Remove(s.temp)
	}
}
