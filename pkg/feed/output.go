// File: pkg/feed/output.go
package feed

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// WriteOutput writes content verbatim to outputPath, truncating any existing
// file. Close errors are reported when nothing else failed first.
func WriteOutput(outputPath string, content string, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("Writing feed to output file", zap.String("file", outputPath))

	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil {
			logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(cerr))
			if err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}
	}()

	writer := bufio.NewWriter(outFile)
	if _, err := writer.WriteString(content); err != nil {
		logger.Error("Failed to write feed to output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to write content: %w", err)
	}

	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to flush output: %w", err)
	}

	logger.Info("Wrote feed output", zap.String("file", outputPath), zap.Int("bytes", len(content)))
	return nil
}
