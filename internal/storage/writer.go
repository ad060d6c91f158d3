package storage

import (
	"bufio"
	"fmt"
	"os"
)

// Appender writes refetched payloads to the end of the output log. The file
// is only ever opened for append, so records from earlier runs are never
// truncated or reordered.
type Appender struct {
	Path string
}

// Append writes each payload as one NDJSON line to the end of the log,
// creating the file on first use.
func (a *Appender) Append(payloads [][]byte) error {
	f, err := os.OpenFile(a.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range payloads {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output file: %w", err)
	}
	return nil
}
