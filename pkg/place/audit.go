package place

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var auditHeader = []string{
	"id_type", "osm_id", "placed", "reason", "w_fit", "h_fit", "bbox_w", "bbox_h",
}

// WriteAuditCSV writes the building placement audit to path, creating
// parent directories as needed.
func WriteAuditCSV(path string, rows []AuditRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating audit directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating audit file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(auditHeader); err != nil {
		return fmt.Errorf("writing audit header: %w", err)
	}
	for _, r := range rows {
		placed := "0"
		if r.Placed {
			placed = "1"
		}
		rec := []string{
			r.SourceType,
			strconv.FormatInt(r.ID, 10),
			placed,
			r.Reason,
			strconv.Itoa(r.FitW),
			strconv.Itoa(r.FitH),
			strconv.Itoa(r.BBoxW),
			strconv.Itoa(r.BBoxH),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing audit row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing audit file: %w", err)
	}
	return nil
}
