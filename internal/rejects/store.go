package rejects

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"smartprice-backend/internal/model"
)

// Record appends a dropped raw record to the audit store so data-quality
// regressions in platform markup can be diagnosed later. Auditing is opt-in
// via SMARTPRICE_AUDIT_DIR; failures are logged and never propagate.
func Record(platform string, raw model.RawProduct, reason string) {
	dir := os.Getenv("SMARTPRICE_AUDIT_DIR")
	if dir == "" {
		return
	}
	if err := write(dir, platform, raw, reason); err != nil {
		log.Printf("rejects: audit write failed: %v", err)
	}
}

func write(dir, platform string, raw model.RawProduct, reason string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fpath := filepath.Join(dir, fmt.Sprintf("dropped_%s.jsonl", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	record := map[string]any{
		"platform":  platform,
		"title":     raw.Title,
		"price":     raw.PriceText,
		"url":       raw.URL,
		"reason":    reason,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}
