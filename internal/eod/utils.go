package eod

import (
	"os"
	"path/filepath"
	"time"
)

func logDir() string {
	if v := os.Getenv("QUOTE_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func brtNow() time.Time {
	return time.Now().In(time.FixedZone("BRT", -3*3600))
}

func quoteFile(t time.Time) string {
	dateStr := t.Format("2006-01-02")
	return filepath.Join(logDir(), dateStr+".txt")
}

func eodCSVPath(t time.Time) string {
	dateStr := t.Format("2006-01-02")
	return filepath.Join(logDir(), "eod", dateStr+".csv")
}
