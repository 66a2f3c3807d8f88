package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Result attribute values understood by NUnit-2 consumers.
const (
	ResultSuccess     = "Success"
	ResultFailure     = "Failure"
	ResultNotRunnable = "NotRunnable"
)

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// formatSeconds renders d as decimal seconds without trailing zeros.
func formatSeconds(d time.Duration) string {
	if d <= 0 {
		return "0"
	}
	whole := strconv.FormatInt(int64(d/time.Second), 10)
	frac := int64(d % time.Second)
	if frac == 0 {
		return whole
	}
	return whole + "." + strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

func formatClock(t time.Time) string {
	return fmt.Sprintf("%d:%d:%d", t.Hour(), t.Minute(), t.Second())
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
