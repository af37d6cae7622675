package timeutil

import "time"

// StoreLayout is the timestamp format used in the credential store's
// first_login column. It must stay compatible with rows written by the
// previous generation of the app.
const StoreLayout = "2006-01-02 15:04:05"

func FormatStore(t time.Time) string {
	return t.Format(StoreLayout)
}

// ParseStore reads a stored timestamp back in the server's zone. The column
// carries a naive local datetime, so parsing must use the same zone that
// FormatStore stamped with or window arithmetic drifts by the UTC offset.
func ParseStore(value string) (time.Time, error) {
	return time.ParseInLocation(StoreLayout, value, time.Local)
}
