package service

import "time"

const (
	dateLayout = "2006-01-02"

	// fixed width so timestamps sort as strings
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

func today() string {
	return time.Now().Format(dateLayout)
}

func nowTimestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}
