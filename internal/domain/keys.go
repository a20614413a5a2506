package domain

import "strconv"

// RecordKey builds the identifier used for a record at index within page
func RecordKey(page, index int) string {
	return strconv.Itoa(page) + ":" + strconv.Itoa(index)
}
