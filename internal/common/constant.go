package common

// TimeFormat is the layout used when persisting timestamps: ISO 8601 with
// microsecond precision, e.g. "2024-03-01T17:42:10.123456".
const TimeFormat = "2006-01-02T15:04:05.000000"

// TimeFormatParse is the layout used when reading timestamps back. It omits
// the fractional part because time.Parse accepts an optional trailing
// fraction on the seconds field, so values with and without microseconds
// both decode.
const TimeFormatParse = "2006-01-02T15:04:05"
