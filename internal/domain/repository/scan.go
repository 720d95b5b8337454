package repository

import (
	"fmt"
	"strconv"
	"time"
)

// dbTime scans either a native timestamp or an epoch-seconds integer.
type dbTime struct {
	Time time.Time
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v.UTC()
	case int64:
		t.Time = time.Unix(v, 0).UTC()
	case float64:
		t.Time = time.Unix(int64(v), 0).UTC()
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("dbTime: unsupported source type %T", src)
	}
	return nil
}

func (t *dbTime) parse(s string) error {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.Time = time.Unix(secs, 0).UTC()
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("dbTime: cannot parse %q: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// dbBool scans the text ('true'/'false') and integer (0/1) encodings.
type dbBool struct {
	Bool bool
}

func (b *dbBool) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		b.Bool = false
	case bool:
		b.Bool = v
	case int64:
		b.Bool = v != 0
	case []byte:
		return b.parse(string(v))
	case string:
		return b.parse(v)
	default:
		return fmt.Errorf("dbBool: unsupported source type %T", src)
	}
	return nil
}

func (b *dbBool) parse(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("dbBool: cannot parse %q: %w", s, err)
	}
	b.Bool = v
	return nil
}
