package lifecycle

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-day layout used for lifecycle dates.
const DateLayout = "2006-01-02"

// Status is the enabled flag of a rule.
type Status string

const (
	StatusEnabled  Status = "Enabled"
	StatusDisabled Status = "Disabled"
)

// ParseStatus parses a status marker case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enabled":
		return StatusEnabled, nil
	case "disabled":
		return StatusDisabled, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// StorageClass is the target class of a transition.
type StorageClass string

const (
	StorageClassStandard           StorageClass = "STANDARD"
	StorageClassGlacier            StorageClass = "GLACIER"
	StorageClassStandardIA         StorageClass = "STANDARD_IA"
	StorageClassOneZoneIA          StorageClass = "ONEZONE_IA"
	StorageClassIntelligentTiering StorageClass = "INTELLIGENT_TIERING"
	StorageClassDeepArchive        StorageClass = "DEEP_ARCHIVE"
	StorageClassGlacierIR          StorageClass = "GLACIER_IR"
)

var knownStorageClasses = map[StorageClass]struct{}{
	StorageClassStandard:           {},
	StorageClassGlacier:            {},
	StorageClassStandardIA:         {},
	StorageClassOneZoneIA:          {},
	StorageClassIntelligentTiering: {},
	StorageClassDeepArchive:        {},
	StorageClassGlacierIR:          {},
}

// ParseStorageClass parses a storage class name case-insensitively and
// rejects names outside the known set.
func ParseStorageClass(s string) (StorageClass, error) {
	sc := StorageClass(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownStorageClasses[sc]; !ok {
		return "", fmt.Errorf("unknown storage class %q", s)
	}
	return sc, nil
}

// Tag is a single object tag predicate.
type Tag struct {
	Key   string
	Value string
}

// Filter selects the objects a rule applies to. Every predicate is optional;
// predicates combine with logical AND.
type Filter struct {
	Prefix                string
	Tags                  []Tag
	ObjectSizeGreaterThan *int64
	ObjectSizeLessThan    *int64
}

// IsEmpty reports whether the filter selects every object.
func (f Filter) IsEmpty() bool {
	return f.predicates() == 0
}

func (f Filter) predicates() int {
	n := len(f.Tags)
	if f.Prefix != "" {
		n++
	}
	if f.ObjectSizeGreaterThan != nil {
		n++
	}
	if f.ObjectSizeLessThan != nil {
		n++
	}
	return n
}

func (f Filter) clone() Filter {
	out := Filter{
		Prefix:                f.Prefix,
		ObjectSizeGreaterThan: cloneInt64(f.ObjectSizeGreaterThan),
		ObjectSizeLessThan:    cloneInt64(f.ObjectSizeLessThan),
	}
	if len(f.Tags) > 0 {
		out.Tags = append([]Tag(nil), f.Tags...)
	}
	return out
}

// Expiration expires current object versions after a day-count or on a date.
type Expiration struct {
	Days                      *int32
	Date                      *time.Time
	ExpiredObjectDeleteMarker *bool
}

// Transition moves objects to another storage class.
type Transition struct {
	Days         *int32
	Date         *time.Time
	StorageClass StorageClass
}

// NoncurrentVersionExpiration expires noncurrent object versions.
type NoncurrentVersionExpiration struct {
	NoncurrentDays          *int32
	NewerNoncurrentVersions *int32
}

// NoncurrentVersionTransition moves noncurrent versions to another storage class.
type NoncurrentVersionTransition struct {
	NoncurrentDays          *int32
	NewerNoncurrentVersions *int32
	StorageClass            StorageClass
}

// AbortIncompleteMultipartUpload cleans up stalled multipart uploads.
type AbortIncompleteMultipartUpload struct {
	DaysAfterInitiation *int32
}

func sortTags(tags []Tag) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Key != tags[j].Key {
			return tags[i].Key < tags[j].Key
		}
		return tags[i].Value < tags[j].Value
	})
}

func sortTransitions(ts []Transition) {
	sort.SliceStable(ts, func(i, j int) bool {
		return lessSchedule(ts[i].Days, ts[i].Date, ts[i].StorageClass, ts[j].Days, ts[j].Date, ts[j].StorageClass)
	})
}

func sortNoncurrentTransitions(ts []NoncurrentVersionTransition) {
	sort.SliceStable(ts, func(i, j int) bool {
		if c := compareInt32(ts[i].NoncurrentDays, ts[j].NoncurrentDays); c != 0 {
			return c < 0
		}
		if c := compareInt32(ts[i].NewerNoncurrentVersions, ts[j].NewerNoncurrentVersions); c != 0 {
			return c < 0
		}
		return ts[i].StorageClass < ts[j].StorageClass
	})
}

func lessSchedule(ad *int32, at *time.Time, ac StorageClass, bd *int32, bt *time.Time, bc StorageClass) bool {
	if c := compareInt32(ad, bd); c != 0 {
		return c < 0
	}
	switch {
	case at == nil && bt != nil:
		return true
	case at != nil && bt == nil:
		return false
	case at != nil && bt != nil && !at.Equal(*bt):
		return at.Before(*bt)
	}
	return ac < bc
}

// compareInt32 orders nil before any value.
func compareInt32(a, b *int32) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func truncateDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func cloneInt32(p *int32) *int32 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
