package lifecycle

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// FingerprintLength is the number of hex characters kept from the digest.
const FingerprintLength = 16

// maxIDLength is the longest rule identifier S3 accepts.
const maxIDLength = 255

// Attributes is the mutable input to Build.
type Attributes struct {
	ID                             string
	Status                         Status
	Filter                         Filter
	Expiration                     *Expiration
	Transitions                    []Transition
	NoncurrentVersionExpiration    *NoncurrentVersionExpiration
	NoncurrentVersionTransitions   []NoncurrentVersionTransition
	AbortIncompleteMultipartUpload *AbortIncompleteMultipartUpload
}

// Rule is one lifecycle rule. It is immutable once built.
type Rule struct {
	attrs       Attributes
	fingerprint string
}

// Build validates and canonicalises attrs into a Rule.
func Build(attrs Attributes) (*Rule, error) {
	a := attrs.clone()
	if strings.TrimSpace(a.ID) == "" {
		return nil, &ValidationError{Field: "ID", Reason: "identifier is required"}
	}
	if len(a.ID) > maxIDLength {
		return nil, &ValidationError{Rule: a.ID, Field: "ID", Reason: fmt.Sprintf("identifier exceeds %d characters", maxIDLength)}
	}
	if a.Status == "" {
		return nil, &ValidationError{Rule: a.ID, Field: "Status", Reason: "status is required"}
	}
	status, err := ParseStatus(string(a.Status))
	if err != nil {
		return nil, &ValidationError{Rule: a.ID, Field: "Status", Reason: err.Error()}
	}
	a.Status = status

	if err := a.normalize(); err != nil {
		return nil, err
	}

	r := &Rule{attrs: a}
	r.fingerprint = digest(r.Describe())
	return r, nil
}

// MustBuild is like Build but panics on error. It is meant for fixtures.
func MustBuild(attrs Attributes) *Rule {
	r, err := Build(attrs)
	if err != nil {
		panic(err)
	}
	return r
}

func (a *Attributes) normalize() error {
	invalid := func(field, reason string) error {
		return &ValidationError{Rule: a.ID, Field: field, Reason: reason}
	}

	f := &a.Filter
	if len(f.Tags) == 0 {
		f.Tags = nil
	}
	for _, t := range f.Tags {
		if t.Key == "" {
			return invalid("Filter.Tags", "tag key is required")
		}
	}
	sortTags(f.Tags)
	if f.ObjectSizeGreaterThan != nil && *f.ObjectSizeGreaterThan < 0 {
		return invalid("Filter.ObjectSizeGreaterThan", "must not be negative")
	}
	if f.ObjectSizeLessThan != nil && *f.ObjectSizeLessThan < 0 {
		return invalid("Filter.ObjectSizeLessThan", "must not be negative")
	}
	if f.ObjectSizeGreaterThan != nil && f.ObjectSizeLessThan != nil && *f.ObjectSizeGreaterThan >= *f.ObjectSizeLessThan {
		return invalid("Filter", "ObjectSizeGreaterThan must be less than ObjectSizeLessThan")
	}

	if e := a.Expiration; e != nil {
		if e.ExpiredObjectDeleteMarker != nil && !*e.ExpiredObjectDeleteMarker {
			e.ExpiredObjectDeleteMarker = nil
		}
		if e.Days != nil && e.Date != nil {
			return invalid("Expiration", "Days and Date are mutually exclusive")
		}
		if e.Days != nil && *e.Days <= 0 {
			return invalid("Expiration.Days", "must be positive")
		}
		if e.Date != nil {
			d := truncateDate(*e.Date)
			e.Date = &d
		}
		if e.Days == nil && e.Date == nil && e.ExpiredObjectDeleteMarker == nil {
			a.Expiration = nil
		}
	}

	if len(a.Transitions) == 0 {
		a.Transitions = nil
	}
	for i := range a.Transitions {
		t := &a.Transitions[i]
		field := fmt.Sprintf("Transitions[%d]", i)
		if t.Days != nil && t.Date != nil {
			return invalid(field, "Days and Date are mutually exclusive")
		}
		if t.Days == nil && t.Date == nil {
			return invalid(field, "Days or Date is required")
		}
		if t.Days != nil && *t.Days < 0 {
			return invalid(field+".Days", "must not be negative")
		}
		if t.Date != nil {
			d := truncateDate(*t.Date)
			t.Date = &d
		}
		t.StorageClass = StorageClass(strings.ToUpper(strings.TrimSpace(string(t.StorageClass))))
		if t.StorageClass == "" {
			return invalid(field+".StorageClass", "storage class is required")
		}
	}
	sortTransitions(a.Transitions)

	if n := a.NoncurrentVersionExpiration; n != nil {
		if n.NoncurrentDays != nil && *n.NoncurrentDays <= 0 {
			return invalid("NoncurrentVersionExpiration.NoncurrentDays", "must be positive")
		}
		if n.NewerNoncurrentVersions != nil && *n.NewerNoncurrentVersions <= 0 {
			return invalid("NoncurrentVersionExpiration.NewerNoncurrentVersions", "must be positive")
		}
		if n.NoncurrentDays == nil && n.NewerNoncurrentVersions == nil {
			a.NoncurrentVersionExpiration = nil
		}
	}

	if len(a.NoncurrentVersionTransitions) == 0 {
		a.NoncurrentVersionTransitions = nil
	}
	for i := range a.NoncurrentVersionTransitions {
		t := &a.NoncurrentVersionTransitions[i]
		field := fmt.Sprintf("NoncurrentVersionTransitions[%d]", i)
		if t.NoncurrentDays != nil && *t.NoncurrentDays < 0 {
			return invalid(field+".NoncurrentDays", "must not be negative")
		}
		t.StorageClass = StorageClass(strings.ToUpper(strings.TrimSpace(string(t.StorageClass))))
		if t.StorageClass == "" {
			return invalid(field+".StorageClass", "storage class is required")
		}
	}
	sortNoncurrentTransitions(a.NoncurrentVersionTransitions)

	if m := a.AbortIncompleteMultipartUpload; m != nil {
		if m.DaysAfterInitiation == nil {
			a.AbortIncompleteMultipartUpload = nil
		} else if *m.DaysAfterInitiation <= 0 {
			return invalid("AbortIncompleteMultipartUpload.DaysAfterInitiation", "must be positive")
		}
	}
	return nil
}

// ID returns the rule identifier.
func (r *Rule) ID() string { return r.attrs.ID }

// Status returns the enabled flag.
func (r *Rule) Status() Status { return r.attrs.Status }

// Fingerprint returns the content digest of the rule.
func (r *Rule) Fingerprint() string { return r.fingerprint }

// Attributes returns a copy of the canonical attributes.
func (r *Rule) Attributes() Attributes { return r.attrs.clone() }

// Equal reports whether both rules carry the same fingerprint.
func (r *Rule) Equal(other *Rule) bool {
	return other != nil && r.fingerprint == other.fingerprint
}

// HasAction reports whether the rule carries at least one lifecycle action.
// Rules without actions are legal but do nothing.
func (r *Rule) HasAction() bool {
	a := r.attrs
	return a.Expiration != nil ||
		len(a.Transitions) > 0 ||
		a.NoncurrentVersionExpiration != nil ||
		len(a.NoncurrentVersionTransitions) > 0 ||
		a.AbortIncompleteMultipartUpload != nil
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s(%s)", r.attrs.ID, r.fingerprint)
}

// Describe returns the canonical description the fingerprint is computed
// over. Unset fields are absent.
func (r *Rule) Describe() map[string]any {
	a := r.attrs
	d := map[string]any{
		"id":     a.ID,
		"status": string(a.Status),
	}

	if !a.Filter.IsEmpty() {
		f := map[string]any{}
		if a.Filter.Prefix != "" {
			f["prefix"] = a.Filter.Prefix
		}
		if len(a.Filter.Tags) > 0 {
			tags := make([]map[string]any, 0, len(a.Filter.Tags))
			for _, t := range a.Filter.Tags {
				tags = append(tags, map[string]any{"key": t.Key, "value": t.Value})
			}
			f["tags"] = tags
		}
		if a.Filter.ObjectSizeGreaterThan != nil {
			f["objectsizegreaterthan"] = *a.Filter.ObjectSizeGreaterThan
		}
		if a.Filter.ObjectSizeLessThan != nil {
			f["objectsizelessthan"] = *a.Filter.ObjectSizeLessThan
		}
		d["filter"] = f
	}

	if e := a.Expiration; e != nil {
		m := map[string]any{}
		if e.Days != nil {
			m["days"] = *e.Days
		}
		if e.Date != nil {
			m["date"] = e.Date.Format(DateLayout)
		}
		if e.ExpiredObjectDeleteMarker != nil {
			m["expiredobjectdeletemarker"] = *e.ExpiredObjectDeleteMarker
		}
		d["expiration"] = m
	}

	if len(a.Transitions) > 0 {
		ts := make([]map[string]any, 0, len(a.Transitions))
		for _, t := range a.Transitions {
			m := map[string]any{"storageclass": string(t.StorageClass)}
			if t.Days != nil {
				m["days"] = *t.Days
			}
			if t.Date != nil {
				m["date"] = t.Date.Format(DateLayout)
			}
			ts = append(ts, m)
		}
		d["transitions"] = ts
	}

	if n := a.NoncurrentVersionExpiration; n != nil {
		m := map[string]any{}
		if n.NoncurrentDays != nil {
			m["noncurrentdays"] = *n.NoncurrentDays
		}
		if n.NewerNoncurrentVersions != nil {
			m["newernoncurrentversions"] = *n.NewerNoncurrentVersions
		}
		d["noncurrentversionexpiration"] = m
	}

	if len(a.NoncurrentVersionTransitions) > 0 {
		ts := make([]map[string]any, 0, len(a.NoncurrentVersionTransitions))
		for _, t := range a.NoncurrentVersionTransitions {
			m := map[string]any{"storageclass": string(t.StorageClass)}
			if t.NoncurrentDays != nil {
				m["noncurrentdays"] = *t.NoncurrentDays
			}
			if t.NewerNoncurrentVersions != nil {
				m["newernoncurrentversions"] = *t.NewerNoncurrentVersions
			}
			ts = append(ts, m)
		}
		d["noncurrentversiontransitions"] = ts
	}

	if m := a.AbortIncompleteMultipartUpload; m != nil {
		d["abortincompletemultipartupload"] = map[string]any{
			"daysafterinitiation": *m.DaysAfterInitiation,
		}
	}
	return d
}

// digest hashes the JSON form of a description. encoding/json writes map
// keys in sorted order, which makes the encoding canonical.
func digest(desc map[string]any) string {
	raw, err := json.Marshal(desc)
	if err != nil {
		panic(fmt.Sprintf("lifecycle: describe produced unencodable value: %v", err))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:FingerprintLength]
}

func (a Attributes) clone() Attributes {
	out := Attributes{
		ID:     a.ID,
		Status: a.Status,
		Filter: a.Filter.clone(),
	}
	if e := a.Expiration; e != nil {
		out.Expiration = &Expiration{
			Days:                      cloneInt32(e.Days),
			Date:                      cloneTime(e.Date),
			ExpiredObjectDeleteMarker: cloneBool(e.ExpiredObjectDeleteMarker),
		}
	}
	for _, t := range a.Transitions {
		out.Transitions = append(out.Transitions, Transition{
			Days:         cloneInt32(t.Days),
			Date:         cloneTime(t.Date),
			StorageClass: t.StorageClass,
		})
	}
	if n := a.NoncurrentVersionExpiration; n != nil {
		out.NoncurrentVersionExpiration = &NoncurrentVersionExpiration{
			NoncurrentDays:          cloneInt32(n.NoncurrentDays),
			NewerNoncurrentVersions: cloneInt32(n.NewerNoncurrentVersions),
		}
	}
	for _, t := range a.NoncurrentVersionTransitions {
		out.NoncurrentVersionTransitions = append(out.NoncurrentVersionTransitions, NoncurrentVersionTransition{
			NoncurrentDays:          cloneInt32(t.NoncurrentDays),
			NewerNoncurrentVersions: cloneInt32(t.NewerNoncurrentVersions),
			StorageClass:            t.StorageClass,
		})
	}
	if m := a.AbortIncompleteMultipartUpload; m != nil {
		out.AbortIncompleteMultipartUpload = &AbortIncompleteMultipartUpload{
			DaysAfterInitiation: cloneInt32(m.DaysAfterInitiation),
		}
	}
	return out
}
