package lifecycle

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lakecircle/core/utils"
)

// Definition is the content of one decoded definition document.
type Definition struct {
	// Bucket is the declared bucket name.
	Bucket string
	// Rules are the valid rules of the document in declaration order.
	Rules []*Rule
	// Invalid holds one error per rule that failed to build.
	Invalid []error
}

// DecodeDefinition reads a definition document from its generic key/value
// tree. Keys match case-insensitively. A missing bucket name or lifecycle
// configuration is a *StructuralError. Rules that fail validation are left
// out of Rules and reported in Invalid.
func DecodeDefinition(tree map[string]any) (*Definition, error) {
	bucket, err := definitionBucket(tree)
	if err != nil {
		return nil, err
	}

	raw, ok := lookup(tree, "LifecycleConfiguration")
	if !ok {
		return nil, &StructuralError{Key: "LifecycleConfiguration"}
	}
	cfg, ok := asTable(raw)
	if !ok {
		return nil, &StructuralError{Key: "LifecycleConfiguration"}
	}

	def := &Definition{Bucket: bucket}
	entries, err := ruleEntries(cfg)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		r, err := decodeRule(e.table, e.name)
		if err != nil {
			def.Invalid = append(def.Invalid, err)
			continue
		}
		def.Rules = append(def.Rules, r)
	}
	return def, nil
}

func definitionBucket(tree map[string]any) (string, error) {
	if v, ok := lookup(tree, "BucketName"); ok {
		if name := strings.TrimSpace(utils.ToString(v)); name != "" {
			return name, nil
		}
	}
	// The older layout nests the name under a bucket table.
	if v, ok := lookup(tree, "Bucket"); ok {
		if t, ok := asTable(v); ok {
			if n, ok := lookup(t, "Name"); ok {
				if name := strings.TrimSpace(utils.ToString(n)); name != "" {
					return name, nil
				}
			}
		}
	}
	return "", &StructuralError{Key: "BucketName"}
}

type ruleEntry struct {
	name  string
	table map[string]any
}

// Rules is either an array of tables or a table of tables keyed by name. A
// configuration without Rules declares a bucket with no rules.
func ruleEntries(cfg map[string]any) ([]ruleEntry, error) {
	raw, ok := lookup(cfg, "Rules")
	if !ok || raw == nil {
		return nil, nil
	}

	if list, ok := asList(raw); ok {
		out := make([]ruleEntry, 0, len(list))
		for i, item := range list {
			t, ok := asTable(item)
			if !ok {
				return nil, &StructuralError{Key: fmt.Sprintf("LifecycleConfiguration.Rules[%d]", i)}
			}
			out = append(out, ruleEntry{table: t})
		}
		return out, nil
	}

	if t, ok := asTable(raw); ok {
		names := make([]string, 0, len(t))
		for name := range t {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]ruleEntry, 0, len(names))
		for _, name := range names {
			rt, ok := asTable(t[name])
			if !ok {
				return nil, &StructuralError{Key: "LifecycleConfiguration.Rules." + name}
			}
			out = append(out, ruleEntry{name: name, table: rt})
		}
		return out, nil
	}

	return nil, &StructuralError{Key: "LifecycleConfiguration.Rules"}
}

func decodeRule(t map[string]any, name string) (*Rule, error) {
	var a Attributes

	if v, ok := lookup(t, "ID"); ok {
		a.ID = utils.ToString(v)
	}
	if strings.TrimSpace(a.ID) == "" {
		a.ID = name
	}
	if v, ok := lookup(t, "Status"); ok {
		a.Status = Status(utils.ToString(v))
	}

	d := decoder{rule: a.ID}

	if v, ok := lookup(t, "Filter"); ok {
		a.Filter = d.filter(v, "Filter")
	} else if v, ok := lookup(t, "Prefix"); ok {
		a.Filter.Prefix = utils.ToString(v)
	}

	if v, ok := lookup(t, "Expiration"); ok {
		if e, ok := d.table(v, "Expiration"); ok {
			a.Expiration = &Expiration{
				Days:                      d.int32Field(e, "Days", "Expiration"),
				Date:                      d.dateField(e, "Date", "Expiration"),
				ExpiredObjectDeleteMarker: d.boolField(e, "ExpiredObjectDeleteMarker"),
			}
		}
	}

	for i, e := range d.tables(t, "Transitions", "Transition") {
		field := fmt.Sprintf("Transitions[%d]", i)
		a.Transitions = append(a.Transitions, Transition{
			Days:         d.int32Field(e, "Days", field),
			Date:         d.dateField(e, "Date", field),
			StorageClass: d.storageClass(e, field),
		})
	}

	if v, ok := lookup(t, "NoncurrentVersionExpiration"); ok {
		if e, ok := d.table(v, "NoncurrentVersionExpiration"); ok {
			a.NoncurrentVersionExpiration = &NoncurrentVersionExpiration{
				NoncurrentDays:          d.int32Field(e, "NoncurrentDays", "NoncurrentVersionExpiration"),
				NewerNoncurrentVersions: d.int32Field(e, "NewerNoncurrentVersions", "NoncurrentVersionExpiration"),
			}
		}
	}

	for i, e := range d.tables(t, "NoncurrentVersionTransitions", "NoncurrentVersionTransition") {
		field := fmt.Sprintf("NoncurrentVersionTransitions[%d]", i)
		a.NoncurrentVersionTransitions = append(a.NoncurrentVersionTransitions, NoncurrentVersionTransition{
			NoncurrentDays:          d.int32Field(e, "NoncurrentDays", field),
			NewerNoncurrentVersions: d.int32Field(e, "NewerNoncurrentVersions", field),
			StorageClass:            d.storageClass(e, field),
		})
	}

	if v, ok := lookup(t, "AbortIncompleteMultipartUpload"); ok {
		if e, ok := d.table(v, "AbortIncompleteMultipartUpload"); ok {
			a.AbortIncompleteMultipartUpload = &AbortIncompleteMultipartUpload{
				DaysAfterInitiation: d.int32Field(e, "DaysAfterInitiation", "AbortIncompleteMultipartUpload"),
			}
		}
	}

	if d.err != nil {
		return nil, d.err
	}
	return Build(a)
}

// decoder keeps the first conversion error so field extraction reads linearly.
type decoder struct {
	rule string
	err  error
}

func (d *decoder) fail(field, reason string) {
	if d.err == nil {
		d.err = &ValidationError{Rule: d.rule, Field: field, Reason: reason}
	}
}

func (d *decoder) table(v any, field string) (map[string]any, bool) {
	t, ok := asTable(v)
	if !ok {
		d.fail(field, "expected a table")
	}
	return t, ok
}

// tables reads a repeated section, accepting a single table under the
// singular key as a one-element list.
func (d *decoder) tables(t map[string]any, plural, singular string) []map[string]any {
	v, ok := lookup(t, plural)
	if !ok {
		v, ok = lookup(t, singular)
	}
	if !ok || v == nil {
		return nil
	}
	if single, ok := asTable(v); ok {
		return []map[string]any{single}
	}
	list, ok := asList(v)
	if !ok {
		d.fail(plural, "expected a list of tables")
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for i, item := range list {
		it, ok := asTable(item)
		if !ok {
			d.fail(fmt.Sprintf("%s[%d]", plural, i), "expected a table")
			return nil
		}
		out = append(out, it)
	}
	return out
}

func (d *decoder) int32Field(t map[string]any, key, field string) *int32 {
	v, ok := lookup(t, key)
	if !ok || v == nil {
		return nil
	}
	i, err := utils.ParseInt32(v)
	if err != nil {
		d.fail(field+"."+key, err.Error())
		return nil
	}
	return &i
}

func (d *decoder) int64Field(t map[string]any, key, field string) *int64 {
	v, ok := lookup(t, key)
	if !ok || v == nil {
		return nil
	}
	i, err := utils.ParseInt(v)
	if err != nil {
		d.fail(field+"."+key, err.Error())
		return nil
	}
	return &i
}

func (d *decoder) dateField(t map[string]any, key, field string) *time.Time {
	v, ok := lookup(t, key)
	if !ok || v == nil {
		return nil
	}
	tm, err := utils.ParseDate(v)
	if err != nil {
		d.fail(field+"."+key, err.Error())
		return nil
	}
	return &tm
}

func (d *decoder) boolField(t map[string]any, key string) *bool {
	v, ok := lookup(t, key)
	if !ok || v == nil {
		return nil
	}
	b := utils.ToBool(v)
	return &b
}

func (d *decoder) storageClass(t map[string]any, field string) StorageClass {
	v, ok := lookup(t, "StorageClass")
	if !ok {
		return ""
	}
	sc, err := ParseStorageClass(utils.ToString(v))
	if err != nil {
		d.fail(field+".StorageClass", err.Error())
		return ""
	}
	return sc
}

func (d *decoder) filter(v any, field string) Filter {
	var f Filter
	t, ok := d.table(v, field)
	if !ok {
		return f
	}
	d.predicates(t, field, &f)
	if andRaw, ok := lookup(t, "And"); ok {
		if and, ok := d.table(andRaw, field+".And"); ok {
			d.predicates(and, field+".And", &f)
		}
	}
	return f
}

func (d *decoder) predicates(t map[string]any, field string, f *Filter) {
	if v, ok := lookup(t, "Prefix"); ok && f.Prefix == "" {
		f.Prefix = utils.ToString(v)
	}
	if v, ok := lookup(t, "Tag"); ok {
		if tag, ok := d.tag(v, field+".Tag"); ok {
			f.Tags = append(f.Tags, tag)
		}
	}
	if v, ok := lookup(t, "Tags"); ok {
		if list, ok := asList(v); ok {
			for i, item := range list {
				if tag, ok := d.tag(item, fmt.Sprintf("%s.Tags[%d]", field, i)); ok {
					f.Tags = append(f.Tags, tag)
				}
			}
		} else if m, ok := asTable(v); ok {
			// Tags = { key = "value" } shorthand.
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				f.Tags = append(f.Tags, Tag{Key: k, Value: utils.ToString(m[k])})
			}
		} else {
			d.fail(field+".Tags", "expected a list of tags")
		}
	}
	if gt := d.int64Field(t, "ObjectSizeGreaterThan", field); gt != nil && f.ObjectSizeGreaterThan == nil {
		f.ObjectSizeGreaterThan = gt
	}
	if lt := d.int64Field(t, "ObjectSizeLessThan", field); lt != nil && f.ObjectSizeLessThan == nil {
		f.ObjectSizeLessThan = lt
	}
}

func (d *decoder) tag(v any, field string) (Tag, bool) {
	t, ok := d.table(v, field)
	if !ok {
		return Tag{}, false
	}
	k, _ := lookup(t, "Key")
	val, _ := lookup(t, "Value")
	return Tag{Key: utils.ToString(k), Value: utils.ToString(val)}, true
}

// lookup finds key in t ignoring case. An exact match wins.
func lookup(t map[string]any, key string) (any, bool) {
	if v, ok := t[key]; ok {
		return v, true
	}
	for k, v := range t {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func asTable(v any) (map[string]any, bool) {
	t, ok := v.(map[string]any)
	return t, ok
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	}
	return nil, false
}
