package lifecycle

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Payload projects the rule onto the S3 API shape. Unset fields stay nil.
// The filter is always present since the put API requires one; an empty
// filter applies the rule to every object.
func (r *Rule) Payload() types.LifecycleRule {
	a := r.attrs
	out := types.LifecycleRule{
		ID:     aws.String(a.ID),
		Status: types.ExpirationStatus(a.Status),
		Filter: filterPayload(a.Filter),
	}

	if e := a.Expiration; e != nil {
		out.Expiration = &types.LifecycleExpiration{
			Days:                      cloneInt32(e.Days),
			Date:                      cloneTime(e.Date),
			ExpiredObjectDeleteMarker: cloneBool(e.ExpiredObjectDeleteMarker),
		}
	}
	for _, t := range a.Transitions {
		out.Transitions = append(out.Transitions, types.Transition{
			Days:         cloneInt32(t.Days),
			Date:         cloneTime(t.Date),
			StorageClass: types.TransitionStorageClass(t.StorageClass),
		})
	}
	if n := a.NoncurrentVersionExpiration; n != nil {
		out.NoncurrentVersionExpiration = &types.NoncurrentVersionExpiration{
			NoncurrentDays:          cloneInt32(n.NoncurrentDays),
			NewerNoncurrentVersions: cloneInt32(n.NewerNoncurrentVersions),
		}
	}
	for _, t := range a.NoncurrentVersionTransitions {
		out.NoncurrentVersionTransitions = append(out.NoncurrentVersionTransitions, types.NoncurrentVersionTransition{
			NoncurrentDays:          cloneInt32(t.NoncurrentDays),
			NewerNoncurrentVersions: cloneInt32(t.NewerNoncurrentVersions),
			StorageClass:            types.TransitionStorageClass(t.StorageClass),
		})
	}
	if m := a.AbortIncompleteMultipartUpload; m != nil {
		out.AbortIncompleteMultipartUpload = &types.AbortIncompleteMultipartUpload{
			DaysAfterInitiation: cloneInt32(m.DaysAfterInitiation),
		}
	}
	return out
}

// A single predicate is sent as is, several are wrapped in the And operator.
func filterPayload(f Filter) *types.LifecycleRuleFilter {
	out := &types.LifecycleRuleFilter{}
	switch f.predicates() {
	case 0:
		return out
	case 1:
		if f.Prefix != "" {
			out.Prefix = aws.String(f.Prefix)
		}
		if len(f.Tags) == 1 {
			out.Tag = &types.Tag{Key: aws.String(f.Tags[0].Key), Value: aws.String(f.Tags[0].Value)}
		}
		out.ObjectSizeGreaterThan = cloneInt64(f.ObjectSizeGreaterThan)
		out.ObjectSizeLessThan = cloneInt64(f.ObjectSizeLessThan)
		return out
	}

	and := &types.LifecycleRuleAndOperator{
		ObjectSizeGreaterThan: cloneInt64(f.ObjectSizeGreaterThan),
		ObjectSizeLessThan:    cloneInt64(f.ObjectSizeLessThan),
	}
	if f.Prefix != "" {
		and.Prefix = aws.String(f.Prefix)
	}
	for _, t := range f.Tags {
		and.Tags = append(and.Tags, types.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)})
	}
	out.And = and
	return out
}

// FromControlPlane decodes a rule returned by the S3 API.
func FromControlPlane(rule types.LifecycleRule) (*Rule, error) {
	a := Attributes{
		ID:     aws.ToString(rule.ID),
		Status: Status(rule.Status),
	}

	switch {
	case rule.Filter != nil:
		a.Filter = filterFromPayload(rule.Filter)
	case rule.Prefix != nil:
		a.Filter.Prefix = *rule.Prefix
	}

	if e := rule.Expiration; e != nil {
		a.Expiration = &Expiration{
			Days:                      cloneInt32(e.Days),
			Date:                      cloneTime(e.Date),
			ExpiredObjectDeleteMarker: cloneBool(e.ExpiredObjectDeleteMarker),
		}
	}
	for _, t := range rule.Transitions {
		a.Transitions = append(a.Transitions, Transition{
			Days:         cloneInt32(t.Days),
			Date:         cloneTime(t.Date),
			StorageClass: StorageClass(t.StorageClass),
		})
	}
	if n := rule.NoncurrentVersionExpiration; n != nil {
		a.NoncurrentVersionExpiration = &NoncurrentVersionExpiration{
			NoncurrentDays:          cloneInt32(n.NoncurrentDays),
			NewerNoncurrentVersions: cloneInt32(n.NewerNoncurrentVersions),
		}
	}
	for _, t := range rule.NoncurrentVersionTransitions {
		a.NoncurrentVersionTransitions = append(a.NoncurrentVersionTransitions, NoncurrentVersionTransition{
			NoncurrentDays:          cloneInt32(t.NoncurrentDays),
			NewerNoncurrentVersions: cloneInt32(t.NewerNoncurrentVersions),
			StorageClass:            StorageClass(t.StorageClass),
		})
	}
	if m := rule.AbortIncompleteMultipartUpload; m != nil {
		a.AbortIncompleteMultipartUpload = &AbortIncompleteMultipartUpload{
			DaysAfterInitiation: cloneInt32(m.DaysAfterInitiation),
		}
	}
	return Build(a)
}

func filterFromPayload(pf *types.LifecycleRuleFilter) Filter {
	var f Filter
	if pf.Prefix != nil {
		f.Prefix = *pf.Prefix
	}
	if pf.Tag != nil {
		f.Tags = append(f.Tags, Tag{Key: aws.ToString(pf.Tag.Key), Value: aws.ToString(pf.Tag.Value)})
	}
	f.ObjectSizeGreaterThan = cloneInt64(pf.ObjectSizeGreaterThan)
	f.ObjectSizeLessThan = cloneInt64(pf.ObjectSizeLessThan)

	if and := pf.And; and != nil {
		if and.Prefix != nil && f.Prefix == "" {
			f.Prefix = *and.Prefix
		}
		for _, t := range and.Tags {
			f.Tags = append(f.Tags, Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
		}
		if and.ObjectSizeGreaterThan != nil && f.ObjectSizeGreaterThan == nil {
			f.ObjectSizeGreaterThan = cloneInt64(and.ObjectSizeGreaterThan)
		}
		if and.ObjectSizeLessThan != nil && f.ObjectSizeLessThan == nil {
			f.ObjectSizeLessThan = cloneInt64(and.ObjectSizeLessThan)
		}
	}
	return f
}
