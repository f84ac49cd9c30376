package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expireAfter(id string, days int32) *Rule {
	return MustBuild(Attributes{
		ID:         id,
		Status:     StatusEnabled,
		Expiration: &Expiration{Days: aws.Int32(days)},
	})
}

const archiveDefinition = `
BucketName = "b1"

[LifecycleConfiguration]

[[LifecycleConfiguration.Rules]]
ID = "archive"
Status = "enabled"

[LifecycleConfiguration.Rules.Filter]
Prefix = "logs/"
Tags = [{ Key = "team", Value = "data" }, { Key = "env", Value = "prod" }]

[LifecycleConfiguration.Rules.Expiration]
Days = 365

[[LifecycleConfiguration.Rules.Transitions]]
Days = 90
StorageClass = "glacier"

[[LifecycleConfiguration.Rules.Transitions]]
Days = 30
StorageClass = "STANDARD_IA"

[LifecycleConfiguration.Rules.AbortIncompleteMultipartUpload]
DaysAfterInitiation = 7
`

func decodeTOML(t *testing.T, doc string) *Definition {
	t.Helper()
	var tree map[string]any
	require.NoError(t, toml.Unmarshal([]byte(doc), &tree))
	def, err := DecodeDefinition(tree)
	require.NoError(t, err)
	return def
}

// TestFingerprint_Determinism tests that the same rule decoded from a
// definition file and from an API response carries one fingerprint.
func TestFingerprint_Determinism(t *testing.T) {
	def := decodeTOML(t, archiveDefinition)
	require.Len(t, def.Rules, 1)

	live, err := FromControlPlane(types.LifecycleRule{
		ID:     aws.String("archive"),
		Status: types.ExpirationStatusEnabled,
		Filter: &types.LifecycleRuleFilter{
			And: &types.LifecycleRuleAndOperator{
				Prefix: aws.String("logs/"),
				Tags: []types.Tag{
					{Key: aws.String("env"), Value: aws.String("prod")},
					{Key: aws.String("team"), Value: aws.String("data")},
				},
			},
		},
		Expiration: &types.LifecycleExpiration{Days: aws.Int32(365)},
		Transitions: []types.Transition{
			{Days: aws.Int32(30), StorageClass: types.TransitionStorageClassStandardIa},
			{Days: aws.Int32(90), StorageClass: types.TransitionStorageClassGlacier},
		},
		AbortIncompleteMultipartUpload: &types.AbortIncompleteMultipartUpload{DaysAfterInitiation: aws.Int32(7)},
	})
	require.NoError(t, err)

	assert.Equal(t, live.Fingerprint(), def.Rules[0].Fingerprint())
	assert.Equal(t, live.Describe(), def.Rules[0].Describe())
	assert.Len(t, live.Fingerprint(), FingerprintLength)
}

// TestFingerprint_Stable tests that fingerprints do not depend on process state.
func TestFingerprint_Stable(t *testing.T) {
	a := expireAfter("a", 90)
	b := expireAfter("a", 90)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.True(t, a.Equal(b))
}

// TestFingerprint_Sensitivity tests that changing any single field changes
// the fingerprint.
func TestFingerprint_Sensitivity(t *testing.T) {
	base := func() Attributes {
		return Attributes{
			ID:     "rule",
			Status: StatusEnabled,
			Filter: Filter{Prefix: "tmp/", Tags: []Tag{{Key: "k", Value: "v"}}, ObjectSizeGreaterThan: aws.Int64(10)},
			Expiration: &Expiration{
				Days: aws.Int32(90),
			},
			Transitions:                 []Transition{{Days: aws.Int32(30), StorageClass: StorageClassGlacier}},
			NoncurrentVersionExpiration: &NoncurrentVersionExpiration{NoncurrentDays: aws.Int32(10)},
			NoncurrentVersionTransitions: []NoncurrentVersionTransition{
				{NoncurrentDays: aws.Int32(5), StorageClass: StorageClassStandardIA},
			},
			AbortIncompleteMultipartUpload: &AbortIncompleteMultipartUpload{DaysAfterInitiation: aws.Int32(3)},
		}
	}
	reference := MustBuild(base()).Fingerprint()

	tests := []struct {
		name   string
		mutate func(a *Attributes)
	}{
		{"ID", func(a *Attributes) { a.ID = "other" }},
		{"Status", func(a *Attributes) { a.Status = StatusDisabled }},
		{"Prefix", func(a *Attributes) { a.Filter.Prefix = "var/" }},
		{"TagValue", func(a *Attributes) { a.Filter.Tags[0].Value = "w" }},
		{"ObjectSize", func(a *Attributes) { a.Filter.ObjectSizeGreaterThan = aws.Int64(11) }},
		{"ExpirationDays", func(a *Attributes) { a.Expiration.Days = aws.Int32(91) }},
		{"TransitionDays", func(a *Attributes) { a.Transitions[0].Days = aws.Int32(31) }},
		{"StorageClass", func(a *Attributes) { a.Transitions[0].StorageClass = StorageClassDeepArchive }},
		{"NoncurrentDays", func(a *Attributes) { a.NoncurrentVersionExpiration.NoncurrentDays = aws.Int32(11) }},
		{"NoncurrentTransition", func(a *Attributes) { a.NoncurrentVersionTransitions[0].StorageClass = StorageClassGlacier }},
		{"Multipart", func(a *Attributes) { a.AbortIncompleteMultipartUpload.DaysAfterInitiation = aws.Int32(4) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base()
			tt.mutate(&a)
			r, err := Build(a)
			require.NoError(t, err)
			assert.NotEqual(t, reference, r.Fingerprint())
		})
	}
}

// TestBuild_Validation tests that malformed attributes are rejected with a
// ValidationError.
func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		field string
	}{
		{"MissingID", Attributes{Status: StatusEnabled}, "ID"},
		{"BlankID", Attributes{ID: "  ", Status: StatusEnabled}, "ID"},
		{"MissingStatus", Attributes{ID: "a"}, "Status"},
		{"UnknownStatus", Attributes{ID: "a", Status: "maybe"}, "Status"},
		{"DaysAndDate", Attributes{ID: "a", Status: StatusEnabled, Expiration: &Expiration{Days: aws.Int32(1), Date: aws.Time(time.Now())}}, "Expiration"},
		{"ZeroExpiration", Attributes{ID: "a", Status: StatusEnabled, Expiration: &Expiration{Days: aws.Int32(0)}}, "Expiration.Days"},
		{"TransitionWithoutClass", Attributes{ID: "a", Status: StatusEnabled, Transitions: []Transition{{Days: aws.Int32(30)}}}, "Transitions[0].StorageClass"},
		{"TransitionWithoutSchedule", Attributes{ID: "a", Status: StatusEnabled, Transitions: []Transition{{StorageClass: StorageClassGlacier}}}, "Transitions[0]"},
		{"InvertedSizes", Attributes{ID: "a", Status: StatusEnabled, Filter: Filter{ObjectSizeGreaterThan: aws.Int64(10), ObjectSizeLessThan: aws.Int64(5)}}, "Filter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Build(tt.attrs)
			assert.Nil(t, r)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

// TestBuild_NoAction tests that a rule without actions is accepted and flagged.
func TestBuild_NoAction(t *testing.T) {
	r, err := Build(Attributes{ID: "noop", Status: StatusDisabled, Filter: Filter{Prefix: "x/"}})
	require.NoError(t, err)
	assert.False(t, r.HasAction())
	assert.True(t, expireAfter("a", 1).HasAction())
}

// TestBuild_Canonical tests normalisation that keeps both decoders aligned.
func TestBuild_Canonical(t *testing.T) {
	date := time.Date(2030, time.June, 1, 17, 30, 0, 0, time.FixedZone("x", 3600))
	r := MustBuild(Attributes{
		ID:     "keep",
		Status: "ENABLED",
		Filter: Filter{Tags: []Tag{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}},
		Expiration: &Expiration{
			Date:                      &date,
			ExpiredObjectDeleteMarker: aws.Bool(false),
		},
		Transitions: []Transition{{Date: &date, StorageClass: "glacier_ir"}},
	})

	a := r.Attributes()
	assert.Equal(t, "keep", a.ID)
	assert.Equal(t, StatusEnabled, a.Status)
	assert.Equal(t, []Tag{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, a.Filter.Tags)
	assert.Nil(t, a.Expiration.ExpiredObjectDeleteMarker)
	assert.Equal(t, "2030-06-01", a.Expiration.Date.Format(DateLayout))
	assert.Equal(t, StorageClassGlacierIR, a.Transitions[0].StorageClass)

	// Attributes hands out copies.
	a.Filter.Tags[0].Key = "z"
	assert.Equal(t, "a", r.Attributes().Filter.Tags[0].Key)
}

func TestParseStorageClass(t *testing.T) {
	sc, err := ParseStorageClass("deep_archive")
	assert.NoError(t, err)
	assert.Equal(t, StorageClassDeepArchive, sc)

	_, err = ParseStorageClass("tape")
	assert.Error(t, err)
}

// TestBuild_KeepsWhitespace tests that identifiers and prefixes are stored
// byte for byte.
func TestBuild_KeepsWhitespace(t *testing.T) {
	r := MustBuild(Attributes{ID: " keep ", Status: StatusEnabled, Filter: Filter{Prefix: " reports/"}, Expiration: &Expiration{Days: aws.Int32(1)}})
	assert.Equal(t, " keep ", r.ID())
	assert.Equal(t, " reports/", r.Attributes().Filter.Prefix)

	trimmed := MustBuild(Attributes{ID: "keep", Status: StatusEnabled, Filter: Filter{Prefix: "reports/"}, Expiration: &Expiration{Days: aws.Int32(1)}})
	assert.NotEqual(t, trimmed.Fingerprint(), r.Fingerprint())
}
