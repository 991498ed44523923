package wordnet

import "testing"

func TestClassifySynsetRelation(t *testing.T) {
	tests := []struct {
		relType string
		want    RelationBucket
	}{
		{"hypernym", BucketBroader},
		{"instance_hypernym", BucketBroader},
		{"part_holonym", BucketBroader},
		{"holo_location", BucketBroader},
		{"hyponym", BucketNarrower},
		{"mero_member", BucketNarrower},
		{"antonym", BucketAntonym},
		{"near_antonym", BucketAntonym},
		{"similar", BucketSynonym},
		{"verb_group", BucketSynonym},
		{"xyz_unknown", BucketRelated},
		{"", BucketRelated},
	}

	for _, tt := range tests {
		t.Run(tt.relType, func(t *testing.T) {
			t.Parallel()
			if got := classifySynsetRelation(tt.relType); got != tt.want {
				t.Errorf("classifySynsetRelation(%q) = %q, want %q", tt.relType, got, tt.want)
			}
		})
	}
}

func TestClassifySenseRelation(t *testing.T) {
	tests := []struct {
		relType string
		want    RelationBucket
	}{
		{"similar_to", BucketSynonym},
		{"see_also", BucketSynonym},
		{"hypernym", BucketBroader},
		{"hyponym", BucketNarrower},
		{"antonym", BucketAntonym},
		{"derivation", BucketRelated},
		{"pertainym", BucketRelated},
		{"domain_topic", BucketRelated},
	}

	for _, tt := range tests {
		t.Run(tt.relType, func(t *testing.T) {
			t.Parallel()
			if got := classifySenseRelation(tt.relType); got != tt.want {
				t.Errorf("classifySenseRelation(%q) = %q, want %q", tt.relType, got, tt.want)
			}
		})
	}
}
