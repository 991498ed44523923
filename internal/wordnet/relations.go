package wordnet

// synsetRelationBuckets classifies raw synset-level relType values into
// thesaurus buckets. Any tag not present here is classified as
// BucketRelated by classifySynsetRelation — unknown tags are never
// dropped, per the contract in the relation-classification table.
var synsetRelationBuckets = map[string]RelationBucket{
	"hypernym":          BucketBroader,
	"instance_hypernym": BucketBroader,
	"holo_member":       BucketBroader,
	"holo_part":         BucketBroader,
	"holo_substance":    BucketBroader,
	"part_holonym":      BucketBroader,
	"member_holonym":    BucketBroader,
	"substance_holonym": BucketBroader,
	"holo_location":     BucketBroader,
	"holo_portion":      BucketBroader,

	"hyponym":          BucketNarrower,
	"instance_hyponym": BucketNarrower,
	"mero_member":      BucketNarrower,
	"mero_part":        BucketNarrower,
	"mero_substance":   BucketNarrower,
	"part_meronym":     BucketNarrower,
	"member_meronym":   BucketNarrower,
	"substance_meronym": BucketNarrower,
	"mero_location":    BucketNarrower,
	"mero_portion":     BucketNarrower,

	"antonym":       BucketAntonym,
	"anto_gradable": BucketAntonym,
	"anto_simple":   BucketAntonym,
	"anto_converse": BucketAntonym,
	"near_antonym":  BucketAntonym,

	"similar":     BucketSynonym,
	"also":        BucketSynonym,
	"verb_group":  BucketSynonym,
	"eq_synonym":  BucketSynonym,
	"ir_synonym":  BucketSynonym,
}

// senseRelationBuckets classifies raw sense-level relType values. Its
// vocabulary differs slightly from the synset-level table (no holonym
// or meronym tags appear at sense level in the source format), but
// unknown tags still fall through to BucketRelated.
var senseRelationBuckets = map[string]RelationBucket{
	"antonym":       BucketAntonym,
	"anto_gradable": BucketAntonym,
	"anto_simple":   BucketAntonym,
	"anto_converse": BucketAntonym,
	"near_antonym":  BucketAntonym,

	"similar":    BucketSynonym,
	"also":       BucketSynonym,
	"verb_group": BucketSynonym,
	"similar_to": BucketSynonym,
	"see_also":   BucketSynonym,

	"hypernym":          BucketBroader,
	"instance_hypernym": BucketBroader,

	"hyponym":          BucketNarrower,
	"instance_hyponym": BucketNarrower,
}

// classifySynsetRelation maps a raw synset-level relType to a bucket.
// Unrecognized tags classify as BucketRelated.
func classifySynsetRelation(relType string) RelationBucket {
	if bucket, ok := synsetRelationBuckets[relType]; ok {
		return bucket
	}
	return BucketRelated
}

// classifySenseRelation maps a raw sense-level relType to a bucket.
// Unrecognized tags classify as BucketRelated.
func classifySenseRelation(relType string) RelationBucket {
	if bucket, ok := senseRelationBuckets[relType]; ok {
		return bucket
	}
	return BucketRelated
}
