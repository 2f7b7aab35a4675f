package schema

const (
	PropertyBucket     = "property-bucket"
	OfferBucket        = "offer-bucket"
	AuctionBucket      = "auction-bucket"
	DelegateBucket     = "delegate-bucket"
	TitleBucket        = "title-bucket"
	BalanceBucket      = "balance-bucket"
	EventBacklogBucket = "event-backlog-bucket"
	ConstantsBucket    = "constants-bucket"
)

// keys in ConstantsBucket holding the last allocated sequence values
const (
	PropertySeqKey = "property-seq"
	BacklogSeqKey  = "event-backlog-seq"
)
