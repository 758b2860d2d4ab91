package storage

import "time"

// Attribute names shared by every item in the QuickShare tables. All
// entities use the same partition/sort key attributes, with SortKeyMeta
// marking the metadata row; additional sort keys per entity can be added
// later without a schema migration.
const (
	AttrPK = "PK"
	AttrSK = "SK"

	// SortKeyMeta is the fixed sort-key value for metadata rows.
	SortKeyMeta = "META"

	AttrCreatedAt   = "createdAt"
	AttrStatus      = "status"
	AttrCreatorID   = "creatorId"
	AttrTitle       = "title"
	AttrDescription = "description"
	AttrImageKey    = "imageKey"
	AttrName        = "name"
	AttrEmail       = "email"
	AttrRole        = "role"
	AttrPassword    = "password"
	AttrOwnerID     = "ownerId"
	AttrFilename    = "filename"
)

// Secondary index names.
const (
	EmailIndex = "EmailIndex"
	UserIndex  = "UserIndex"
)

// TimestampLayout renders timestamps in UTC with millisecond precision.
// Keeping precision and offset uniform is what makes lexical comparison
// of createdAt values match chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t using TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
