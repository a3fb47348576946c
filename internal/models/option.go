package models

// Well-known option keys.
const (
	OptionBlogName        = "blogName"
	OptionBlogDescription = "blogDescription"
	OptionBlogPublished   = "blogPublished"
	OptionAdminUsername   = "adminUsername"
	OptionAdminPassword   = "adminPassword"
)

// Option is a key/value configuration row. At most one row exists per key;
// writes are upserts keyed by Key. The adminPassword value holds a signed
// token representation, never a plaintext password.
type Option struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}
