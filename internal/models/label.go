package models

// Label attaches a name to a post. Labels have no independent lifecycle:
// they exist only as (post, name) pairs and are reconciled wholesale when a
// post update supplies a labels field.
type Label struct {
	PostID uint   `gorm:"not null;index:idx_labels_post_name,priority:1" json:"post_id"`
	Name   string `gorm:"not null;index:idx_labels_post_name,priority:2;index:idx_labels_name" json:"name"`
}
